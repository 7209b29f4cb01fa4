// decoder/record.go
package decoder

import "github.com/deploymenttheory/go-jamfpro-mdm-client/models"

// Element and key names shared by the XML and JSON shapes.
const (
	elementComputer     = "computer"
	elementMobileDevice = "mobile_device"
	elementGeneral      = "general"

	keyComputers     = "computers"
	keyMobileDevices = "mobile_devices"
	keyMobileDevice  = "mobile_device"
)

// whitelist is the set of fields captured into the scratch record. Everything else is skipped.
var whitelist = map[string]bool{
	"id":                true,
	"name":              true,
	"model":             true,
	"username":          true,
	"os_version":        true,
	"os_build":          true,
	"phone_number":      true,
	"report_date_epoch": true,
	"managed":           true,
	"supervised":        true,
	"model_identifier":  true,
	"model_number":      true,
	"serial_number":     true,
}

// record is the scratch buffer for the record being read, keyed by field name.
type record map[string]string

// set stores a whitelisted, non-empty value. The last non-empty value wins.
func (r record) set(field, value string) {
	if whitelist[field] && value != "" {
		r[field] = value
	}
}

func (r record) reset() {
	clear(r)
}

func (r record) computer() models.Computer {
	return models.Computer{
		ID:              r["id"],
		Name:            r["name"],
		Model:           r["model"],
		ReportDateEpoch: r["report_date_epoch"],
		Managed:         r["managed"],
	}
}

func (r record) mobileDevice() models.MobileDeviceSummary {
	return models.MobileDeviceSummary{
		ID:         r["id"],
		Name:       r["name"],
		Model:      r["model"],
		Username:   r["username"],
		Managed:    r["managed"],
		Supervised: r["supervised"],
	}
}

func (r record) mobileDeviceDetail() *models.MobileDeviceDetail {
	return &models.MobileDeviceDetail{
		ID:              r["id"],
		Name:            r["name"],
		Model:           r["model"],
		Username:        r["username"],
		OSVersion:       r["os_version"],
		OSBuild:         r["os_build"],
		PhoneNumber:     r["phone_number"],
		ModelIdentifier: r["model_identifier"],
		ModelNumber:     r["model_number"],
		SerialNumber:    r["serial_number"],
	}
}
