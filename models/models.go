// models/models.go
// Package models holds the device records decoded from Jamf Pro responses.
// Every field is kept as the text the server sent; helpers interpret the flags.
package models

import (
	"strconv"
	"strings"
	"time"
)

// Ownership modes derived from the supervised flag.
const (
	OwnershipCOBO = "COBO" // corporate-owned, business only
	OwnershipBYOD = "BYOD" // bring your own device
)

// Computer is one entry of /JSSResource/computers/subset/basic.
type Computer struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Model           string `json:"model"`
	ReportDateEpoch string `json:"report_date_epoch"`
	Managed         string `json:"managed"`
}

// IsManaged reports whether the managed flag is "true".
func (c Computer) IsManaged() bool {
	return isTrue(c.Managed)
}

// ReportDate converts the epoch-milliseconds report date. ok is false when the field is empty or not a number.
func (c Computer) ReportDate() (t time.Time, ok bool) {
	ms, err := strconv.ParseInt(strings.TrimSpace(c.ReportDateEpoch), 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).UTC(), true
}

// MobileDeviceSummary is one entry of /JSSResource/mobiledevices.
type MobileDeviceSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Model      string `json:"model"`
	Username   string `json:"username"`
	Managed    string `json:"managed"`
	Supervised string `json:"supervised"`
}

// IsManaged reports whether the managed flag is "true".
func (m MobileDeviceSummary) IsManaged() bool {
	return isTrue(m.Managed)
}

// IsSupervised reports whether the supervised flag is "true".
func (m MobileDeviceSummary) IsSupervised() bool {
	return isTrue(m.Supervised)
}

// Ownership returns OwnershipCOBO for supervised devices and OwnershipBYOD otherwise.
func (m MobileDeviceSummary) Ownership() string {
	if m.IsSupervised() {
		return OwnershipCOBO
	}
	return OwnershipBYOD
}

// MobileDeviceDetail is the general section of /JSSResource/mobiledevices/id/{id}.
type MobileDeviceDetail struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Model           string `json:"model"`
	Username        string `json:"username"`
	OSVersion       string `json:"os_version"`
	OSBuild         string `json:"os_build"`
	PhoneNumber     string `json:"phone_number"`
	ModelIdentifier string `json:"model_identifier"`
	ModelNumber     string `json:"model_number"`
	SerialNumber    string `json:"serial_number"`
}

// CommandResult is handed back for every device command; it is never stored.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func isTrue(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}
