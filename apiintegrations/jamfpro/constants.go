// constants.go
package jamfpro

// Endpoint constants represent the URL paths used for Jamf Pro interactions.
const (
	APIName                     = "jamf pro"                                           // APIName: represents the name of the API.
	BearerTokenEndpoint         = "/api/v1/auth/token"                                 // BearerTokenEndpoint: The endpoint to obtain a bearer token.
	TokenInvalidateEndpoint     = "/api/v1/auth/invalidate-token"                      // TokenInvalidateEndpoint: The endpoint to invalidate an active token.
	ComputersEndpoint           = "/JSSResource/computers/subset/basic"                // ComputersEndpoint: Classic API computer inventory, basic subset.
	MobileDevicesEndpoint       = "/JSSResource/mobiledevices"                         // MobileDevicesEndpoint: Classic API mobile device inventory.
	MobileDeviceByIDEndpoint    = "/JSSResource/mobiledevices/id/%s"                   // MobileDeviceByIDEndpoint: a single mobile device.
	MobileDeviceCommandEndpoint = "/JSSResource/mobiledevicecommands/command/%s/id/%s" // MobileDeviceCommandEndpoint: a command for a single mobile device.
)

// Accept header values.
const (
	AcceptXML  = "application/xml"
	AcceptJSON = "application/json"
)

// Mobile device management commands issued through MobileDeviceCommandEndpoint.
const (
	CommandUpdateInventory = "UpdateInventory"
	CommandClearPasscode   = "ClearPasscode"
	CommandRestartDevice   = "RestartDevice"
	CommandWipeDevice      = "WipeDevice"
)

// WellKnownCommands lists the commands the client is commonly used with. Other names are sent as given.
var WellKnownCommands = []string{
	CommandUpdateInventory,
	CommandClearPasscode,
	CommandRestartDevice,
	CommandWipeDevice,
}
