package mdmapi

// DeviceAttributes is the attribute schema of the devices collection: an
// enrolled device and the inventory the device reported about itself. All
// fields except the UDID are optional; a freshly enrolled device may not have
// reported inventory yet.
type DeviceAttributes struct {
	UDID                  string `json:"udid" validate:"required"`
	SerialNumber          string `json:"serial_number,omitempty"`
	DeviceName            string `json:"device_name,omitempty"`
	Model                 string `json:"model,omitempty"`
	ModelName             string `json:"model_name,omitempty"`
	OSVersion             string `json:"os_version,omitempty"`
	BuildVersion          string `json:"build_version,omitempty"`
	ProductName           string `json:"product_name,omitempty"`
	Hostname              string `json:"hostname,omitempty"`
	LocalHostname         string `json:"local_hostname,omitempty"`
	IsEnrolled            bool   `json:"is_enrolled,omitempty"`
	AwaitingConfiguration bool   `json:"awaiting_configuration,omitempty"`
	LastSeen              string `json:"last_seen,omitempty"`
}

// Devices is the devices collection. Devices enroll through the MDM checkin
// flow, so the client only lists and inspects them; it never creates one.
var Devices = NewCollection[DeviceAttributes]("devices", "/api/v1/devices")
