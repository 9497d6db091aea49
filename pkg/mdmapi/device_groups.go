package mdmapi

// DeviceGroupAttributes is the attribute schema of the device_groups
// collection. There is deliberately no id field: creation payloads never
// carry a client-assigned identifier.
type DeviceGroupAttributes struct {
	Name string `json:"name" validate:"required"`
}

// DeviceGroups is the device_groups collection: named groups that devices are
// assigned to for profile targeting.
var DeviceGroups = NewCollection[DeviceGroupAttributes]("device_groups", "/api/v1/device_groups")
