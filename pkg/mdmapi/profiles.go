package mdmapi

// ProfileAttributes is the attribute schema of the profiles collection: a
// configuration profile stored on the server for deployment to device groups.
type ProfileAttributes struct {
	Identifier  string `json:"identifier" validate:"required"`
	UUID        string `json:"uuid,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Profiles is the profiles collection.
var Profiles = NewCollection[ProfileAttributes]("profiles", "/api/v1/profiles")
