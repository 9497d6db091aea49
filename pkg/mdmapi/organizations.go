package mdmapi

// OrganizationAttributes is the attribute schema of the organizations
// collection. The x509 fields become the subject of certificates issued by
// the server's internal CA; their lengths follow RFC 5280.
type OrganizationAttributes struct {
	Name          string `json:"name" validate:"required"`
	PayloadPrefix string `json:"payload_prefix,omitempty"`
	X509OU        string `json:"x509_ou,omitempty" validate:"omitempty,max=32"`
	X509O         string `json:"x509_o,omitempty" validate:"omitempty,max=64"`
	X509ST        string `json:"x509_st,omitempty" validate:"omitempty,max=128"`
	X509C         string `json:"x509_c,omitempty" validate:"omitempty,len=2"`
}

// Organizations is the organizations collection.
var Organizations = NewCollection[OrganizationAttributes]("organizations", "/api/v1/organizations")
