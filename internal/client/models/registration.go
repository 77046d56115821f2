package models

// RegistrationPayload is the normalized body of POST /auth/register.
// Role-specific fields are populated according to UserType: GymName for
// gym owners, BusinessName for employees/vendors, neither for members.
type RegistrationPayload struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Username     string   `json:"username"`
	UserType     UserType `json:"userType"`
	FirstName    string   `json:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	GymName      string   `json:"gymName,omitempty"`
	BusinessName string   `json:"businessName,omitempty"`
}
