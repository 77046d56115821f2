package models

import "time"

// UserType is the closed set of backend roles.
type UserType string

const (
	UserTypeGymOwner UserType = "GYM_OWNER"
	UserTypeMember   UserType = "MEMBER"
	UserTypeEmployee UserType = "EMPLOYEE"
	UserTypeAdmin    UserType = "ADMIN"
)

// Valid reports whether t is one of the known roles.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeGymOwner, UserTypeMember, UserTypeEmployee, UserTypeAdmin:
		return true
	}
	return false
}

// Account is the server-authoritative identity record.
type Account struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	UserType      UserType  `json:"userType"`
	IsActive      bool      `json:"isActive"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Profile is the server-authoritative display identity, owned one-to-one
// by an Account. It may be absent right after registration while email
// verification is pending.
type Profile struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// SessionUser is the client-side view of the current identity, derived
// from Account+Profile. It is owned and mutated only by the session
// controller.
type SessionUser struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Role           UserType `json:"role"`
	Avatar         string   `json:"avatar,omitempty"`
	ApprovalStatus string   `json:"approvalStatus,omitempty"`
}

// NewSessionUser derives the view model from the authoritative records.
// The profile may be nil; the email then doubles as display name.
func NewSessionUser(account Account, profile *Profile) SessionUser {
	u := SessionUser{
		ID:    account.ID,
		Email: account.Email,
		Role:  account.UserType,
		Name:  account.Email,
	}
	if !account.IsActive {
		u.ApprovalStatus = "pending"
	}
	if profile == nil {
		return u
	}
	name := profile.FirstName
	if profile.LastName != "" {
		if name != "" {
			name += " "
		}
		name += profile.LastName
	}
	if name == "" {
		name = profile.Username
	}
	if name != "" {
		u.Name = name
	}
	u.Avatar = profile.Avatar
	return u
}
