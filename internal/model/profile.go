package model

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// UserProfile is a household member's profile. Role is assigned once at
// registration and never changed by normal users.
type UserProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
	Color       string `json:"color"`
	Role        string `json:"role,omitempty"`
	HouseholdID string `json:"household_id"`
}
