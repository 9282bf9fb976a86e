package models

// Role is the authorization level carried in access tokens.
type Role string

const (
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

// User represents the user model in the database
type User struct {
	Base
	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"size:16;not null;default:investor" json:"role"`
}

// IsAdmin reports whether the user may manage the catalogue.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
