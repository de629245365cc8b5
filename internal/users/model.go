package users

import "gorm.io/gorm"

const (
	RoleAdmin        = "Admin"
	RolePhotographer = "Photographer"
)

// User is a team member: an admin or a photographer/contributor.
type User struct {
	gorm.Model
	Username     string `gorm:"size:80;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:256;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'Photographer'" json:"role"`
	FullName     string `gorm:"size:120" json:"fullName"`
	Email        string `gorm:"size:120" json:"email"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
