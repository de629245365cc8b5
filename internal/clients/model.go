package clients

import "gorm.io/gorm"

// Client is a contact record referenced by deals and jobs.
type Client struct {
	gorm.Model
	Name     string `gorm:"size:100;not null" json:"name"`
	Industry string `gorm:"size:100" json:"industry"`
	Email    string `gorm:"size:120" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
}
