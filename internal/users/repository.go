package users

import (
	"errors"

	"github.com/studioflow/agency-api/internal/models"
	"gorm.io/gorm"
)

// Repository wraps database access for users.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(u *User) error {
	return r.DB.Create(u).Error
}

func (r *Repository) List() ([]User, error) {
	var list []User
	err := r.DB.Order("username").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*User, error) {
	var u User
	if err := r.DB.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) FindByUsername(username string) (*User, error) {
	var u User
	if err := r.DB.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Update(u *User) error {
	return r.DB.Save(u).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&User{}, id).Error
}
