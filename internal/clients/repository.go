package clients

import (
	"errors"
	"fmt"

	"github.com/studioflow/agency-api/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Client) error {
	return r.DB.Create(c).Error
}

func (r *Repository) List() ([]Client, error) {
	var list []Client
	err := r.DB.Order("name").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Client, error) {
	var c Client
	if err := r.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Update(c *Client) error {
	return r.DB.Save(c).Error
}

// Delete removes a client only when nothing references it. Deals and jobs
// are counted by table name to keep this package free of upward imports.
func (r *Repository) Delete(id uint) error {
	var dealCount, jobCount int64
	if err := r.DB.Table("deals").Where("client_id = ? AND deleted_at IS NULL", id).Count(&dealCount).Error; err != nil {
		return err
	}
	if err := r.DB.Table("jobs").Where("client_id = ? AND deleted_at IS NULL", id).Count(&jobCount).Error; err != nil {
		return err
	}
	if dealCount > 0 || jobCount > 0 {
		return fmt.Errorf("client has %d deals and %d jobs: %w", dealCount, jobCount, models.ErrConstraintViolation)
	}
	return r.DB.Delete(&Client{}, id).Error
}
