package deals

import (
	"errors"

	"github.com/studioflow/agency-api/internal/models"
	"gorm.io/gorm"
)

type Repository interface {
	Save(db *gorm.DB, d *Deal) error
	List(db *gorm.DB) ([]Deal, error)
	ListByStage(db *gorm.DB, stage string) ([]Deal, error)
	FindByID(db *gorm.DB, id uint) (*Deal, error)
	Update(db *gorm.DB, d *Deal) error
	Delete(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Save(db *gorm.DB, d *Deal) error {
	return db.Create(d).Error
}

func (r *repositoryImpl) List(db *gorm.DB) ([]Deal, error) {
	var list []Deal
	err := db.Order("id DESC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) ListByStage(db *gorm.DB, stage string) ([]Deal, error) {
	var list []Deal
	err := db.Where("stage = ?", stage).Order("id").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Deal, error) {
	var d Deal
	if err := db.First(&d, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repositoryImpl) Update(db *gorm.DB, d *Deal) error {
	return db.Save(d).Error
}

func (r *repositoryImpl) Delete(db *gorm.DB, id uint) error {
	return db.Delete(&Deal{}, id).Error
}
