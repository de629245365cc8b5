package tasks

import (
	"errors"

	"github.com/studioflow/agency-api/internal/models"
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(t *Task) error {
	return r.DB.Create(t).Error
}

func (r *Repository) FindByID(id uint) (*Task, error) {
	var t Task
	if err := r.DB.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *Repository) ListByJob(jobID uint) ([]Task, error) {
	var list []Task
	err := r.DB.Where("job_id = ?", jobID).Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) UpdateStatus(id uint, status string) error {
	return r.DB.Model(&Task{}).Where("id = ?", id).Update("status", status).Error
}

func (r *Repository) Update(t *Task) error {
	return r.DB.Save(t).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Task{}, id).Error
}
