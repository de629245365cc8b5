package jobs

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

func (r *Repository) Create(j *Job) error {
	return r.DB.Create(j).Error
}

func (r *Repository) FindByID(id uint) (*Job, error) {
	var j Job
	if err := r.DB.Preload("Assignments").First(&j, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// FindByDealID returns the job created from a deal, if any.
func (r *Repository) FindByDealID(dealID uint) (*Job, error) {
	var j Job
	err := r.DB.Where("deal_id = ?", dealID).First(&j).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// List returns jobs, optionally filtered to a status and/or matched against
// the client name (the production board's search box).
func (r *Repository) List(status, clientSearch string) ([]Job, error) {
	q := r.DB.Preload("Assignments")
	if status != "" {
		q = q.Where("jobs.status = ?", status)
	}
	if clientSearch != "" {
		q = q.Joins("JOIN clients ON clients.id = jobs.client_id").
			Where("clients.name LIKE ?", "%"+clientSearch+"%")
	}
	var list []Job
	err := q.Order("jobs.start_date DESC").Find(&list).Error
	return list, err
}

func (r *Repository) Update(j *Job) error {
	return r.DB.Save(j).Error
}

// Complete marks the job Completed. Completing an already-completed job is
// a no-op, not an error.
func (r *Repository) Complete(id uint) error {
	return r.DB.Model(&Job{}).Where("id = ?", id).Update("status", StatusCompleted).Error
}

// UpsertAssignment adds the user to the job or replaces their role.
func (r *Repository) UpsertAssignment(jobID, userID uint, role string) (*JobAssignment, error) {
	var a JobAssignment
	err := r.DB.Where("job_id = ? AND user_id = ?", jobID, userID).First(&a).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		a = JobAssignment{JobID: jobID, UserID: userID, Role: role}
		if err := r.DB.Create(&a).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		a.Role = role
		if err := r.DB.Save(&a).Error; err != nil {
			return nil, err
		}
	}
	return &a, nil
}

func (r *Repository) RemoveAssignment(jobID, userID uint) error {
	return r.DB.Where("job_id = ? AND user_id = ?", jobID, userID).Delete(&JobAssignment{}).Error
}
