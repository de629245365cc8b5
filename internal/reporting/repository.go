package reporting

import (
	"time"

	"github.com/studioflow/agency-api/internal/clients"
	"github.com/studioflow/agency-api/internal/deals"
	"github.com/studioflow/agency-api/internal/jobs"
	"github.com/studioflow/agency-api/internal/models"
	"github.com/studioflow/agency-api/internal/tasks"
	"github.com/studioflow/agency-api/internal/users"
	"gorm.io/gorm"
)

// Repository aggregates across deals, jobs, tasks and clients. Read-only:
// nothing in this package mutates state.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// TasksForMonth returns tasks whose due date falls inside the month,
// ordered by due date, optionally restricted to one job.
func (r *Repository) TasksForMonth(year int, month time.Month, jobID *uint) ([]tasks.Task, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	q := r.DB.Where("due_date IS NOT NULL AND due_date >= ? AND due_date < ?", start, end)
	if jobID != nil {
		q = q.Where("job_id = ?", *jobID)
	}

	var list []tasks.Task
	err := q.Order("due_date, id").Find(&list).Error
	return list, err
}

// ClientSummary holds the per-client rollup.
type ClientSummary struct {
	ClientID       uint    `json:"clientId"`
	ClientName     string  `json:"clientName"`
	DealCount      int64   `json:"dealCount"`
	ActiveJobCount int64   `json:"activeJobCount"`
	TotalValue     float64 `json:"totalValue"`
}

func (r *Repository) ClientSummary(clientID uint) (*ClientSummary, error) {
	c, err := clients.NewRepository(r.DB).FindByID(clientID)
	if err != nil {
		return nil, err
	}

	s := ClientSummary{ClientID: c.ID, ClientName: c.Name}
	if err := r.DB.Model(&deals.Deal{}).Where("client_id = ?", clientID).Count(&s.DealCount).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&jobs.Job{}).
		Where("client_id = ? AND status = ?", clientID, jobs.StatusActive).
		Count(&s.ActiveJobCount).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&deals.Deal{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(SUM(value), 0)").Scan(&s.TotalValue).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// Workload is everything currently on a user's plate.
type Workload struct {
	UserID uint         `json:"userId"`
	Tasks  []tasks.Task `json:"tasks"`
	Jobs   []jobs.Job   `json:"jobs"`
}

// UserWorkload returns the user's open (non-Done) tasks and the jobs they
// are assigned to.
func (r *Repository) UserWorkload(userID uint) (*Workload, error) {
	if _, err := users.NewRepository(r.DB).FindByID(userID); err != nil {
		return nil, err
	}

	wl := Workload{UserID: userID}
	if err := r.DB.Where("assignee_id = ? AND status <> ?", userID, models.StatusDone).
		Order("due_date, id").Find(&wl.Tasks).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Preload("Assignments").
		Joins("JOIN job_assignments ON job_assignments.job_id = jobs.id").
		Where("job_assignments.user_id = ?", userID).
		Find(&wl.Jobs).Error; err != nil {
		return nil, err
	}
	return &wl, nil
}

// Dashboard is the landing-page rollup.
type Dashboard struct {
	TotalDeals    int64        `json:"totalDeals"`
	ActiveJobs    int64        `json:"activeJobs"`
	PendingTasks  int64        `json:"pendingTasks"`
	WonDealsValue float64      `json:"wonDealsValue"`
	RecentDeals   []deals.Deal `json:"recentDeals"`
	UpcomingTasks []tasks.Task `json:"upcomingTasks"`
}

func (r *Repository) Dashboard() (*Dashboard, error) {
	var d Dashboard
	if err := r.DB.Model(&deals.Deal{}).Count(&d.TotalDeals).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&jobs.Job{}).Where("status = ?", jobs.StatusActive).Count(&d.ActiveJobs).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&tasks.Task{}).Where("status <> ?", models.StatusDone).Count(&d.PendingTasks).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Model(&deals.Deal{}).
		Where("stage = ?", models.StageWon).
		Select("COALESCE(SUM(value), 0)").Scan(&d.WonDealsValue).Error; err != nil {
		return nil, err
	}

	if err := r.DB.Order("id DESC").Limit(5).Find(&d.RecentDeals).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Where("status <> ? AND due_date IS NOT NULL", models.StatusDone).
		Order("due_date").Limit(5).Find(&d.UpcomingTasks).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
