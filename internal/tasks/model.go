package tasks

import (
	"time"

	"gorm.io/gorm"
)

// Task is one deliverable inside a job, tracked through the configured
// status vocabulary. It never auto-transitions; every status change is an
// explicit user action.
type Task struct {
	gorm.Model
	JobID       uint       `gorm:"not null;index" json:"jobId"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:30;not null" json:"status"`
	AssigneeID  *uint      `gorm:"index" json:"assigneeId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}
