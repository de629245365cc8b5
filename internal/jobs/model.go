package jobs

import (
	"time"

	"gorm.io/gorm"
)

const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

// Job is a production engagement, usually spawned from a won deal. The deal
// reference is weak: deleting the deal never removes the job. The unique
// index on DealID is what makes "move to Won" idempotent under replayed or
// concurrent requests.
type Job struct {
	gorm.Model
	ClientID   uint      `gorm:"not null;index" json:"clientId"`
	DealID     *uint     `gorm:"uniqueIndex" json:"dealId,omitempty"`
	Title      string    `gorm:"size:200" json:"title"`
	Status     string    `gorm:"size:20;not null;default:'Active';index" json:"status"`
	StartDate  time.Time `json:"startDate"`
	IsRetainer bool      `gorm:"not null;default:false" json:"isRetainer"`

	Assignments []JobAssignment `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"assignments"`
}

// JobAssignment links a user to a job with a role label. One row per
// (job, user) pair; re-assigning replaces the role. Hard-deleted (no
// DeletedAt) so a removed assignment never blocks re-adding the user.
type JobAssignment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_job_user" json:"jobId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_job_user" json:"userId"`
	Role      string    `gorm:"size:50" json:"role"`
}
