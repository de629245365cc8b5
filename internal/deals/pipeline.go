package deals

import (
	"fmt"
	"time"

	"github.com/studioflow/agency-api/internal/jobs"
	"github.com/studioflow/agency-api/internal/models"
	"gorm.io/gorm"
)

// Pipeline owns stage transitions and their side effects. The stage update
// and any job creation happen inside one transaction.
type Pipeline struct {
	DB         *gorm.DB
	Repository Repository
}

func NewPipeline(db *gorm.DB) *Pipeline {
	return &Pipeline{DB: db, Repository: NewRepository()}
}

// MoveStage sets the deal's stage. Any stage may move to any stage; there
// is deliberately no reverse-transition guard. Crossing into Won creates
// the linked job exactly once: a lookup guard covers sequential replays and
// the unique index on jobs.deal_id covers concurrent double-submits.
// Moving a Won deal elsewhere never unlinks or deletes its job.
func (p *Pipeline) MoveStage(dealID uint, target string) (*Deal, *jobs.Job, error) {
	if !models.ValidStage(target) {
		return nil, nil, fmt.Errorf("stage %q: %w", target, models.ErrInvalidStage)
	}

	var (
		deal    *Deal
		created *jobs.Job
	)
	err := p.DB.Transaction(func(tx *gorm.DB) error {
		d, err := p.Repository.FindByID(tx, dealID)
		if err != nil {
			return err
		}

		d.Stage = target
		if err := p.Repository.Update(tx, d); err != nil {
			return err
		}

		if target == models.StageWon {
			var count int64
			if err := tx.Model(&jobs.Job{}).Where("deal_id = ?", d.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				dealRef := d.ID
				j := jobs.Job{
					ClientID:   d.ClientID,
					DealID:     &dealRef,
					Title:      d.Title,
					Status:     jobs.StatusActive,
					StartDate:  time.Now(),
					IsRetainer: d.IsRecurring,
				}
				if err := tx.Create(&j).Error; err != nil {
					// Unique-index backstop fired: a concurrent request
					// already created the job. Roll everything back and
					// report the conflict rather than double-linking.
					return fmt.Errorf("job already linked to deal %d: %w", d.ID, models.ErrConstraintViolation)
				}
				created = &j
			}
		}

		deal = d
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return deal, created, nil
}
