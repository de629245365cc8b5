package database

import (
	"log/slog"
	"time"

	"github.com/studioflow/agency-api/internal/clients"
	"github.com/studioflow/agency-api/internal/deals"
	"github.com/studioflow/agency-api/internal/jobs"
	"github.com/studioflow/agency-api/internal/models"
	"github.com/studioflow/agency-api/internal/profitshare"
	"github.com/studioflow/agency-api/internal/tasks"
	"github.com/studioflow/agency-api/internal/users"
	"github.com/studioflow/agency-api/internal/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates every table, including the unique index on
// jobs.deal_id that backs pipeline idempotence.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&clients.Client{},
		&deals.Deal{},
		&profitshare.ProfitShare{},
		&jobs.Job{},
		&jobs.JobAssignment{},
		&tasks.Task{},
	)
}

// Seed populates a fresh database with a working data set: an admin, two
// photographers, four clients, deals across every stage and one in-flight
// job. Runs only when the users table is empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&users.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		mkUser := func(username, password, role, fullName string) (*users.User, error) {
			hash, err := utils.HashPassword(password)
			if err != nil {
				return nil, err
			}
			u := users.User{Username: username, PasswordHash: hash, Role: role, FullName: fullName}
			return &u, tx.Create(&u).Error
		}

		if _, err := mkUser("admin", "admin", users.RoleAdmin, "Studio Admin"); err != nil {
			return err
		}
		alex, err := mkUser("alex", "alex123", users.RolePhotographer, "Alex Reyes")
		if err != nil {
			return err
		}
		jordan, err := mkUser("jordan", "jordan123", users.RolePhotographer, "Jordan Lee")
		if err != nil {
			return err
		}

		cs := []clients.Client{
			{Name: "TechCorp Inc.", Industry: "Technology", Email: "contact@techcorp.com", Phone: "555-0101"},
			{Name: "Fashion House", Industry: "Fashion", Email: "info@fashionhouse.com", Phone: "555-0102"},
			{Name: "Startup Labs", Industry: "Technology", Email: "hello@startuplabs.io", Phone: "555-0103"},
			{Name: "Green Foods Co.", Industry: "Food & Beverage", Email: "marketing@greenfoods.com", Phone: "555-0104"},
		}
		if err := tx.Create(&cs).Error; err != nil {
			return err
		}

		ds := []deals.Deal{
			{ClientID: cs[0].ID, Title: "Annual Report Photography", Value: 5000, CostInternal: 800, CostExternal: 200, Stage: models.StageNew, Notes: "Need high-quality corporate photos"},
			{ClientID: cs[1].ID, Title: "Spring Collection Shoot", Value: 12000, CostInternal: 3000, CostExternal: 1500, Stage: models.StageProposal, Notes: "20 looks, studio and outdoor"},
			{ClientID: cs[2].ID, Title: "Monthly Content Package", Value: 3500, CostInternal: 900, Stage: models.StageNegotiation, IsRecurring: true, Notes: "Ongoing social media content"},
			{ClientID: cs[0].ID, Title: "Product Launch Event", Value: 8000, CostInternal: 1500, CostExternal: 500, Stage: models.StageWon, Notes: "Launch event coverage"},
			{ClientID: cs[3].ID, Title: "Menu Photography", Value: 2500, CostInternal: 400, Stage: models.StageNew, Notes: "New menu items"},
		}
		if err := tx.Create(&ds).Error; err != nil {
			return err
		}

		wonID := ds[3].ID
		job := jobs.Job{ClientID: cs[0].ID, DealID: &wonID, Title: ds[3].Title, Status: jobs.StatusActive, StartDate: time.Now()}
		if err := tx.Create(&job).Error; err != nil {
			return err
		}

		due := func(daysAhead int) *time.Time {
			d := time.Now().AddDate(0, 0, daysAhead)
			return &d
		}
		ts := []tasks.Task{
			{JobID: job.ID, Title: "Event Coverage - 50 Photos", Status: "Shooting", AssigneeID: &alex.ID, DueDate: due(7)},
			{JobID: job.ID, Title: "Executive Headshots", Status: "To Do", AssigneeID: &jordan.ID, DueDate: due(10)},
			{JobID: job.ID, Title: "Product Display Photos", Status: "Editing", AssigneeID: &alex.ID, DueDate: due(4)},
		}
		if err := tx.Create(&ts).Error; err != nil {
			return err
		}

		slog.Info("database seeded", "users", 3, "clients", len(cs), "deals", len(ds))
		return nil
	})
}
