package reporting

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/studioflow/agency-api/internal/clients"
	"github.com/studioflow/agency-api/internal/deals"
	"github.com/studioflow/agency-api/internal/jobs"
	"github.com/studioflow/agency-api/internal/models"
	"github.com/studioflow/agency-api/internal/tasks"
	"github.com/studioflow/agency-api/internal/users"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&users.User{}, &clients.Client{}, &deals.Deal{},
		&jobs.Job{}, &jobs.JobAssignment{}, &tasks.Task{},
	))
	return db
}

func date(y int, m time.Month, d int) *time.Time {
	dt := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &dt
}

func TestTasksForMonth(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	j := jobs.Job{ClientID: 1, Status: jobs.StatusActive}
	other := jobs.Job{ClientID: 1, Status: jobs.StatusActive}
	require.NoError(t, db.Create(&j).Error)
	require.NoError(t, db.Create(&other).Error)

	require.NoError(t, db.Create(&[]tasks.Task{
		{JobID: j.ID, Title: "Edit photos", Status: "To Do", DueDate: date(2026, time.September, 15)},
		{JobID: j.ID, Title: "Headshots", Status: "To Do", DueDate: date(2026, time.September, 3)},
		{JobID: other.ID, Title: "Menu shoot", Status: "To Do", DueDate: date(2026, time.September, 20)},
		{JobID: j.ID, Title: "Next month", Status: "To Do", DueDate: date(2026, time.October, 1)},
		{JobID: j.ID, Title: "No due date", Status: "To Do"},
	}).Error)

	list, err := repo.TasksForMonth(2026, time.September, nil)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// Ordered by due date.
	require.Equal(t, "Headshots", list[0].Title)
	require.Equal(t, "Edit photos", list[1].Title)
	require.Equal(t, "Menu shoot", list[2].Title)

	// Job filter narrows the set.
	filtered, err := repo.TasksForMonth(2026, time.September, &j.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 2)
}

func TestFreshTaskAppearsInItsDueMonth(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	j := jobs.Job{ClientID: 1, Status: jobs.StatusActive}
	require.NoError(t, db.Create(&j).Error)

	task := tasks.Task{JobID: j.ID, Title: "Edit photos", Status: "To Do", DueDate: date(2026, time.November, 5)}
	require.NoError(t, tasks.NewRepository(db).Create(&task))

	list, err := repo.TasksForMonth(2026, time.November, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, task.ID, list[0].ID)
}

func TestClientSummary(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	c := clients.Client{Name: "TechCorp Inc."}
	require.NoError(t, db.Create(&c).Error)

	require.NoError(t, db.Create(&[]deals.Deal{
		{ClientID: c.ID, Title: "Annual Report", Value: 5000, Stage: models.StageNew},
		{ClientID: c.ID, Title: "Launch Event", Value: 8000, Stage: models.StageWon},
	}).Error)
	require.NoError(t, db.Create(&[]jobs.Job{
		{ClientID: c.ID, Status: jobs.StatusActive},
		{ClientID: c.ID, Status: jobs.StatusCompleted},
	}).Error)

	s, err := repo.ClientSummary(c.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, s.DealCount)
	require.EqualValues(t, 1, s.ActiveJobCount)
	require.Equal(t, 13000.0, s.TotalValue)
}

func TestClientSummaryUnknownClient(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.ClientSummary(999)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestUserWorkload(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	u := users.User{Username: "alex", PasswordHash: "x", Role: users.RolePhotographer}
	require.NoError(t, db.Create(&u).Error)

	j := jobs.Job{ClientID: 1, Status: jobs.StatusActive}
	require.NoError(t, db.Create(&j).Error)
	require.NoError(t, db.Create(&jobs.JobAssignment{JobID: j.ID, UserID: u.ID, Role: "Lead"}).Error)

	require.NoError(t, db.Create(&[]tasks.Task{
		{JobID: j.ID, Title: "Open task", Status: "To Do", AssigneeID: &u.ID},
		{JobID: j.ID, Title: "Finished task", Status: models.StatusDone, AssigneeID: &u.ID},
		{JobID: j.ID, Title: "Someone else's", Status: "To Do"},
	}).Error)

	wl, err := repo.UserWorkload(u.ID)
	require.NoError(t, err)
	require.Len(t, wl.Tasks, 1)
	require.Equal(t, "Open task", wl.Tasks[0].Title)
	require.Len(t, wl.Jobs, 1)
	require.Equal(t, j.ID, wl.Jobs[0].ID)
}

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Create(&[]deals.Deal{
		{ClientID: 1, Title: "A", Value: 5000, Stage: models.StageWon},
		{ClientID: 1, Title: "B", Value: 3000, Stage: models.StageWon},
		{ClientID: 1, Title: "C", Value: 2000, Stage: models.StageNew},
	}).Error)
	j := jobs.Job{ClientID: 1, Status: jobs.StatusActive}
	require.NoError(t, db.Create(&j).Error)
	require.NoError(t, db.Create(&[]tasks.Task{
		{JobID: j.ID, Title: "Pending", Status: "To Do", DueDate: date(2026, time.December, 1)},
		{JobID: j.ID, Title: "Closed", Status: models.StatusDone},
	}).Error)

	d, err := repo.Dashboard()
	require.NoError(t, err)
	require.EqualValues(t, 3, d.TotalDeals)
	require.EqualValues(t, 1, d.ActiveJobs)
	require.EqualValues(t, 1, d.PendingTasks)
	require.Equal(t, 8000.0, d.WonDealsValue)
	require.Len(t, d.RecentDeals, 3)
	require.Len(t, d.UpcomingTasks, 1)
}
