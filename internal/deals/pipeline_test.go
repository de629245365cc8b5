package deals

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studioflow/agency-api/internal/clients"
	"github.com/studioflow/agency-api/internal/jobs"
	"github.com/studioflow/agency-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&clients.Client{}, &Deal{}, &jobs.Job{}, &jobs.JobAssignment{}))
	return db
}

func newDeal(t *testing.T, db *gorm.DB, stage string, recurring bool) *Deal {
	t.Helper()
	c := clients.Client{Name: "TechCorp Inc."}
	require.NoError(t, db.Create(&c).Error)
	d := Deal{ClientID: c.ID, Title: "Product Launch Event", Value: 8000, Stage: stage, IsRecurring: recurring}
	require.NoError(t, db.Create(&d).Error)
	return &d
}

func TestMoveStageToWonCreatesJobOnce(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db)
	d := newDeal(t, db, models.StageNegotiation, true)

	_, job, err := p.MoveStage(d.ID, models.StageWon)
	require.NoError(t, err)
	require.NotNil(t, job)
	require.Equal(t, d.ClientID, job.ClientID)
	require.Equal(t, jobs.StatusActive, job.Status)
	require.True(t, job.IsRetainer, "retainer flag carries over from recurring deal")
	require.NotNil(t, job.DealID)
	require.Equal(t, d.ID, *job.DealID)

	// Second Won transition is a no-op with respect to job creation.
	_, job2, err := p.MoveStage(d.ID, models.StageWon)
	require.NoError(t, err)
	require.Nil(t, job2)

	var count int64
	require.NoError(t, db.Model(&jobs.Job{}).Where("deal_id = ?", d.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestMoveStageBackwardsKeepsJob(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db)
	d := newDeal(t, db, models.StageNew, false)

	_, job, err := p.MoveStage(d.ID, models.StageWon)
	require.NoError(t, err)
	require.NotNil(t, job)

	// Reverse transitions are allowed and never unlink the job.
	moved, created, err := p.MoveStage(d.ID, models.StageNew)
	require.NoError(t, err)
	require.Nil(t, created)
	require.Equal(t, models.StageNew, moved.Stage)

	var count int64
	require.NoError(t, db.Model(&jobs.Job{}).Where("deal_id = ?", d.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestMoveStageRejectsUnknownStage(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db)
	d := newDeal(t, db, models.StageNew, false)

	for _, bad := range []string{"Closed", "won", ""} {
		_, _, err := p.MoveStage(d.ID, bad)
		require.ErrorIs(t, err, models.ErrInvalidStage, "stage %q", bad)
	}

	// State untouched after rejections.
	got, err := NewRepository().FindByID(db, d.ID)
	require.NoError(t, err)
	require.Equal(t, models.StageNew, got.Stage)
}

func TestMoveStageMissingDeal(t *testing.T) {
	db := newTestDB(t)
	p := NewPipeline(db)

	_, _, err := p.MoveStage(9999, models.StageWon)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestUniqueDealIndexBacksUpTheGuard(t *testing.T) {
	db := newTestDB(t)
	d := newDeal(t, db, models.StageWon, false)

	ref := d.ID
	first := jobs.Job{ClientID: d.ClientID, DealID: &ref, Status: jobs.StatusActive}
	require.NoError(t, db.Create(&first).Error)

	dup := jobs.Job{ClientID: d.ClientID, DealID: &ref, Status: jobs.StatusActive}
	require.Error(t, db.Create(&dup).Error, "unique index on deal_id must reject the duplicate")
}

func TestProfitIsDerived(t *testing.T) {
	cases := []struct {
		name                          string
		value, costInt, costExt, want float64
	}{
		{"typical", 1000, 200, 100, 700},
		{"zero costs", 5000, 0, 0, 5000},
		{"negative margin", 1000, 900, 400, -300},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Deal{Value: tc.value, CostInternal: tc.costInt, CostExternal: tc.costExt}
			require.Equal(t, tc.want, d.Profit())
		})
	}
}
