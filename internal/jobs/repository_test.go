package jobs

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studioflow/agency-api/internal/clients"
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
	require.NoError(t, db.AutoMigrate(&users.User{}, &clients.Client{}, &Job{}, &JobAssignment{}))
	return db
}

func TestCompleteIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	j := Job{ClientID: 1, Status: StatusActive}
	require.NoError(t, repo.Create(&j))

	require.NoError(t, repo.Complete(j.ID))
	require.NoError(t, repo.Complete(j.ID))

	got, err := repo.FindByID(j.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, got.Status)
}

func TestUpsertAssignmentReplacesRole(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	j := Job{ClientID: 1, Status: StatusActive}
	require.NoError(t, repo.Create(&j))

	a, err := repo.UpsertAssignment(j.ID, 7, "Second Shooter")
	require.NoError(t, err)
	require.Equal(t, "Second Shooter", a.Role)

	a, err = repo.UpsertAssignment(j.ID, 7, "Lead")
	require.NoError(t, err)
	require.Equal(t, "Lead", a.Role)

	got, err := repo.FindByID(j.ID)
	require.NoError(t, err)
	require.Len(t, got.Assignments, 1, "re-assigning the same user must not add a row")
	require.Equal(t, "Lead", got.Assignments[0].Role)
}

func TestRemoveAssignmentAllowsReAdd(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	j := Job{ClientID: 1, Status: StatusActive}
	require.NoError(t, repo.Create(&j))

	_, err := repo.UpsertAssignment(j.ID, 3, "Retoucher")
	require.NoError(t, err)
	require.NoError(t, repo.RemoveAssignment(j.ID, 3))

	_, err = repo.UpsertAssignment(j.ID, 3, "Retoucher")
	require.NoError(t, err)
}

func TestListFiltersByStatusAndClientName(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	tech := clients.Client{Name: "TechCorp Inc."}
	fashion := clients.Client{Name: "Fashion House"}
	require.NoError(t, db.Create(&tech).Error)
	require.NoError(t, db.Create(&fashion).Error)

	require.NoError(t, db.Create(&[]Job{
		{ClientID: tech.ID, Status: StatusActive},
		{ClientID: tech.ID, Status: StatusCompleted},
		{ClientID: fashion.ID, Status: StatusActive},
	}).Error)

	active, err := repo.List(StatusActive, "")
	require.NoError(t, err)
	require.Len(t, active, 2)

	matched, err := repo.List(StatusActive, "Tech")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, tech.ID, matched[0].ClientID)
}
