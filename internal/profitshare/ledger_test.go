package profitshare

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/studioflow/agency-api/internal/deals"
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
	require.NoError(t, db.AutoMigrate(&deals.Deal{}, &ProfitShare{}))
	return db
}

func seedDeal(t *testing.T, db *gorm.DB) *deals.Deal {
	t.Helper()
	d := deals.Deal{ClientID: 1, Title: "Annual Report Photography", Value: 1000, CostInternal: 200, CostExternal: 100, Stage: models.StageNew}
	require.NoError(t, db.Create(&d).Error)
	return &d
}

func TestPermissiveOverAllocationIsAccepted(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, false)
	d := seedDeal(t, db) // profit = 700

	// 50% of 700 (=350) plus a 700 flat: total 1050 > 700. Accepted by
	// default; record-keeping only.
	shares, err := ledger.SetShares(d.ID, []ShareEntry{
		{UserID: 1, Percentage: 50},
		{UserID: 2, FlatAmount: 700},
	})
	require.NoError(t, err)
	require.Len(t, shares, 2)

	profit, resolved, err := ledger.Resolve(d.ID)
	require.NoError(t, err)
	require.Equal(t, 700.0, profit)
	require.Equal(t, 350.0, resolved[0].Amount)
	require.Equal(t, 700.0, resolved[1].Amount)
}

func TestStrictModeRejectsOverAllocation(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, true)
	d := seedDeal(t, db)

	cases := []struct {
		name    string
		entries []ShareEntry
	}{
		{"percentage total over 100", []ShareEntry{{UserID: 1, Percentage: 60}, {UserID: 2, Percentage: 50}}},
		{"flat total over profit", []ShareEntry{{UserID: 1, FlatAmount: 400}, {UserID: 2, FlatAmount: 400}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.SetShares(d.ID, tc.entries)
			require.ErrorIs(t, err, ErrOverAllocated)

			// Rejection leaves nothing behind.
			stored, err := ledger.ListShares(d.ID)
			require.NoError(t, err)
			require.Empty(t, stored)
		})
	}
}

func TestOutOfRangeEntriesRejectedEvenWhenPermissive(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, false)
	d := seedDeal(t, db)

	_, err := ledger.SetShares(d.ID, []ShareEntry{{UserID: 1, Percentage: 120}})
	require.ErrorIs(t, err, ErrOverAllocated)

	_, err = ledger.SetShares(d.ID, []ShareEntry{{UserID: 1, FlatAmount: -5}})
	require.ErrorIs(t, err, ErrOverAllocated)
}

func TestSetSharesReplacesTheFullSet(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, false)
	d := seedDeal(t, db)

	_, err := ledger.SetShares(d.ID, []ShareEntry{{UserID: 1, Percentage: 40}, {UserID: 2, Percentage: 30}})
	require.NoError(t, err)

	_, err = ledger.SetShares(d.ID, []ShareEntry{{UserID: 3, Percentage: 10}})
	require.NoError(t, err)

	stored, err := ledger.ListShares(d.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.EqualValues(t, 3, stored[0].UserID)

	// Empty replacement clears the ledger.
	_, err = ledger.SetShares(d.ID, nil)
	require.NoError(t, err)
	stored, err = ledger.ListShares(d.ID)
	require.NoError(t, err)
	require.Empty(t, stored)
}

func TestSetSharesUnknownDeal(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db, false)

	_, err := ledger.SetShares(4242, []ShareEntry{{UserID: 1, Percentage: 10}})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfitNeverPersisted(t *testing.T) {
	db := newTestDB(t)
	d := seedDeal(t, db)

	// Profit tracks value/cost edits with no write anywhere.
	d.Value = 2000
	require.NoError(t, db.Save(d).Error)

	got, err := deals.NewRepository().FindByID(db, d.ID)
	require.NoError(t, err)
	require.Equal(t, 1700.0, got.Profit())
}
