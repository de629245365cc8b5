package profitshare

import (
	"errors"
	"fmt"

	"github.com/studioflow/agency-api/internal/deals"
	"gorm.io/gorm"
)

// ErrOverAllocated is returned in strict mode when a share set allocates
// more than 100% of profit or more flat amount than the profit itself.
var ErrOverAllocated = errors.New("shares exceed available profit")

// Ledger manages the share set attached to a deal. Permissive by default;
// Strict enables total validation.
type Ledger struct {
	DB     *gorm.DB
	Strict bool
}

func NewLedger(db *gorm.DB, strict bool) *Ledger {
	return &Ledger{DB: db, Strict: strict}
}

// ShareEntry is one requested allocation.
type ShareEntry struct {
	UserID     uint    `json:"userId"`
	Percentage float64 `json:"percentage"`
	FlatAmount float64 `json:"flatAmount"`
}

// ResolvedShare pairs a stored share with the amount it currently resolves
// to against the deal's derived profit.
type ResolvedShare struct {
	ProfitShare
	Amount float64 `json:"amount"`
}

// SetShares replaces the deal's full share set in one transaction.
func (l *Ledger) SetShares(dealID uint, entries []ShareEntry) ([]ProfitShare, error) {
	deal, err := deals.NewRepository().FindByID(l.DB, dealID)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.Percentage < 0 || e.Percentage > 100 {
			return nil, fmt.Errorf("percentage %.2f out of range: %w", e.Percentage, ErrOverAllocated)
		}
		if e.FlatAmount < 0 {
			return nil, fmt.Errorf("negative flat amount: %w", ErrOverAllocated)
		}
	}

	if l.Strict {
		var pctTotal, flatTotal float64
		for _, e := range entries {
			pctTotal += e.Percentage
			flatTotal += e.FlatAmount
		}
		profit := deal.Profit()
		if pctTotal > 100 {
			return nil, fmt.Errorf("percentage total %.2f exceeds 100: %w", pctTotal, ErrOverAllocated)
		}
		if flatTotal > profit {
			return nil, fmt.Errorf("flat total %.2f exceeds profit %.2f: %w", flatTotal, profit, ErrOverAllocated)
		}
	}

	shares := make([]ProfitShare, 0, len(entries))
	for _, e := range entries {
		shares = append(shares, ProfitShare{
			DealID:     dealID,
			UserID:     e.UserID,
			Percentage: e.Percentage,
			FlatAmount: e.FlatAmount,
		})
	}

	err = l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("deal_id = ?", dealID).Delete(&ProfitShare{}).Error; err != nil {
			return err
		}
		if len(shares) == 0 {
			return nil
		}
		return tx.Create(&shares).Error
	})
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// ListShares returns the stored shares for a deal.
func (l *Ledger) ListShares(dealID uint) ([]ProfitShare, error) {
	var list []ProfitShare
	err := l.DB.Where("deal_id = ?", dealID).Order("id").Find(&list).Error
	return list, err
}

// Resolve returns the deal's derived profit and each share's resolved
// amount at read time. Percentage shares resolve against the current
// profit; flat amounts pass through.
func (l *Ledger) Resolve(dealID uint) (float64, []ResolvedShare, error) {
	deal, err := deals.NewRepository().FindByID(l.DB, dealID)
	if err != nil {
		return 0, nil, err
	}
	shares, err := l.ListShares(dealID)
	if err != nil {
		return 0, nil, err
	}

	profit := deal.Profit()
	resolved := make([]ResolvedShare, 0, len(shares))
	for _, s := range shares {
		resolved = append(resolved, ResolvedShare{
			ProfitShare: s,
			Amount:      profit*s.Percentage/100 + s.FlatAmount,
		})
	}
	return profit, resolved, nil
}
