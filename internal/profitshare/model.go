package profitshare

import "gorm.io/gorm"

// ProfitShare allocates part of a deal's profit to a team member, as a
// percentage of profit and/or a flat amount. Record-keeping only: totals
// are not validated against 100% or the computed profit unless strict mode
// is switched on.
type ProfitShare struct {
	gorm.Model
	DealID     uint    `gorm:"not null;index" json:"dealId"`
	UserID     uint    `gorm:"not null" json:"userId"`
	Percentage float64 `gorm:"not null;default:0" json:"percentage"`
	FlatAmount float64 `gorm:"not null;default:0" json:"flatAmount"`
}
