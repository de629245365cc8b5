package deals

import "gorm.io/gorm"

// Deal is a sales opportunity tracked through the five-stage pipeline.
// Profit is always derived from value and costs, never stored.
type Deal struct {
	gorm.Model
	ClientID     uint    `gorm:"not null;index" json:"clientId"`
	Title        string  `gorm:"size:200;not null" json:"title"`
	Value        float64 `gorm:"not null;default:0" json:"value"`
	CostInternal float64 `gorm:"not null;default:0" json:"costInternal"`
	CostExternal float64 `gorm:"not null;default:0" json:"costExternal"`
	Stage        string  `gorm:"size:20;not null;default:'New';index" json:"stage"`
	IsRecurring  bool    `gorm:"not null;default:false" json:"isRecurring"`
	Notes        string  `gorm:"type:text" json:"notes"`
}

// Profit is the deal's margin: value minus internal and external cost. May
// be negative.
func (d *Deal) Profit() float64 {
	return d.Value - d.CostInternal - d.CostExternal
}
