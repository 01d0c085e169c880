package models

import "time"

// Stocks groups the four absolute population counts reported for one period.
type Stocks struct {
	RefugeeIndividuals  int
	RefugeeHouseholds   int
	ReturneeIndividuals int
	ReturneeHouseholds  int
}

// NewArrivals derives the period-over-period flow from two stocks, floored at
// zero: a stock decrease (departures, corrections) is reported as zero new
// arrivals, never as a negative count.
func NewArrivals(current, previous Stocks) Stocks {
	return Stocks{
		RefugeeIndividuals:  flooredDelta(current.RefugeeIndividuals, previous.RefugeeIndividuals),
		RefugeeHouseholds:   flooredDelta(current.RefugeeHouseholds, previous.RefugeeHouseholds),
		ReturneeIndividuals: flooredDelta(current.ReturneeIndividuals, previous.ReturneeIndividuals),
		ReturneeHouseholds:  flooredDelta(current.ReturneeHouseholds, previous.ReturneeHouseholds),
	}
}

func flooredDelta(current, previous int) int {
	if current <= previous {
		return 0
	}
	return current - previous
}

// SiteStatRecord represents the site_stats table: one site-period observation.
// The four new_* columns are always recomputed at write time from the current
// and previous period, never accepted from callers.
type SiteStatRecord struct {
	RecordID               uint      `gorm:"primaryKey;column:record_id" json:"record_id"`
	SiteID                 string    `gorm:"column:site_id;uniqueIndex:idx_site_period" json:"site_id"`
	Month                  string    `gorm:"column:month;uniqueIndex:idx_site_period" json:"month"`
	Year                   int       `gorm:"column:year;uniqueIndex:idx_site_period" json:"year"`
	RefugeeIndividuals     int       `gorm:"column:refugee_individuals" json:"refugee_individuals"`
	RefugeeHouseholds      int       `gorm:"column:refugee_households" json:"refugee_households"`
	ReturneeIndividuals    int       `gorm:"column:returnee_individuals" json:"returnee_individuals"`
	ReturneeHouseholds     int       `gorm:"column:returnee_households" json:"returnee_households"`
	RefugeeNewIndividuals  int       `gorm:"column:refugee_new_individuals" json:"refugee_new_individuals"`
	RefugeeNewHouseholds   int       `gorm:"column:refugee_new_households" json:"refugee_new_households"`
	ReturneeNewIndividuals int       `gorm:"column:returnee_new_individuals" json:"returnee_new_individuals"`
	ReturneeNewHouseholds  int       `gorm:"column:returnee_new_households" json:"returnee_new_households"`
	CreatedAt              time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for SiteStatRecord
func (SiteStatRecord) TableName() string {
	return "site_stats"
}

// Stocks returns the absolute counts persisted on the record.
func (r *SiteStatRecord) Stocks() Stocks {
	return Stocks{
		RefugeeIndividuals:  r.RefugeeIndividuals,
		RefugeeHouseholds:   r.RefugeeHouseholds,
		ReturneeIndividuals: r.ReturneeIndividuals,
		ReturneeHouseholds:  r.ReturneeHouseholds,
	}
}

// SetStocks writes the absolute counts onto the record.
func (r *SiteStatRecord) SetStocks(s Stocks) {
	r.RefugeeIndividuals = s.RefugeeIndividuals
	r.RefugeeHouseholds = s.RefugeeHouseholds
	r.ReturneeIndividuals = s.ReturneeIndividuals
	r.ReturneeHouseholds = s.ReturneeHouseholds
}

// SetNewArrivals writes the derived flow counts onto the record.
func (r *SiteStatRecord) SetNewArrivals(s Stocks) {
	r.RefugeeNewIndividuals = s.RefugeeIndividuals
	r.RefugeeNewHouseholds = s.RefugeeHouseholds
	r.ReturneeNewIndividuals = s.ReturneeIndividuals
	r.ReturneeNewHouseholds = s.ReturneeHouseholds
}

// ProvinceStatRecord represents the province_stats table: province-wide
// monthly totals. Both totals and deltas arrive already aggregated, so no
// derivation happens on this path.
type ProvinceStatRecord struct {
	RecordID               uint      `gorm:"primaryKey;column:record_id" json:"record_id"`
	Month                  string    `gorm:"column:month;uniqueIndex:idx_province_period" json:"month"`
	Year                   int       `gorm:"column:year;uniqueIndex:idx_province_period" json:"year"`
	RefugeeIndividuals     int       `gorm:"column:refugee_individuals" json:"refugee_individuals"`
	RefugeeHouseholds      int       `gorm:"column:refugee_households" json:"refugee_households"`
	ReturneeIndividuals    int       `gorm:"column:returnee_individuals" json:"returnee_individuals"`
	ReturneeHouseholds     int       `gorm:"column:returnee_households" json:"returnee_households"`
	RefugeeNewIndividuals  int       `gorm:"column:refugee_new_individuals" json:"refugee_new_individuals"`
	RefugeeNewHouseholds   int       `gorm:"column:refugee_new_households" json:"refugee_new_households"`
	ReturneeNewIndividuals int       `gorm:"column:returnee_new_individuals" json:"returnee_new_individuals"`
	ReturneeNewHouseholds  int       `gorm:"column:returnee_new_households" json:"returnee_new_households"`
	CreatedAt              time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for ProvinceStatRecord
func (ProvinceStatRecord) TableName() string {
	return "province_stats"
}
