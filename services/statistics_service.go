package services

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"partner-portal-api/models"

	"gorm.io/gorm"
)

var monthPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)

// ValidatePeriod checks a reporting period key: a zero-padded month 01-12 and
// a year between 2000 and 2100.
func ValidatePeriod(month string, year int) error {
	if !monthPattern.MatchString(month) {
		return fmt.Errorf("%w: month must be a two-digit string 01-12, got %q", ErrInvalidInput, month)
	}
	if year < 2000 || year > 2100 {
		return fmt.Errorf("%w: year must be between 2000 and 2100, got %d", ErrInvalidInput, year)
	}
	return nil
}

// PreviousPeriod returns the period key immediately before (month, year).
func PreviousPeriod(month string, year int) (string, int) {
	m, _ := strconv.Atoi(month)
	if m == 1 {
		return "12", year - 1
	}
	return fmt.Sprintf("%02d", m-1), year
}

// SiteStockInput is one site's submitted stock counts for a period. Counts are
// lenient: missing or unparseable values become zero rather than errors.
type SiteStockInput struct {
	SiteID              string              `json:"site_id"`
	RefugeeIndividuals  models.LenientCount `json:"refugee_individuals,omitempty"`
	RefugeeHouseholds   models.LenientCount `json:"refugee_households,omitempty"`
	ReturneeIndividuals models.LenientCount `json:"returnee_individuals,omitempty"`
	ReturneeHouseholds  models.LenientCount `json:"returnee_households,omitempty"`
}

// Stocks converts the lenient inputs to absolute counts.
func (in SiteStockInput) Stocks() models.Stocks {
	return models.Stocks{
		RefugeeIndividuals:  in.RefugeeIndividuals.Int(),
		RefugeeHouseholds:   in.RefugeeHouseholds.Int(),
		ReturneeIndividuals: in.ReturneeIndividuals.Int(),
		ReturneeHouseholds:  in.ReturneeHouseholds.Int(),
	}
}

// ProvinceStatInput carries province-wide totals with deltas already known.
type ProvinceStatInput struct {
	RefugeeIndividuals     models.LenientCount `json:"refugee_individuals,omitempty"`
	RefugeeHouseholds      models.LenientCount `json:"refugee_households,omitempty"`
	ReturneeIndividuals    models.LenientCount `json:"returnee_individuals,omitempty"`
	ReturneeHouseholds     models.LenientCount `json:"returnee_households,omitempty"`
	RefugeeNewIndividuals  models.LenientCount `json:"refugee_new_individuals,omitempty"`
	RefugeeNewHouseholds   models.LenientCount `json:"refugee_new_households,omitempty"`
	ReturneeNewIndividuals models.LenientCount `json:"returnee_new_individuals,omitempty"`
	ReturneeNewHouseholds  models.LenientCount `json:"returnee_new_households,omitempty"`
}

type statisticsBatch interface {
	FindSite(siteID, month string, year int) (*models.SiteStatRecord, error)
	UpsertSite(rec *models.SiteStatRecord) error
}

type statisticsRepository interface {
	// WithinBatch runs fn inside one transaction so every item in a call is
	// derived from a consistent snapshot of the previous period.
	WithinBatch(fn func(batch statisticsBatch) error) error
	ListSite(month string, year int) ([]models.SiteStatRecord, error)
	UpsertProvince(rec *models.ProvinceStatRecord) error
	ListProvince(year int) ([]models.ProvinceStatRecord, error)
}

// StatisticsService turns monthly stock submissions into persisted records
// with derived new-arrival flows.
type StatisticsService struct {
	repo statisticsRepository
}

func NewStatisticsService(db *gorm.DB) *StatisticsService {
	return &StatisticsService{repo: &gormStatisticsRepository{db: db}}
}

// SaveSiteStats upserts one record per (site, month, year). Each record's
// new-arrival fields are derived against the immediately preceding period,
// floored at zero; a missing previous record counts as all-zero stock, so
// gaps and out-of-order entry are tolerated.
func (s *StatisticsService) SaveSiteStats(month string, year int, items []SiteStockInput) ([]models.SiteStatRecord, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}

	valid := make([]SiteStockInput, 0, len(items))
	for _, item := range items {
		item.SiteID = strings.TrimSpace(item.SiteID)
		if item.SiteID == "" {
			continue
		}
		valid = append(valid, item)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("%w: nothing to save", ErrInvalidInput)
	}

	prevMonth, prevYear := PreviousPeriod(month, year)
	now := time.Now()

	var saved []models.SiteStatRecord
	err := s.repo.WithinBatch(func(batch statisticsBatch) error {
		for _, item := range valid {
			current := item.Stocks()

			var previous models.Stocks
			prevRec, err := batch.FindSite(item.SiteID, prevMonth, prevYear)
			if err != nil {
				return err
			}
			if prevRec != nil {
				previous = prevRec.Stocks()
			}

			rec := &models.SiteStatRecord{
				SiteID:    item.SiteID,
				Month:     month,
				Year:      year,
				CreatedAt: now,
			}
			rec.SetStocks(current)
			rec.SetNewArrivals(models.NewArrivals(current, previous))

			if err := batch.UpsertSite(rec); err != nil {
				return err
			}
			saved = append(saved, *rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// SaveProvinceStats upserts the province-wide totals for one period. Deltas
// arrive already aggregated, so they are stored as given.
func (s *StatisticsService) SaveProvinceStats(month string, year int, input ProvinceStatInput) (*models.ProvinceStatRecord, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}

	rec := &models.ProvinceStatRecord{
		Month:                  month,
		Year:                   year,
		RefugeeIndividuals:     input.RefugeeIndividuals.Int(),
		RefugeeHouseholds:      input.RefugeeHouseholds.Int(),
		ReturneeIndividuals:    input.ReturneeIndividuals.Int(),
		ReturneeHouseholds:     input.ReturneeHouseholds.Int(),
		RefugeeNewIndividuals:  input.RefugeeNewIndividuals.Int(),
		RefugeeNewHouseholds:   input.RefugeeNewHouseholds.Int(),
		ReturneeNewIndividuals: input.ReturneeNewIndividuals.Int(),
		ReturneeNewHouseholds:  input.ReturneeNewHouseholds.Int(),
		CreatedAt:              time.Now(),
	}
	if err := s.repo.UpsertProvince(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListSiteStats returns the persisted site records for one period.
func (s *StatisticsService) ListSiteStats(month string, year int) ([]models.SiteStatRecord, error) {
	if err := ValidatePeriod(month, year); err != nil {
		return nil, err
	}
	return s.repo.ListSite(month, year)
}

// ListProvinceStats returns the province records for one year.
func (s *StatisticsService) ListProvinceStats(year int) ([]models.ProvinceStatRecord, error) {
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year must be between 2000 and 2100, got %d", ErrInvalidInput, year)
	}
	return s.repo.ListProvince(year)
}

type gormStatisticsRepository struct {
	db *gorm.DB
}

type gormStatisticsBatch struct {
	tx *gorm.DB
}

func (r *gormStatisticsRepository) WithinBatch(fn func(batch statisticsBatch) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStatisticsBatch{tx: tx})
	})
}

func (b *gormStatisticsBatch) FindSite(siteID, month string, year int) (*models.SiteStatRecord, error) {
	var rec models.SiteStatRecord
	err := b.tx.Where("site_id = ? AND month = ? AND year = ?", siteID, month, year).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (b *gormStatisticsBatch) UpsertSite(rec *models.SiteStatRecord) error {
	existing, err := b.FindSite(rec.SiteID, rec.Month, rec.Year)
	if err != nil {
		return err
	}
	if existing != nil {
		rec.RecordID = existing.RecordID
		rec.CreatedAt = existing.CreatedAt
		return b.tx.Save(rec).Error
	}
	return b.tx.Create(rec).Error
}

func (r *gormStatisticsRepository) ListSite(month string, year int) ([]models.SiteStatRecord, error) {
	var recs []models.SiteStatRecord
	err := r.db.Where("month = ? AND year = ?", month, year).Order("site_id ASC").Find(&recs).Error
	return recs, err
}

func (r *gormStatisticsRepository) UpsertProvince(rec *models.ProvinceStatRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ProvinceStatRecord
		err := tx.Where("month = ? AND year = ?", rec.Month, rec.Year).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return tx.Create(rec).Error
			}
			return err
		}
		rec.RecordID = existing.RecordID
		rec.CreatedAt = existing.CreatedAt
		return tx.Save(rec).Error
	})
}

func (r *gormStatisticsRepository) ListProvince(year int) ([]models.ProvinceStatRecord, error) {
	var recs []models.ProvinceStatRecord
	err := r.db.Where("year = ?", year).Order("month ASC").Find(&recs).Error
	return recs, err
}
