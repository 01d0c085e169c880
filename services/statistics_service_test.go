package services

import (
	"errors"
	"fmt"
	"testing"

	"partner-portal-api/models"
)

type fakeStatsRepo struct {
	site     map[string]models.SiteStatRecord
	province map[string]models.ProvinceStatRecord
	nextID   uint
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{
		site:     make(map[string]models.SiteStatRecord),
		province: make(map[string]models.ProvinceStatRecord),
	}
}

func siteKey(siteID, month string, year int) string {
	return fmt.Sprintf("%s|%s|%d", siteID, month, year)
}

func (r *fakeStatsRepo) WithinBatch(fn func(batch statisticsBatch) error) error {
	return fn(r)
}

func (r *fakeStatsRepo) FindSite(siteID, month string, year int) (*models.SiteStatRecord, error) {
	rec, ok := r.site[siteKey(siteID, month, year)]
	if !ok {
		return nil, nil
	}
	copied := rec
	return &copied, nil
}

func (r *fakeStatsRepo) UpsertSite(rec *models.SiteStatRecord) error {
	key := siteKey(rec.SiteID, rec.Month, rec.Year)
	if existing, ok := r.site[key]; ok {
		rec.RecordID = existing.RecordID
		rec.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		rec.RecordID = r.nextID
	}
	r.site[key] = *rec
	return nil
}

func (r *fakeStatsRepo) ListSite(month string, year int) ([]models.SiteStatRecord, error) {
	var out []models.SiteStatRecord
	for _, rec := range r.site {
		if rec.Month == month && rec.Year == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeStatsRepo) UpsertProvince(rec *models.ProvinceStatRecord) error {
	key := fmt.Sprintf("%s|%d", rec.Month, rec.Year)
	if existing, ok := r.province[key]; ok {
		rec.RecordID = existing.RecordID
		rec.CreatedAt = existing.CreatedAt
	} else {
		r.nextID++
		rec.RecordID = r.nextID
	}
	r.province[key] = *rec
	return nil
}

func (r *fakeStatsRepo) ListProvince(year int) ([]models.ProvinceStatRecord, error) {
	var out []models.ProvinceStatRecord
	for _, rec := range r.province {
		if rec.Year == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func newStatsService(repo statisticsRepository) *StatisticsService {
	return &StatisticsService{repo: repo}
}

func TestPreviousPeriod(t *testing.T) {
	cases := []struct {
		month     string
		year      int
		wantMonth string
		wantYear  int
	}{
		{"01", 2024, "12", 2023},
		{"02", 2024, "01", 2024},
		{"03", 2024, "02", 2024},
		{"09", 2024, "08", 2024},
		{"10", 2024, "09", 2024},
		{"11", 2024, "10", 2024},
		{"12", 2024, "11", 2024},
	}
	for _, tc := range cases {
		gotMonth, gotYear := PreviousPeriod(tc.month, tc.year)
		if gotMonth != tc.wantMonth || gotYear != tc.wantYear {
			t.Errorf("PreviousPeriod(%s, %d) = (%s, %d), want (%s, %d)",
				tc.month, tc.year, gotMonth, gotYear, tc.wantMonth, tc.wantYear)
		}
	}
}

func TestSaveSiteStatsRejectsBadPeriods(t *testing.T) {
	svc := newStatsService(newFakeStatsRepo())
	items := []SiteStockInput{{SiteID: "site-1"}}

	cases := []struct {
		month string
		year  int
	}{
		{"1", 2024},
		{"13", 2024},
		{"00", 2024},
		{"ab", 2024},
		{"", 2024},
		{"06", 1999},
		{"06", 2101},
	}
	for _, tc := range cases {
		_, err := svc.SaveSiteStats(tc.month, tc.year, items)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("SaveSiteStats(%q, %d) error = %v, want ErrInvalidInput", tc.month, tc.year, err)
		}
	}
}

func TestSaveSiteStatsRejectsEmptyBatch(t *testing.T) {
	svc := newStatsService(newFakeStatsRepo())

	if _, err := svc.SaveSiteStats("06", 2024, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty batch: error = %v, want ErrInvalidInput", err)
	}

	// Items without a site id do not count either.
	blank := []SiteStockInput{{SiteID: "  "}, {SiteID: ""}}
	if _, err := svc.SaveSiteStats("06", 2024, blank); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank-site batch: error = %v, want ErrInvalidInput", err)
	}
}

func TestSaveSiteStatsMissingPreviousTreatedAsZero(t *testing.T) {
	repo := newFakeStatsRepo()
	svc := newStatsService(repo)

	// No record exists for (10, 2024).
	records, err := svc.SaveSiteStats("11", 2024, []SiteStockInput{{
		SiteID:             "site-1",
		RefugeeIndividuals: 500,
		RefugeeHouseholds:  100,
	}})
	if err != nil {
		t.Fatalf("SaveSiteStats returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if rec.RefugeeNewIndividuals != 500 || rec.RefugeeNewHouseholds != 100 {
		t.Fatalf("expected full stock as new arrivals, got %d/%d",
			rec.RefugeeNewIndividuals, rec.RefugeeNewHouseholds)
	}
}

func TestSaveSiteStatsFloorsStockDecrease(t *testing.T) {
	repo := newFakeStatsRepo()
	svc := newStatsService(repo)

	if _, err := svc.SaveSiteStats("10", 2024, []SiteStockInput{{
		SiteID:             "site-1",
		RefugeeIndividuals: 100,
	}}); err != nil {
		t.Fatalf("seeding previous period: %v", err)
	}

	records, err := svc.SaveSiteStats("11", 2024, []SiteStockInput{{
		SiteID:             "site-1",
		RefugeeIndividuals: 80,
	}})
	if err != nil {
		t.Fatalf("SaveSiteStats returned error: %v", err)
	}
	if got := records[0].RefugeeNewIndividuals; got != 0 {
		t.Fatalf("a stock decrease must derive zero new arrivals, got %d", got)
	}
	if got := records[0].RefugeeIndividuals; got != 80 {
		t.Fatalf("current stock should persist as submitted, got %d", got)
	}
}

func TestSaveSiteStatsJanuaryReadsDecemberOfPreviousYear(t *testing.T) {
	repo := newFakeStatsRepo()
	svc := newStatsService(repo)

	if _, err := svc.SaveSiteStats("12", 2023, []SiteStockInput{{
		SiteID:             "site-1",
		RefugeeIndividuals: 300,
	}}); err != nil {
		t.Fatalf("seeding december: %v", err)
	}

	records, err := svc.SaveSiteStats("01", 2024, []SiteStockInput{{
		SiteID:             "site-1",
		RefugeeIndividuals: 450,
	}})
	if err != nil {
		t.Fatalf("SaveSiteStats returned error: %v", err)
	}
	if got := records[0].RefugeeNewIndividuals; got != 150 {
		t.Fatalf("january delta should be derived against december of the previous year, got %d", got)
	}
}

func TestSaveSiteStatsResubmissionUpserts(t *testing.T) {
	repo := newFakeStatsRepo()
	svc := newStatsService(repo)

	input := []SiteStockInput{{
		SiteID:             "site-1",
		RefugeeIndividuals: 200,
		RefugeeHouseholds:  40,
	}}

	first, err := svc.SaveSiteStats("05", 2024, input)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := svc.SaveSiteStats("05", 2024, input)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if len(repo.site) != 1 {
		t.Fatalf("expected exactly one persisted record, got %d", len(repo.site))
	}
	if first[0].RecordID != second[0].RecordID {
		t.Fatalf("resubmission must overwrite the same record: ids %d and %d",
			first[0].RecordID, second[0].RecordID)
	}
	if first[0].RefugeeNewIndividuals != second[0].RefugeeNewIndividuals {
		t.Fatalf("derived values must be identical on resubmission: %d vs %d",
			first[0].RefugeeNewIndividuals, second[0].RefugeeNewIndividuals)
	}
}

func TestSaveSiteStatsSkipsBlankSitesButKeepsValidOnes(t *testing.T) {
	repo := newFakeStatsRepo()
	svc := newStatsService(repo)

	records, err := svc.SaveSiteStats("07", 2024, []SiteStockInput{
		{SiteID: ""},
		{SiteID: "site-2", ReturneeIndividuals: 30},
	})
	if err != nil {
		t.Fatalf("SaveSiteStats returned error: %v", err)
	}
	if len(records) != 1 || records[0].SiteID != "site-2" {
		t.Fatalf("expected only site-2 to be saved, got %+v", records)
	}
}

func TestSaveProvinceStatsUpserts(t *testing.T) {
	repo := newFakeStatsRepo()
	svc := newStatsService(repo)

	if _, err := svc.SaveProvinceStats("03", 2024, ProvinceStatInput{
		RefugeeIndividuals:    1000,
		RefugeeNewIndividuals: 120,
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}

	record, err := svc.SaveProvinceStats("03", 2024, ProvinceStatInput{
		RefugeeIndividuals:    1100,
		RefugeeNewIndividuals: 220,
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if len(repo.province) != 1 {
		t.Fatalf("expected one province record, got %d", len(repo.province))
	}
	if record.RefugeeIndividuals != 1100 || record.RefugeeNewIndividuals != 220 {
		t.Fatalf("resubmission should overwrite totals, got %+v", record)
	}
}

func TestSaveProvinceStatsRejectsBadPeriod(t *testing.T) {
	svc := newStatsService(newFakeStatsRepo())
	if _, err := svc.SaveProvinceStats("13", 2024, ProvinceStatInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("error = %v, want ErrInvalidInput", err)
	}
}
