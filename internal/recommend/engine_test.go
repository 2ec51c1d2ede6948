// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package recommend

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/propertyrank/internal/cache"
	"github.com/tomtom215/propertyrank/internal/models"
)

// mockProvider implements PropertyProvider for testing.
type mockProvider struct {
	props []models.Property
	err   error
	calls int32
}

func (m *mockProvider) AllProperties(ctx context.Context) ([]models.Property, error) {
	atomic.AddInt32(&m.calls, 1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.props, nil
}

// presetCache answers every Lookup from a fixed table and ignores stores.
type presetCache struct {
	cache.NoopScoreCache
	vectors map[string]models.ScoreVector
}

func (p *presetCache) Lookup(key string) (models.ScoreVector, bool) {
	v, ok := p.vectors[key]
	return v, ok
}

// panicCache panics on every Lookup and Store.
type panicCache struct {
	cache.NoopScoreCache
}

func (panicCache) Lookup(string) (models.ScoreVector, bool) { panic("lookup exploded") }
func (panicCache) Store(string, models.ScoreVector)         { panic("store exploded") }

func intPtr(v int) *int { return &v }

func property(id, price int64, d *models.Details) models.Property {
	if d != nil {
		d.ID = id
	}
	return models.Property{
		Listing: models.Listing{ID: id, Title: "Listing", Price: price, Location: "Austin, TX"},
		Details: d,
	}
}

func details(bedrooms, school, commute, year int) *models.Details {
	return &models.Details{
		Bedrooms:     bedrooms,
		Bathrooms:    2,
		SizeSqft:     1500,
		SchoolRating: school,
		CommuteTime:  commute,
		YearBuilt:    year,
		Amenities:    []string{},
	}
}

func newTestEngine(t *testing.T, provider PropertyProvider, c cache.ScoreCache) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), provider, c, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func ids(recs []Recommendation) []int64 {
	out := make([]int64, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Listing.ID)
	}
	return out
}

func TestNewEngine(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e, err := NewEngine(nil, &mockProvider{}, nil, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine() error = %v", err)
		}
		if e.Config().ReferenceYear != DefaultConfig().ReferenceYear {
			t.Errorf("ReferenceYear = %d, want %d", e.Config().ReferenceYear, DefaultConfig().ReferenceYear)
		}
		if e.Cache().Stats().Enabled {
			t.Error("nil cache should be replaced by a disabled cache")
		}
	})

	t.Run("nil provider", func(t *testing.T) {
		if _, err := NewEngine(nil, nil, nil, zerolog.Nop()); err == nil {
			t.Error("NewEngine() with nil provider succeeded, want error")
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		if _, err := NewEngine(&Config{ReferenceYear: 12}, &mockProvider{}, nil, zerolog.Nop()); err == nil {
			t.Error("NewEngine() with invalid config succeeded, want error")
		}
	})
}

func TestRecommend_RanksByTotalScore(t *testing.T) {
	props := []models.Property{
		property(1, 100000, details(3, 5, 30, 2010)),
		property(2, 100000, details(3, 6, 30, 2010)),
		property(3, 100000, details(3, 7, 30, 2010)),
	}
	criteria := models.Criteria{UserBudget: 200000, UserMinBedrooms: 1}

	preset := &presetCache{vectors: map[string]models.ScoreVector{}}
	for i, total := range []float64{70, 95, 90} {
		p := props[i]
		preset.vectors[cache.Fingerprint(criteria.Key(), p.Listing, *p.Details)] = models.ScoreVector{Total: total}
	}

	e := newTestEngine(t, &mockProvider{props: props}, preset)
	result, err := e.Recommend(context.Background(), criteria)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	totals := make([]float64, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		totals = append(totals, r.Scores.Total)
	}
	if want := []float64{95, 90, 70}; !reflect.DeepEqual(totals, want) {
		t.Errorf("totals = %v, want %v", totals, want)
	}
	if got, want := ids(result.Recommendations), []int64{2, 3, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if result.Cache.Hits != 3 || result.Cache.Misses != 0 || result.Cache.HitRate != 100 {
		t.Errorf("cache info = %+v, want 3 hits and no misses", result.Cache)
	}
}

func TestRecommend_TruncatesToMaxResults(t *testing.T) {
	props := []models.Property{
		property(1, 100000, details(3, 1, 30, 2010)),
		property(2, 100000, details(3, 9, 30, 2010)),
		property(3, 100000, details(3, 3, 30, 2010)),
		property(4, 100000, details(3, 8, 30, 2010)),
		property(5, 100000, details(3, 7, 30, 2010)),
	}
	e := newTestEngine(t, &mockProvider{props: props}, nil)

	result, err := e.Recommend(context.Background(), models.Criteria{UserBudget: 150000})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got, want := ids(result.Recommendations), []int64{2, 4, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if result.Performance.PropertiesConsidered != 5 || result.Performance.PropertiesFiltered != 5 {
		t.Errorf("performance = %+v, want 5 considered and 5 after filter", result.Performance)
	}
}

func TestRecommend_TiesKeepFetchOrder(t *testing.T) {
	props := []models.Property{
		property(7, 200000, details(3, 8, 25, 2015)),
		property(3, 200000, details(3, 8, 25, 2015)),
		property(5, 200000, details(3, 8, 25, 2015)),
	}
	e := newTestEngine(t, &mockProvider{props: props}, nil)

	result, err := e.Recommend(context.Background(), models.Criteria{UserBudget: 300000, UserMinBedrooms: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got, want := ids(result.Recommendations), []int64{7, 3, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestRecommend_Filters(t *testing.T) {
	props := []models.Property{
		property(1, 300000, details(3, 8, 25, 2015)),
		property(2, 500000, details(4, 9, 15, 2020)), // over budget
		property(3, 250000, details(1, 6, 35, 2000)),
		property(4, 280000, details(2, 3, 55, 2012)),
	}

	tests := []struct {
		name     string
		criteria models.Criteria
		wantIDs  []int64
	}{
		{"budget only", models.Criteria{UserBudget: 400000}, []int64{1, 3, 4}},
		{"price equal to budget passes", models.Criteria{UserBudget: 250000}, []int64{3}},
		{"min bedrooms", models.Criteria{UserBudget: 400000, UserMinBedrooms: 2}, []int64{1, 4}},
		{"max commute", models.Criteria{UserBudget: 400000, UserMaxCommute: intPtr(30)}, []int64{1}},
		{"min school rating", models.Criteria{UserBudget: 400000, UserMinSchoolRating: intPtr(6)}, []int64{1, 3}},
		{"nothing matches", models.Criteria{UserBudget: 100000}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, &mockProvider{props: props}, nil)
			result, err := e.Recommend(context.Background(), tt.criteria)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			got := ids(result.Recommendations)
			sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
			if !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", got, tt.wantIDs)
			}
			for _, r := range result.Recommendations {
				if r.Listing.Price > tt.criteria.UserBudget {
					t.Errorf("listing %d price %d exceeds budget %d", r.Listing.ID, r.Listing.Price, tt.criteria.UserBudget)
				}
			}
		})
	}
}

func TestRecommend_OverBudgetExcludedEvenWhenBest(t *testing.T) {
	props := []models.Property{
		property(1, 210000, details(5, 10, 10, 2023)),
		property(2, 150000, details(1, 2, 70, 1980)),
	}
	e := newTestEngine(t, &mockProvider{props: props}, nil)

	result, err := e.Recommend(context.Background(), models.Criteria{UserBudget: 200000})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := ids(result.Recommendations); !reflect.DeepEqual(got, []int64{2}) {
		t.Errorf("ids = %v, want [2]", got)
	}
	if result.Performance.PropertiesScored != 2 {
		t.Errorf("PropertiesScored = %d, want 2 (filter runs after scoring)", result.Performance.PropertiesScored)
	}
}

func TestRecommend_DefaultDetailsForMissingRecord(t *testing.T) {
	props := []models.Property{property(9, 100000, nil)}
	e := newTestEngine(t, &mockProvider{props: props}, nil)

	result, err := e.Recommend(context.Background(), models.Criteria{UserBudget: 200000, UserMinBedrooms: 2})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(result.Recommendations))
	}
	if got, want := result.Recommendations[0].Details, models.DefaultDetails(9); !reflect.DeepEqual(got, want) {
		t.Errorf("details = %+v, want %+v", got, want)
	}
}

func TestRecommend_UpstreamUnavailable(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name      string
		provider  *mockProvider
		wantCause error
	}{
		{"empty store", &mockProvider{}, nil},
		{"fetch error", &mockProvider{err: cause}, cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.provider, nil)
			result, err := e.Recommend(context.Background(), models.Criteria{UserBudget: 500000})
			if !errors.Is(err, ErrUpstreamUnavailable) {
				t.Fatalf("Recommend() error = %v, want ErrUpstreamUnavailable", err)
			}
			if tt.wantCause != nil && !errors.Is(err, tt.wantCause) {
				t.Errorf("Recommend() error = %v, want it to wrap %v", err, tt.wantCause)
			}
			if result != nil {
				t.Errorf("Recommend() result = %+v, want nil", result)
			}
			if e.Stats().Errors != 1 {
				t.Errorf("Stats().Errors = %d, want 1", e.Stats().Errors)
			}
		})
	}
}

func TestRecommend_CanceledContext(t *testing.T) {
	e := newTestEngine(t, &mockProvider{props: []models.Property{property(1, 1, nil)}}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Recommend(ctx, models.Criteria{UserBudget: 10})
	if !errors.Is(err, ErrUpstreamUnavailable) || !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want ErrUpstreamUnavailable wrapping context.Canceled", err)
	}
}

func TestRecommend_InvalidCriteria(t *testing.T) {
	tests := []struct {
		name     string
		criteria models.Criteria
	}{
		{"zero budget", models.Criteria{UserBudget: 0}},
		{"negative budget", models.Criteria{UserBudget: -1}},
		{"negative bedrooms", models.Criteria{UserBudget: 100, UserMinBedrooms: -1}},
		{"negative commute", models.Criteria{UserBudget: 100, UserMaxCommute: intPtr(-5)}},
		{"school below range", models.Criteria{UserBudget: 100, UserMinSchoolRating: intPtr(-1)}},
		{"school above range", models.Criteria{UserBudget: 100, UserMinSchoolRating: intPtr(11)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{props: []models.Property{property(1, 50, nil)}}
			e := newTestEngine(t, provider, nil)

			_, err := e.Recommend(context.Background(), tt.criteria)
			if !errors.Is(err, ErrInvalidCriteria) {
				t.Fatalf("Recommend() error = %v, want ErrInvalidCriteria", err)
			}
			if atomic.LoadInt32(&provider.calls) != 0 {
				t.Error("provider called for invalid criteria")
			}
		})
	}
}

func TestValidateCriteria_Valid(t *testing.T) {
	valid := []models.Criteria{
		{UserBudget: 1},
		{UserBudget: 500000, UserMinBedrooms: 0, UserMaxCommute: intPtr(0)},
		{UserBudget: 500000, UserMinSchoolRating: intPtr(0)},
		{UserBudget: 500000, UserMinSchoolRating: intPtr(10), PreferredAmenities: []string{"pool"}},
	}
	for _, c := range valid {
		if err := ValidateCriteria(c); err != nil {
			t.Errorf("ValidateCriteria(%+v) error = %v", c, err)
		}
	}
}

func TestRecommend_CacheReuse(t *testing.T) {
	props := []models.Property{
		property(1, 300000, details(3, 8, 25, 2015)),
		property(2, 320000, details(4, 7, 35, 2005)),
	}
	scoreCache := cache.New(cache.Config{Enabled: true, MaxEntries: 100, TTL: time.Hour})
	defer scoreCache.Shutdown()

	e := newTestEngine(t, &mockProvider{props: props}, scoreCache)
	criteria := models.Criteria{UserBudget: 400000, UserMinBedrooms: 2}

	first, err := e.Recommend(context.Background(), criteria)
	if err != nil {
		t.Fatalf("first Recommend() error = %v", err)
	}
	if first.Cache.Hits != 0 || first.Cache.Misses != 2 {
		t.Errorf("first call cache = %+v, want 0 hits and 2 misses", first.Cache)
	}

	second, err := e.Recommend(context.Background(), criteria)
	if err != nil {
		t.Fatalf("second Recommend() error = %v", err)
	}
	if second.Cache.Hits != 2 || second.Cache.Misses != 0 {
		t.Errorf("second call cache = %+v, want 2 hits and 0 misses", second.Cache)
	}
	if !reflect.DeepEqual(first.Recommendations, second.Recommendations) {
		t.Error("cached recommendations differ from computed ones")
	}
	if second.Cache.Stats.Size != 2 {
		t.Errorf("cache size = %d, want 2", second.Cache.Stats.Size)
	}

	// Hard filters do not change score vectors.
	third, err := e.Recommend(context.Background(), models.Criteria{
		UserBudget: 400000, UserMinBedrooms: 2, UserMaxCommute: intPtr(30),
	})
	if err != nil {
		t.Fatalf("third Recommend() error = %v", err)
	}
	if third.Cache.Hits != 2 {
		t.Errorf("third call hits = %d, want 2", third.Cache.Hits)
	}

	stats := e.Stats()
	if stats.Requests != 3 || stats.CacheHits != 4 || stats.CacheMisses != 2 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestRecommend_CacheFaultFallsBackToScoring(t *testing.T) {
	props := []models.Property{
		property(1, 300000, details(3, 8, 25, 2015)),
		property(2, 250000, details(3, 9, 20, 2020)),
	}
	criteria := models.Criteria{UserBudget: 400000, UserMinBedrooms: 2}

	baseline, err := newTestEngine(t, &mockProvider{props: props}, nil).Recommend(context.Background(), criteria)
	if err != nil {
		t.Fatalf("baseline Recommend() error = %v", err)
	}

	e := newTestEngine(t, &mockProvider{props: props}, panicCache{})
	result, err := e.Recommend(context.Background(), criteria)
	if err != nil {
		t.Fatalf("Recommend() with faulty cache error = %v", err)
	}
	if !reflect.DeepEqual(result.Recommendations, baseline.Recommendations) {
		t.Errorf("recommendations with faulty cache = %+v, want %+v", result.Recommendations, baseline.Recommendations)
	}
	if result.Cache.Misses != 2 || result.Cache.Faults != 4 {
		t.Errorf("cache info = %+v, want 2 misses and 4 faults", result.Cache)
	}
	if e.Stats().CacheFaults != 4 {
		t.Errorf("Stats().CacheFaults = %d, want 4", e.Stats().CacheFaults)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	props := []models.Property{
		property(1, 300000, details(3, 8, 25, 2015)),
		property(2, 320000, details(4, 7, 35, 2005)),
		property(3, 280000, details(2, 6, 45, 1995)),
	}
	e := newTestEngine(t, &mockProvider{props: props}, nil)
	criteria := models.Criteria{UserBudget: 350000, UserMinBedrooms: 2}

	first, err := e.Recommend(context.Background(), criteria)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Recommend(context.Background(), criteria)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(again.Recommendations, first.Recommendations) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestRecommend_Concurrent(t *testing.T) {
	props := []models.Property{
		property(1, 300000, details(3, 8, 25, 2015)),
		property(2, 320000, details(4, 7, 35, 2005)),
	}
	scoreCache := cache.New(cache.Config{Enabled: true, MaxEntries: 10})
	defer scoreCache.Shutdown()
	e := newTestEngine(t, &mockProvider{props: props}, scoreCache)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := e.Recommend(context.Background(), models.Criteria{UserBudget: int64(300000 + i%4*10000)})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("concurrent Recommend() error = %v", err)
		}
	}
	if got := e.Stats().Requests; got != 20 {
		t.Errorf("Stats().Requests = %d, want 20", got)
	}
}

func TestNewResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		result := &Result{
			Recommendations: []Recommendation{{
				Listing: models.Listing{ID: 1, Title: "A", Price: 10},
				Details: models.DefaultDetails(1),
				Scores:  models.ScoreVector{Total: 88.5},
			}},
			Cache: CacheInfo{Hits: 1},
		}
		resp := NewResponse(result, nil)
		if resp.Status != models.StatusSuccess || resp.TotalProperties != 1 {
			t.Errorf("NewResponse() = %+v", resp)
		}
		if resp.RecommendedProperties[0].BasicInfo.ID != 1 || resp.RecommendedProperties[0].Scores.Total != 88.5 {
			t.Errorf("RecommendedProperties[0] = %+v", resp.RecommendedProperties[0])
		}
		if resp.CacheInfo == nil || resp.CacheInfo.Hits != 1 || resp.PerformanceMetrics == nil {
			t.Errorf("cache/performance info missing: %+v", resp)
		}
	})

	t.Run("error", func(t *testing.T) {
		resp := NewResponse(nil, ErrUpstreamUnavailable)
		if resp.Status != models.StatusError || resp.TotalProperties != 0 {
			t.Errorf("NewResponse() = %+v", resp)
		}
		if resp.RecommendedProperties == nil || len(resp.RecommendedProperties) != 0 {
			t.Errorf("RecommendedProperties = %#v, want empty non-nil slice", resp.RecommendedProperties)
		}
		if resp.Error == "" || resp.CacheInfo != nil {
			t.Errorf("error response = %+v", resp)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", *DefaultConfig(), false},
		{"zero", Config{}, false},
		{"negative year", Config{ReferenceYear: -1}, true},
		{"implausible year", Config{ReferenceYear: 99}, true},
		{"negative timeout", Config{FetchTimeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
