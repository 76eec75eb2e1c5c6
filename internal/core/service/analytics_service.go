package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

const (
	trailingMonths = 6
	recentLimit    = 5
	defaultPrime   = 500
)

// basePrimes is the premium counted per fiche in reports, by product.
// The fiche's own prime field is display-only and not summed.
var basePrimes = map[domain.Product]float64{
	domain.ProductAuto:  800,
	domain.ProductMRH:   450,
	domain.ProductRCPro: 1200,
	domain.ProductSante: 700,
	domain.ProductVie:   1500,
}

// BasePrime returns the reporting premium for a product.
func BasePrime(p domain.Product) float64 {
	if v, ok := basePrimes[p]; ok {
		return v
	}
	return defaultPrime
}

type AnalyticsService struct {
	store  ports.Store
	loc    *time.Location
	now    func() time.Time
	logger zerolog.Logger
}

// NewAnalyticsService buckets months in loc (UTC when nil).
func NewAnalyticsService(store ports.Store, loc *time.Location, logger zerolog.Logger) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{store: store, loc: loc, now: time.Now, logger: logger}
}

// Summary aggregates the fiches user may see.
func (s *AnalyticsService) Summary(ctx context.Context, user domain.User) (*ports.Summary, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}

	fiches := domain.FilterVisible(user, snap.Fiches)
	sum := Aggregate(fiches, snap.UserNames(), s.now().In(s.loc))

	s.logger.Debug().Str("user_id", user.ID).Int("fiches", sum.TotalFiches).Msg("analytics computed")
	return sum, nil
}

// Aggregate computes the summary of fiches as seen at now. Month buckets use
// now's location.
func Aggregate(fiches []domain.Fiche, names map[string]string, now time.Time) *ports.Summary {
	sum := &ports.Summary{
		TotalFiches:   len(fiches),
		StatusCounts:  make(map[domain.FicheStatus]int, len(domain.Statuses)),
		ProductCounts: make(map[domain.Product]int, len(domain.OfferedProducts)),
	}
	for _, st := range domain.Statuses {
		sum.StatusCounts[st] = 0
	}
	for _, p := range domain.OfferedProducts {
		sum.ProductCounts[p] = 0
	}

	loc := now.Location()
	monthly := make(map[string]int)
	advisorCounts := make(map[string]int)
	var advisorOrder []string

	for _, f := range fiches {
		if _, ok := sum.StatusCounts[f.Status]; ok {
			sum.StatusCounts[f.Status]++
		}
		if _, ok := sum.ProductCounts[f.Product]; ok {
			sum.ProductCounts[f.Product]++
		}
		sum.TotalPrimes += BasePrime(f.Product)

		monthly[f.CreatedAt.In(loc).Format("2006-01")]++

		if f.AdvisorID != nil && *f.AdvisorID != "" {
			id := *f.AdvisorID
			if _, seen := advisorCounts[id]; !seen {
				advisorOrder = append(advisorOrder, id)
			}
			advisorCounts[id]++
		}
	}

	sum.ActiveFiches = sum.StatusCounts[domain.StatusNew] +
		sum.StatusCounts[domain.StatusAssigned] +
		sum.StatusCounts[domain.StatusInProgress]

	for i := trailingMonths - 1; i >= 0; i-- {
		key := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, loc).Format("2006-01")
		if _, ok := monthly[key]; !ok {
			monthly[key] = 0
		}
	}
	sum.Monthly = make([]ports.MonthlyCount, 0, len(monthly))
	for month, count := range monthly {
		sum.Monthly = append(sum.Monthly, ports.MonthlyCount{Month: month, Count: count})
	}
	sort.Slice(sum.Monthly, func(i, j int) bool { return sum.Monthly[i].Month < sum.Monthly[j].Month })

	sum.Advisors = make([]ports.AdvisorCount, 0, len(advisorOrder))
	for _, id := range advisorOrder {
		sum.Advisors = append(sum.Advisors, ports.AdvisorCount{AdvisorID: id, Name: names[id], Count: advisorCounts[id]})
	}
	sort.SliceStable(sum.Advisors, func(i, j int) bool { return sum.Advisors[i].Count > sum.Advisors[j].Count })

	recent := make([]domain.Fiche, len(fiches))
	copy(recent, fiches)
	sortNewestFirst(recent)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	sum.Recent = make([]ports.RecentFiche, 0, len(recent))
	for _, f := range recent {
		sum.Recent = append(sum.Recent, ports.RecentFiche{ID: f.ID, ClientName: f.ClientName, Status: f.Status})
	}

	return sum
}
