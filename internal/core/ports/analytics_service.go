package ports

import (
	"context"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

// MonthlyCount is the number of fiches created in one calendar month.
type MonthlyCount struct {
	Month string // YYYY-MM
	Count int
}

// AdvisorCount is the number of fiches assigned to one advisor.
// Name is empty when the advisor id does not resolve to a user.
type AdvisorCount struct {
	AdvisorID string
	Name      string
	Count     int
}

// RecentFiche is the projection used by the dashboard's recent list.
type RecentFiche struct {
	ID         string             `json:"id"`
	ClientName string             `json:"clientName"`
	Status     domain.FicheStatus `json:"status"`
}

// Summary aggregates the fiches visible to one user.
type Summary struct {
	TotalFiches   int
	ActiveFiches  int
	StatusCounts  map[domain.FicheStatus]int
	ProductCounts map[domain.Product]int
	TotalPrimes   float64
	Monthly       []MonthlyCount // ascending, always covers the trailing 6 months
	Advisors      []AdvisorCount // count descending
	Recent        []RecentFiche  // newest first, at most 5
}

type AnalyticsService interface {
	Summary(ctx context.Context, user domain.User) (*Summary, error)
}
