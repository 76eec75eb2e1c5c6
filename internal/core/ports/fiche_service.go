package ports

import (
	"context"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

// ListFichesInput carries the query parameters of the list endpoint.
// Empty strings mean "no filter"; Page and Limit below 1 fall back to defaults.
type ListFichesInput struct {
	Status  string
	Product string
	Search  string // case-insensitive substring on client name
	Page    int    // 1-based
	Limit   int
}

// FicheListItem is a fiche decorated with its advisor's display name.
type FicheListItem struct {
	domain.Fiche
	AdvisorName string `json:"advisorName"`
}

// ListFichesResult is returned by FicheService.List.
type ListFichesResult struct {
	Items      []FicheListItem
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// OptionalAdvisor distinguishes "field absent" from "set to null".
type OptionalAdvisor struct {
	Set   bool
	Value *string // nil unassigns
}

// PatchFicheInput carries the mutable fields of a fiche.
type PatchFicheInput struct {
	Status    domain.FicheStatus // empty = unchanged
	AdvisorID OptionalAdvisor
}

// FicheService defines use-case operations for fiches. Every call is made on
// behalf of an authenticated user and enforces the access policy.
type FicheService interface {
	List(ctx context.Context, user domain.User, input ListFichesInput) (*ListFichesResult, error)
	Get(ctx context.Context, user domain.User, id string) (*domain.Fiche, error)
	Patch(ctx context.Context, user domain.User, id string, input PatchFicheInput) (*domain.Fiche, error)
	Delete(ctx context.Context, user domain.User, id string) error
}
