package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Pagination bounds the list endpoint's page size.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

type FicheService struct {
	store  ports.Store
	paging Pagination
	logger zerolog.Logger
}

func NewFicheService(store ports.Store, paging Pagination, logger zerolog.Logger) *FicheService {
	if paging.DefaultLimit <= 0 {
		paging.DefaultLimit = DefaultPageLimit
	}
	if paging.MaxLimit <= 0 {
		paging.MaxLimit = MaxPageLimit
	}
	if paging.DefaultLimit > paging.MaxLimit {
		paging.DefaultLimit = paging.MaxLimit
	}
	return &FicheService{store: store, paging: paging, logger: logger}
}

// List returns one page of the fiches visible to user, newest first.
func (s *FicheService) List(ctx context.Context, user domain.User, in ports.ListFichesInput) (*ports.ListFichesResult, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list fiches: %w", err)
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = s.paging.DefaultLimit
	}
	if limit > s.paging.MaxLimit {
		limit = s.paging.MaxLimit
	}

	search := strings.ToLower(in.Search)
	matched := make([]domain.Fiche, 0, len(snap.Fiches))
	for _, f := range domain.FilterVisible(user, snap.Fiches) {
		if in.Status != "" && string(f.Status) != in.Status {
			continue
		}
		if in.Product != "" && string(f.Product) != in.Product {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(f.ClientName), search) {
			continue
		}
		matched = append(matched, f)
	}
	sortNewestFirst(matched)

	total := len(matched)
	// Pages past the end are empty. page can be as large as MaxInt, so bound
	// it before multiplying.
	offset := total
	if page-1 <= total/limit {
		offset = min((page-1)*limit, total)
	}
	end := offset + limit
	if end > total {
		end = total
	}

	names := snap.UserNames()
	items := make([]ports.FicheListItem, 0, end-offset)
	for _, f := range matched[offset:end] {
		items = append(items, ports.FicheListItem{Fiche: f, AdvisorName: advisorName(names, f.AdvisorID)})
	}

	return &ports.ListFichesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Get returns a fiche if user may see it.
func (s *FicheService) Get(ctx context.Context, user domain.User, id string) (*domain.Fiche, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get fiche: %w", err)
	}

	idx, err := visibleIndex(snap, user, id)
	if err != nil {
		return nil, err
	}
	f := snap.Fiches[idx]
	return &f, nil
}

// Patch applies a status change and/or a reassignment. Status is set as-is;
// reassigning requires domain.CanReassign even on the caller's own fiche.
func (s *FicheService) Patch(ctx context.Context, user domain.User, id string, in ports.PatchFicheInput) (*domain.Fiche, error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, in.Status)
	}

	var updated domain.Fiche
	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		idx, err := visibleIndex(snap, user, id)
		if err != nil {
			return err
		}
		if in.AdvisorID.Set && !domain.CanReassign(user) {
			return domain.ErrForbidden
		}

		f := snap.Fiches[idx]
		if in.Status != "" {
			f.Status = in.Status
		}
		if in.AdvisorID.Set {
			f.AdvisorID = in.AdvisorID.Value
		}
		snap.Fiches[idx] = f
		updated = f.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("fiche_id", id).
		Str("user_id", user.ID).
		Str("status", string(updated.Status)).
		Bool("reassigned", in.AdvisorID.Set).
		Msg("fiche updated")
	return &updated, nil
}

// Delete removes a fiche. Role is checked before existence.
func (s *FicheService) Delete(ctx context.Context, user domain.User, id string) error {
	if !domain.CanDelete(user) {
		return domain.ErrForbidden
	}

	err := s.store.Update(ctx, func(snap *domain.Snapshot) error {
		idx := snap.FicheIndex(id)
		if idx < 0 {
			return domain.ErrFicheNotFound
		}
		snap.Fiches = append(snap.Fiches[:idx], snap.Fiches[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("fiche_id", id).Str("user_id", user.ID).Msg("fiche deleted")
	return nil
}

// visibleIndex resolves id to an index, reporting not-found before forbidden.
func visibleIndex(snap *domain.Snapshot, user domain.User, id string) (int, error) {
	idx := snap.FicheIndex(id)
	if idx < 0 {
		return -1, domain.ErrFicheNotFound
	}
	if !domain.CanView(user, snap.Fiches[idx]) {
		return -1, domain.ErrForbidden
	}
	return idx, nil
}

// sortNewestFirst orders by CreatedAt descending; equal timestamps keep their order.
func sortNewestFirst(fiches []domain.Fiche) {
	sort.SliceStable(fiches, func(i, j int) bool {
		return fiches[i].CreatedAt.After(fiches[j].CreatedAt)
	})
}

func advisorName(names map[string]string, advisorID *string) string {
	if advisorID == nil {
		return domain.UnassignedAdvisorName
	}
	if name, ok := names[*advisorID]; ok {
		return name
	}
	return domain.UnassignedAdvisorName
}
