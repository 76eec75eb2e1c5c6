// Package seed generates demo data for a fichedesk store.
package seed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fichedesk/dashboard/internal/core/domain"
	"github.com/fichedesk/dashboard/internal/core/ports"
)

const (
	DefaultCount = 30

	assignedRatio = 0.7
	minPrime      = 100
	maxPrime      = 999
)

// ErrNoUsers is returned when the store has no users and no bootstrap
// credentials were supplied.
var ErrNoUsers = errors.New("seed: store has no users; pass admin credentials to bootstrap")

var (
	firstNames = []string{"Alice", "Bob", "Charlie", "David", "Eve", "Frank", "Grace", "Hugo", "Ivy", "Jack"}
	lastNames  = []string{"Smith", "Dupont", "Martin", "Miller", "Brown", "Lee", "Dubois", "Kelly", "Boss", "Plant"}

	assignedStatuses = []domain.FicheStatus{domain.StatusAssigned, domain.StatusInProgress, domain.StatusClosed}

	// Earliest possible createdAt of a generated fiche.
	epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	bootstrapAdvisors = []struct{ name, email string }{
		{"Sophie Martin", "sophie.martin@fichedesk.local"},
		{"Lucas Bernard", "lucas.bernard@fichedesk.local"},
	}
)

// Options tunes a seeding run.
type Options struct {
	Count int
	// AdminEmail and Password bootstrap an admin and two advisors when the
	// store has no users yet. Ignored otherwise.
	AdminEmail string
	Password   string
	HashCost   int // bcrypt cost; 0 means bcrypt.DefaultCost
	Rand       *rand.Rand
	Now        time.Time
}

func (o *Options) defaults() {
	if o.Count <= 0 {
		o.Count = DefaultCount
	}
	if o.HashCost == 0 {
		o.HashCost = bcrypt.DefaultCost
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
}

// Result summarizes a seeding run.
type Result struct {
	Fiches       int
	Assigned     int
	Bootstrapped bool
}

// Run replaces every fiche in store with freshly generated ones. Users are
// kept; they are only created when the store has none.
func Run(ctx context.Context, store ports.Store, opts Options, log zerolog.Logger) (*Result, error) {
	opts.defaults()

	res := &Result{}
	err := store.Update(ctx, func(snap *domain.Snapshot) error {
		// Stores with optimistic locking may run this more than once.
		*res = Result{}
		if len(snap.Users) == 0 {
			if opts.AdminEmail == "" || opts.Password == "" {
				return ErrNoUsers
			}
			users, err := BootstrapUsers(opts.AdminEmail, opts.Password, opts.HashCost)
			if err != nil {
				return err
			}
			snap.Users = users
			res.Bootstrapped = true
		}

		var advisors []string
		for _, u := range snap.Users {
			if u.IsAdvisor() {
				advisors = append(advisors, u.ID)
			}
		}

		snap.Fiches = Fiches(opts.Count, advisors, opts.Rand, opts.Now)
		res.Fiches = len(snap.Fiches)
		for _, f := range snap.Fiches {
			if f.AdvisorID != nil {
				res.Assigned++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("fiches", res.Fiches).
		Int("assigned", res.Assigned).
		Bool("bootstrapped", res.Bootstrapped).
		Msg("seed complete")
	return res, nil
}

// Fiches generates count fiches, newest first. About 70% are assigned to a
// random advisor with a non-NEW status; the rest are NEW and unassigned.
// With no advisors every fiche is unassigned.
func Fiches(count int, advisors []string, r *rand.Rand, now time.Time) []domain.Fiche {
	span := now.Sub(epoch)
	if span <= 0 {
		span = time.Nanosecond
	}

	fiches := make([]domain.Fiche, 0, count)
	for i := 1; i <= count; i++ {
		f := domain.Fiche{
			ID:         uuid.NewString(),
			ClientName: firstNames[r.IntN(len(firstNames))] + " " + lastNames[r.IntN(len(lastNames))],
			Phone:      "06" + strconv.Itoa(10_000_000+r.IntN(90_000_000)),
			Email:      fmt.Sprintf("client%d@example.com", i),
			Product:    domain.OfferedProducts[r.IntN(len(domain.OfferedProducts))],
			Status:     domain.StatusNew,
			Type:       "Standard",
			Garanties:  []string{"Base", "Premium Option"},
			Prime:      float64(minPrime + r.IntN(maxPrime-minPrime+1)),
			CreatedAt:  epoch.Add(time.Duration(r.Int64N(int64(span)))).UTC(),
		}
		if len(advisors) > 0 && r.Float64() < assignedRatio {
			advisor := advisors[r.IntN(len(advisors))]
			f.AdvisorID = &advisor
			f.Status = assignedStatuses[r.IntN(len(assignedStatuses))]
		}
		fiches = append(fiches, f)
	}

	sort.SliceStable(fiches, func(i, j int) bool { return fiches[i].CreatedAt.After(fiches[j].CreatedAt) })
	return fiches
}

// BootstrapUsers returns an admin plus two advisors sharing password.
func BootstrapUsers(adminEmail, password string, cost int) ([]domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("seed: hash password: %w", err)
	}

	users := []domain.User{{
		ID:           uuid.NewString(),
		Name:         "Admin " + strings.SplitN(adminEmail, "@", 2)[0],
		Email:        adminEmail,
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
	}}
	for _, a := range bootstrapAdvisors {
		users = append(users, domain.User{
			ID:           uuid.NewString(),
			Name:         a.name,
			Email:        a.email,
			Role:         domain.RoleAdvisor,
			PasswordHash: string(hash),
		})
	}
	return users, nil
}
