package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/repository"
	"github.com/spec-kit/field-intel-service/internal/rollup"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

// DashboardService loads full snapshots and serves derived views. Aggregates
// are recomputed from a fresh snapshot on every load; there is no caching or
// invalidation, by design.
type DashboardService struct {
	hierarchy   repository.HierarchyRepository
	delegations repository.DelegationRepository
	surgeons    repository.SurgeonRepository
	calls       repository.CallLogRepository
	persons     repository.PersonRepository
	regions     repository.RegionRepository
	logger      *zap.Logger
}

// DashboardDependencies bundles repositories.
type DashboardDependencies struct {
	HierarchyRepo  repository.HierarchyRepository
	DelegationRepo repository.DelegationRepository
	SurgeonRepo    repository.SurgeonRepository
	CallLogRepo    repository.CallLogRepository
	PersonRepo     repository.PersonRepository
	RegionRepo     repository.RegionRepository
	Logger         *zap.Logger
}

// NewDashboardService creates the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		hierarchy:   deps.HierarchyRepo,
		delegations: deps.DelegationRepo,
		surgeons:    deps.SurgeonRepo,
		calls:       deps.CallLogRepo,
		persons:     deps.PersonRepo,
		regions:     deps.RegionRepo,
		logger:      deps.Logger,
	}
}

// LoadSnapshot fetches every input relation concurrently and joins the
// results. The reads address disjoint tables so ordering between them is
// irrelevant; there is no transactional guarantee across them.
func (s *DashboardService) LoadSnapshot(ctx context.Context) (*rollup.Snapshot, error) {
	snapshot := &rollup.Snapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.hierarchy.ListAll(gctx)
		snapshot.Assignments = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.delegations.ListAll(gctx)
		snapshot.Delegations = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.surgeons.ListAll(gctx)
		snapshot.Surgeons = rows
		return err
	})
	g.Go(func() error {
		links, err := s.surgeons.ListRegionLinks(gctx)
		snapshot.RegionLinks = links
		return err
	})
	g.Go(func() error {
		rows, err := s.surgeons.ListProcedures(gctx)
		snapshot.Procedures = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.surgeons.ListPrices(gctx)
		snapshot.Prices = rows
		return err
	})
	g.Go(func() error {
		latest, err := s.calls.LatestByPerson(gctx)
		snapshot.LastCalls = latest
		return err
	})
	g.Go(func() error {
		people, err := s.persons.ListAll(gctx)
		if err != nil {
			return err
		}
		indexed := make(map[string]domain.Person, len(people))
		for _, p := range people {
			indexed[p.ID] = p
		}
		snapshot.People = indexed
		return nil
	})
	g.Go(func() error {
		regions, err := s.regions.ListAll(gctx)
		if err != nil {
			return err
		}
		indexed := make(map[string]domain.Region, len(regions))
		for _, r := range regions {
			indexed[r.ID] = r
		}
		snapshot.Regions = indexed
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperrors.MapError(err)
	}
	return snapshot, nil
}

// Subordinates returns the one-level-down rollup for a person.
func (s *DashboardService) Subordinates(ctx context.Context, personID string) ([]rollup.SubordinateEntry, error) {
	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return rollup.SubordinateRollup(snapshot, personID, time.Now()), nil
}

// UnassignedPeople returns people with a tier but no resolvable parent.
func (s *DashboardService) UnassignedPeople(ctx context.Context) ([]string, error) {
	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return rollup.UnassignedPeople(snapshot), nil
}

// UnassignedAccounts returns accounts in a person's scope not yet delegated
// further down.
func (s *DashboardService) UnassignedAccounts(ctx context.Context, personID string) ([]string, error) {
	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return rollup.UnassignedAccounts(snapshot, personID), nil
}

// AccountPotential computes one account's market potential.
func (s *DashboardService) AccountPotential(ctx context.Context, accountID string) (float64, error) {
	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	return rollup.MarketPotential(snapshot, accountID), nil
}

// ScopePotential sums market potential across a person's scope.
func (s *DashboardService) ScopePotential(ctx context.Context, personID string) (float64, error) {
	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	return rollup.ScopePotential(snapshot, personID), nil
}

// Breadcrumbs builds the trail from a person up to their root or region.
func (s *DashboardService) Breadcrumbs(ctx context.Context, personID string) ([]string, error) {
	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	trail, err := rollup.Breadcrumbs(snapshot, personID)
	if err != nil {
		if errors.Is(err, rollup.ErrHierarchyCycle) {
			s.logger.Error("hierarchy cycle detected", zap.String("person_id", personID))
			return nil, apperrors.NewConflict("hierarchy contains a cycle", map[string]any{"person_id": personID})
		}
		return nil, apperrors.MapError(err)
	}
	return trail, nil
}
