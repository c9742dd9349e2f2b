package seasonservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	seasondomain "github.com/Black-And-White-Club/mask-tipper/app/modules/season/domain"
	seasondb "github.com/Black-And-White-Club/mask-tipper/app/modules/season/infrastructure/repositories"
	seasonmetrics "github.com/Black-And-White-Club/mask-tipper/pkg/observability/metrics/season"
	"github.com/Black-And-White-Club/mask-tipper/pkg/operations"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "SeasonService"

// SeasonService implements the Service interface.
type SeasonService struct {
	repo      seasondb.Repository
	logger    *slog.Logger
	metrics   seasonmetrics.SeasonMetrics
	publisher message.Publisher
	ops       *operations.Runner
	now       func() time.Time
	newID     func() string
}

// NewSeasonService creates a new SeasonService. publisher may be nil, in which case
// no events are emitted.
func NewSeasonService(
	repo seasondb.Repository,
	logger *slog.Logger,
	metrics seasonmetrics.SeasonMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	publisher message.Publisher,
) *SeasonService {
	if logger == nil {
		logger = slog.Default()
	}
	ops := &operations.Runner{
		Service:         serviceName,
		Logger:          logger,
		Tracer:          tracer,
		Metrics:         metrics,
		DB:              db,
		IsDomainFailure: isDomainFailure,
	}
	return &SeasonService{
		repo:      repo,
		logger:    logger,
		metrics:   metrics,
		publisher: publisher,
		ops:       ops,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// perform runs fn inside a transaction with telemetry. Rule violations and missing
// entities come back as the returned error without an infrastructure failure being
// recorded.
func perform[T any](
	s *SeasonService,
	ctx context.Context,
	operation string,
	identifier string,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	v, err := operations.Perform(s.ops, ctx, operation, identifier, fn)
	if err != nil && seasondomain.IsRuleViolation(err) && s.metrics != nil {
		s.metrics.RecordRuleViolation(ctx, operation)
	}
	return v, err
}

// mutateSeason loads a season under lock, applies fn, stores the result and
// announces the change.
func (s *SeasonService) mutateSeason(
	ctx context.Context,
	operation string,
	id seasondomain.SeasonID,
	fn func(seasondomain.Season) (seasondomain.Season, error),
) (seasondomain.Season, error) {
	season, err := perform(s, ctx, operation, string(id), func(ctx context.Context, db bun.IDB) (seasondomain.Season, error) {
		current, err := s.loadSeason(ctx, db, id, true)
		if err != nil {
			return seasondomain.Season{}, err
		}
		next, err := fn(current)
		if err != nil {
			return seasondomain.Season{}, err
		}
		if err := s.repo.SaveSeason(ctx, db, next); err != nil {
			return seasondomain.Season{}, fmt.Errorf("failed to save season: %w", err)
		}
		return next, nil
	})
	if err != nil {
		return seasondomain.Season{}, err
	}

	s.publishSeasonUpdated(ctx, season.ID, operation)
	return season, nil
}

func (s *SeasonService) loadSeason(ctx context.Context, db bun.IDB, id seasondomain.SeasonID, lock bool) (seasondomain.Season, error) {
	var (
		season seasondomain.Season
		err    error
	)
	if lock {
		season, err = s.repo.GetSeasonForUpdate(ctx, db, id)
	} else {
		season, err = s.repo.GetSeason(ctx, db, id)
	}
	if errors.Is(err, seasondb.ErrNotFound) {
		return seasondomain.Season{}, seasondomain.ErrSeasonNotFound
	}
	if err != nil {
		return seasondomain.Season{}, fmt.Errorf("failed to load season: %w", err)
	}
	return season, nil
}

func (s *SeasonService) loadState(ctx context.Context, db bun.IDB) (seasondomain.AppState, error) {
	players, err := s.repo.ListPlayers(ctx, db)
	if err != nil {
		return seasondomain.AppState{}, err
	}
	seasons, err := s.repo.ListSeasons(ctx, db)
	if err != nil {
		return seasondomain.AppState{}, err
	}
	return seasondomain.AppState{Players: players, Seasons: seasons}, nil
}

func isDomainFailure(err error) bool {
	return seasondomain.IsRuleViolation(err) || seasondomain.IsNotFound(err)
}
