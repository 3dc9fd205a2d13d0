package turfs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	"github.com/m04kA/SMC-TurfBookingService/pkg/types"
)

const (
	listCacheKey = "list"

	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// Service is the turf catalog. Reads go through the cache; concurrent misses
// for the same key share one storage read. Writes invalidate the cached entries.
type Service struct {
	repo    TurfRepository
	cache   Cache
	ttl     time.Duration
	metrics Metrics
	logger  Logger
	group   singleflight.Group
}

// NewService creates the catalog service
func NewService(repo TurfRepository, cache Cache, ttl time.Duration, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// GetTurf returns a turf with its courts
func (s *Service) GetTurf(ctx context.Context, id int64) (*domain.Turf, error) {
	key := turfCacheKey(id)

	var cached domain.Turf
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		turf, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, key, turf)
		return turf, nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrTurfNotFound, id)
		}
		return nil, s.wrapRepoError("GetTurf", err)
	}

	// the value is shared by every caller of this flight
	return v.(*domain.Turf).Clone(), nil
}

// ListTurfs returns all turfs ordered by id
func (s *Service) ListTurfs(ctx context.Context) ([]*domain.Turf, error) {
	var cached []*domain.Turf
	if s.fromCache(ctx, listCacheKey, &cached) {
		return cached, nil
	}

	v, err, _ := s.group.Do(listCacheKey, func() (interface{}, error) {
		turfs, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		s.toCache(ctx, listCacheKey, turfs)
		return turfs, nil
	})
	if err != nil {
		return nil, s.wrapRepoError("ListTurfs", err)
	}

	shared := v.([]*domain.Turf)
	turfs := make([]*domain.Turf, len(shared))
	for i, t := range shared {
		turfs[i] = t.Clone()
	}

	return turfs, nil
}

// UpdateSchedule validates and stores new operating hours, then drops the cached entries
func (s *Service) UpdateSchedule(ctx context.Context, id int64, schedule domain.TurfSchedule) (*domain.Turf, error) {
	s.logger.Info("UpdateSchedule: turf=%d open=%s close=%s slot=%d status=%s",
		id, schedule.OpenTime, schedule.CloseTime, schedule.SlotDurationMinutes, schedule.Status)

	normalized, err := validateSchedule(schedule)
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for turf=%d: %v", id, err)
		return nil, err
	}

	if err := s.repo.UpdateSchedule(ctx, id, normalized); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("UpdateSchedule: turf=%d not found", id)
			return nil, fmt.Errorf("%w: id=%d", ErrTurfNotFound, id)
		}
		return nil, s.wrapRepoError("UpdateSchedule", err)
	}

	s.Invalidate(ctx, id)

	s.logger.Info("UpdateSchedule: turf=%d updated", id)
	return s.GetTurf(ctx, id)
}

// Invalidate drops the cached entries of a turf
func (s *Service) Invalidate(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, turfCacheKey(id), listCacheKey); err != nil {
		s.logger.Error("Invalidate: failed to drop cache for turf=%d: %v", id, err)
	}
}

func (s *Service) fromCache(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	switch {
	case err != nil:
		s.metrics.RecordCacheResult(cacheError)
		s.logger.Warn("cache get failed key=%s: %v", key, err)
		return false
	case hit:
		s.metrics.RecordCacheResult(cacheHit)
		return true
	default:
		s.metrics.RecordCacheResult(cacheMiss)
		return false
	}
}

func (s *Service) toCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache set failed key=%s: %v", key, err)
	}
}

func (s *Service) wrapRepoError(op string, err error) error {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		s.logger.Error("%s: storage unavailable: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func validateSchedule(schedule domain.TurfSchedule) (domain.TurfSchedule, error) {
	open, err := types.NewTimeStringFromString(schedule.OpenTime.String())
	if err != nil {
		return schedule, fmt.Errorf("%w: openTime: %v", ErrInvalidSchedule, err)
	}
	closeTime, err := types.NewTimeStringFromString(schedule.CloseTime.String())
	if err != nil {
		return schedule, fmt.Errorf("%w: closeTime: %v", ErrInvalidSchedule, err)
	}
	if !open.IsBefore(closeTime) {
		return schedule, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidSchedule)
	}

	if schedule.SlotDurationMinutes < domain.MinSlotDurationMinutes || schedule.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return schedule, fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidSchedule, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if schedule.SlotDurationMinutes > closeTime.Minutes()-open.Minutes() {
		return schedule, fmt.Errorf("%w: slotDurationMinutes exceeds the operating window", ErrInvalidSchedule)
	}

	status := schedule.Status
	if status == "" {
		status = domain.TurfStatusActive
	}
	if !status.IsValid() {
		return schedule, fmt.Errorf("%w: unknown status %q", ErrInvalidSchedule, status)
	}

	return domain.TurfSchedule{
		OpenTime:            open,
		CloseTime:           closeTime,
		SlotDurationMinutes: schedule.SlotDurationMinutes,
		Status:              status,
	}, nil
}

func turfCacheKey(id int64) string {
	return "turf:" + strconv.FormatInt(id, 10)
}
