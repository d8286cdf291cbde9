package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/billboards/internal/lock"
	"github.com/nurpe/billboards/internal/model"
)

const (
	cleanupLockKey = "billboards:cleanup"
	cleanupLockTTL = 5 * time.Minute
)

var ErrSweepRunning = errors.New("cleanup sweep already running")

type CleanupService struct {
	billboards BillboardStore
	contracts  ContractStore
	locker     Locker
	log        zerolog.Logger
	now        func() time.Time
}

func NewCleanupService(billboards BillboardStore, contracts ContractStore, locker Locker, log zerolog.Logger) *CleanupService {
	return &CleanupService{
		billboards: billboards,
		contracts:  contracts,
		locker:     locker,
		log:        log,
		now:        time.Now,
	}
}

type SweepResult struct {
	Checked  int         `json:"checked"`
	Released []uuid.UUID `json:"released"`
}

// FindStale returns billboards still linked to a contract that ended before
// today or no longer exists, and billboards marked rented with no contract at
// all. endDates holds the contracts that do exist.
func FindStale(billboards []model.Billboard, endDates map[uuid.UUID]time.Time, now time.Time) []model.Billboard {
	today := model.DateOnly(now)
	var stale []model.Billboard
	for _, b := range billboards {
		if !b.Linked() {
			if b.Status == model.BillboardStatusRented {
				stale = append(stale, b)
			}
			continue
		}
		end, ok := endDates[*b.ContractID]
		if !ok || model.DateOnly(end).Before(today) {
			stale = append(stale, b)
		}
	}
	return stale
}

func (s *CleanupService) RunNow(ctx context.Context, principal model.Principal) (*SweepResult, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.Sweep(ctx)
}

// Sweep releases stale billboards. It holds the cleanup lock for its whole
// run; a concurrent caller gets ErrSweepRunning.
func (s *CleanupService) Sweep(ctx context.Context) (*SweepResult, error) {
	release, err := s.locker.TryLock(ctx, cleanupLockKey, cleanupLockTTL)
	if errors.Is(err, lock.ErrNotObtained) {
		return nil, ErrSweepRunning
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.Warn().Err(err).Msg("release cleanup lock")
		}
	}()

	linked, err := s.billboards.ListLinked(ctx)
	if err != nil {
		return nil, err
	}
	result := &SweepResult{Checked: len(linked), Released: []uuid.UUID{}}
	if len(linked) == 0 {
		return result, nil
	}

	contractIDs := make([]uuid.UUID, 0, len(linked))
	for _, b := range linked {
		if b.Linked() {
			contractIDs = append(contractIDs, *b.ContractID)
		}
	}
	endDates, err := s.contracts.EndDates(ctx, uniqueIDs(contractIDs))
	if err != nil {
		return nil, err
	}

	stale := FindStale(linked, endDates, s.now())
	if len(stale) == 0 {
		return result, nil
	}
	released, err := s.billboards.Release(ctx, stale)
	if err != nil {
		return nil, err
	}
	result.Released = released
	if len(released) == 0 {
		return result, nil
	}
	s.log.Info().
		Int("checked", result.Checked).
		Int("released", len(result.Released)).
		Msg("cleanup sweep released billboards")
	return result, nil
}

// Start sweeps every interval until ctx is done. A zero interval disables it.
func (s *CleanupService) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.log.Info().Msg("cleanup sweep disabled")
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.scheduledSweep(ctx)
			}
		}
	}()
}

func (s *CleanupService) scheduledSweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("cleanup sweep panicked")
		}
	}()
	if _, err := s.Sweep(ctx); err != nil && !errors.Is(err, ErrSweepRunning) {
		s.log.Error().Err(err).Msg("cleanup sweep failed")
	}
}
