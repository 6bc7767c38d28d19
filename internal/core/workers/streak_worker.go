package workers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/comitanigiacomo/kanso-routine-engine/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListIDs(ctx context.Context) ([]string, error)
	UpdateStreak(ctx context.Context, id string, streak domain.Streak) error
}

type StateLoader interface {
	LoadUserState(ctx context.Context, userID string) (*domain.UserState, error)
}

type StreakJob struct {
	UserID string
}

const streakQueueSize = 100

// StreakWorker keeps the stored workout streak of each user in line with
// their completion log.
type StreakWorker struct {
	userRepo UserRepository
	states   StateLoader
	jobs     chan StreakJob
	now      func() time.Time
}

func NewStreakWorker(userRepo UserRepository, states StateLoader) *StreakWorker {
	return &StreakWorker{
		userRepo: userRepo,
		states:   states,
		jobs:     make(chan StreakJob, streakQueueSize),
		now:      time.Now,
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] Streak worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				if _, err := w.Recompute(ctx, job.UserID); err != nil {
					log.Printf("[WORKER] Streak recompute failed for user %s: %v", job.UserID, err)
				}
			case <-ctx.Done():
				log.Println("[WORKER] Streak worker shutting down...")
				return
			}
		}
	}()
}

// Enqueue never blocks; jobs are dropped when the queue is full.
func (w *StreakWorker) Enqueue(userID string) {
	select {
	case w.jobs <- StreakJob{UserID: userID}:
	default:
		log.Printf("[WORKER] Streak queue full! Dropping job for user %s", userID)
	}
}

// Recompute recalculates the streak of one user and stores it when it
// changed.
func (w *StreakWorker) Recompute(ctx context.Context, userID string) (domain.Streak, error) {
	user, err := w.userRepo.GetByID(ctx, userID)
	if err != nil {
		return domain.Streak{}, err
	}

	state, err := w.states.LoadUserState(ctx, userID)
	if err != nil {
		return domain.Streak{}, err
	}

	streak := domain.CalculateStreak(state.Completions, w.now().UTC())
	if streak == user.Streak() {
		return streak, nil
	}

	if err := w.userRepo.UpdateStreak(ctx, userID, streak); err != nil {
		return domain.Streak{}, err
	}
	log.Printf("[WORKER] Streak updated for %s: Current=%d, Longest=%d", user.Username, streak.Current, streak.Longest)
	return streak, nil
}

// RecomputeAll sweeps every user. Failures are logged and joined; the sweep
// continues past them.
func (w *StreakWorker) RecomputeAll(ctx context.Context) (int, error) {
	ids, err := w.userRepo.ListIDs(ctx)
	if err != nil {
		return 0, err
	}

	var errs []error
	updated := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if _, err := w.Recompute(ctx, id); err != nil {
			log.Printf("[WORKER] Sweep failed for user %s: %v", id, err)
			errs = append(errs, err)
			continue
		}
		updated++
	}
	return updated, errors.Join(errs...)
}
