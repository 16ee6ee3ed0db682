package tips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/coachai"
	"github.com/2beens/aitrainer/internal/telemetry/metrics"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=tips_mocks_test.go -package=tips_test

type latestWorkoutGetter interface {
	Latest(ctx context.Context, userID int) (*workouts.Workout, error)
}

type tipsGenerator interface {
	GenerateTips(ctx context.Context, workoutPlan string) (*coachai.Tips, error)
}

type historyRepo interface {
	Add(ctx context.Context, userID int, workoutID *int, tipsJSON json.RawMessage) (*TipHistory, error)
	ListByUser(ctx context.Context, userID int) ([]TipHistory, error)
}

type Service struct {
	workouts       latestWorkoutGetter
	generator      tipsGenerator
	history        historyRepo
	cache          *freecache.Cache
	cacheTTL       time.Duration
	metricsManager *metrics.Manager
	nowFunc        func() time.Time
}

func NewService(
	workouts latestWorkoutGetter,
	generator tipsGenerator,
	history historyRepo,
	cacheSizeMB int,
	cacheTTL time.Duration,
	metricsManager *metrics.Manager,
) *Service {
	megabyte := 1024 * 1024
	return &Service{
		workouts:       workouts,
		generator:      generator,
		history:        history,
		cache:          freecache.NewCache(cacheSizeMB * megabyte),
		cacheTTL:       cacheTTL,
		metricsManager: metricsManager,
		nowFunc:        time.Now,
	}
}

func cacheKey(userID, workoutID int) []byte {
	return []byte(fmt.Sprintf("tips||%d||%d", userID, workoutID))
}

func (s *Service) countCache(result string) {
	if s.metricsManager != nil {
		s.metricsManager.CounterTipsCache.WithLabelValues(result).Inc()
	}
}

// Tips returns tips for the user's latest workout. Tips are cached per workout,
// regenerate skips the cache and replaces the cached value.
func (s *Service) Tips(ctx context.Context, userID int, regenerate bool) (_ *TipsResponse, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tips.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))
	span.SetAttributes(attribute.Bool("regenerate", regenerate))

	workout, err := s.workouts.Latest(ctx, userID)
	if errors.Is(err, workouts.ErrWorkoutNotFound) {
		return nil, ErrNoWorkout
	}
	if err != nil {
		return nil, fmt.Errorf("get latest workout: %w", err)
	}

	key := cacheKey(userID, workout.ID)
	if !regenerate {
		if cached, cacheErr := s.cache.Get(key); cacheErr == nil {
			resp := &TipsResponse{}
			if unmarshalErr := json.Unmarshal(cached, resp); unmarshalErr != nil {
				log.Errorf("unmarshal cached tips for user %d: %s", userID, unmarshalErr)
			} else {
				s.countCache("hit")
				span.SetAttributes(attribute.Bool("tips.from-cache", true))
				return resp, nil
			}
		}
		s.countCache("miss")
	}

	generated, err := s.generator.GenerateTips(ctx, workout.WorkoutPlan)
	if err != nil {
		return nil, fmt.Errorf("generate tips: %w", err)
	}

	resp := &TipsResponse{
		Warmup:    firstN(generated.Warmup, maxTipsPerList),
		Workout:   firstN(generated.Workout, maxTipsPerList),
		Recovery:  firstN(generated.Recovery, maxTipsPerList),
		CreatedAt: s.nowFunc().UTC(),
	}

	respBytes, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal tips for cache: %s", err)
		return resp, nil
	}
	if err := s.cache.Set(key, respBytes, int(s.cacheTTL.Seconds())); err != nil {
		log.Errorf("cache tips for user %d: %s", userID, err)
	}

	return resp, nil
}

// Save stores the tips linked to the user's latest workout, if there is one.
func (s *Service) Save(ctx context.Context, userID int, tips json.RawMessage) (_ *TipHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tips.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !validTipsObject(tips) {
		return nil, ErrInvalidTips
	}

	var workoutID *int
	workout, err := s.workouts.Latest(ctx, userID)
	switch {
	case errors.Is(err, workouts.ErrWorkoutNotFound):
	case err != nil:
		return nil, fmt.Errorf("get latest workout: %w", err)
	default:
		workoutID = &workout.ID
	}

	saved, err := s.history.Add(ctx, userID, workoutID, tips)
	if err != nil {
		return nil, fmt.Errorf("save tips: %w", err)
	}
	return saved, nil
}

func (s *Service) History(ctx context.Context, userID int) (_ []TipHistory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tips.history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	history, err := s.history.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tips history: %w", err)
	}
	return history, nil
}
