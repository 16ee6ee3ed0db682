package workouts

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/coachai"
	"github.com/2beens/aitrainer/internal/telemetry/metrics"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

const insightsSourceWorkout = "workout"

type workoutsRepo interface {
	Add(ctx context.Context, workout Workout) (*Workout, error)
	ListByUser(ctx context.Context, userID, limit int) ([]Workout, error)
	Latest(ctx context.Context, userID int) (*Workout, error)
	Delete(ctx context.Context, userID, id int) error
}

type insightsRepo interface {
	Add(ctx context.Context, userID int, source string, insights Insights) (int, error)
}

type planGenerator interface {
	GenerateWorkoutPlan(ctx context.Context, p coachai.Profile) (string, error)
}

type Service struct {
	repo           workoutsRepo
	insightsRepo   insightsRepo
	generator      planGenerator
	metricsManager *metrics.Manager
}

func NewService(
	repo workoutsRepo,
	insightsRepo insightsRepo,
	generator planGenerator,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		insightsRepo:   insightsRepo,
		generator:      generator,
		metricsManager: metricsManager,
	}
}

// Generate asks the AI for a plan and stores the workout. A failed generation is not an error
// here: the failure text becomes the stored plan, so the user sees the reason in the history.
func (s *Service) Generate(ctx context.Context, userID int, req WorkoutCreate) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	plan, genErr := s.generator.GenerateWorkoutPlan(ctx, req.Profile())
	if genErr != nil {
		log.Errorf("generate workout plan for user %d: %s", userID, genErr)
		span.SetAttributes(attribute.Bool("ai.failed", true))
	}

	workout, err := s.repo.Add(ctx, req.ToWorkout(userID, plan))
	if err != nil {
		return nil, fmt.Errorf("add workout: %w", err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterPlansGenerated.WithLabelValues("workout").Inc()
	}
	return workout, nil
}

func (s *Service) List(ctx context.Context, userID int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workouts, err := s.repo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}

// Memory lists the user's workouts together with their normalized exercises.
func (s *Service) Memory(ctx context.Context, userID int) (_ []WorkoutMemory, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.memory")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workouts, err := s.repo.ListByUser(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	memory := make([]WorkoutMemory, 0, len(workouts))
	for _, w := range workouts {
		memory = append(memory, WorkoutMemory{
			Workout:             w,
			NormalizedExercises: NormalizePlan(w.WorkoutPlan),
		})
	}
	return memory, nil
}

// Insights computes insights over the latest workouts and stores them.
func (s *Service) Insights(ctx context.Context, userID int) (_ Insights, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.insights")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workouts, err := s.repo.ListByUser(ctx, userID, InsightsWindow)
	if err != nil {
		return Insights{}, fmt.Errorf("list workouts: %w", err)
	}

	normalized := make([][]Exercise, 0, len(workouts))
	for _, w := range workouts {
		normalized = append(normalized, NormalizePlan(w.WorkoutPlan))
	}
	insights := GenerateInsights(normalized)

	if _, err := s.insightsRepo.Add(ctx, userID, insightsSourceWorkout, insights); err != nil {
		return Insights{}, fmt.Errorf("save insights: %w", err)
	}

	span.SetAttributes(attribute.String("insights.coach", insights.Coach))
	return insights, nil
}

func (s *Service) Latest(ctx context.Context, userID int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.Latest(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.repo.Delete(ctx, userID, id)
}
