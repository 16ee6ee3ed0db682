package workouts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/internal/auth"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

type InsightsResponse struct {
	Insights Insights `json:"insights"`
	Saved    bool     `json:"saved"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workouts/generate", handler.HandleGenerate).Methods("POST", "OPTIONS").Name("generate-workout")
	router.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	router.HandleFunc("/workouts/memory", handler.HandleMemory).Methods("GET", "OPTIONS").Name("workouts-memory")
	router.HandleFunc("/workouts/insights", handler.HandleInsights).Methods("GET", "OPTIONS").Name("workouts-insights")
	router.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
}

func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.generate")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req WorkoutCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("generate workout, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workout, err := handler.service.Generate(ctx, identity.UserID, req)
	if err != nil {
		log.Errorf("generate workout for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to save workout", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "failed to marshal workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutJson)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	workouts, err := handler.service.List(ctx, identity.UserID)
	if err != nil {
		log.Errorf("list workouts for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("failed to marshal workouts: %s", err)
		http.Error(w, "failed to marshal workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutsJson)
}

func (handler *Handler) HandleMemory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.memory")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	memory, err := handler.service.Memory(ctx, identity.UserID)
	if err != nil {
		log.Errorf("workout memory for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	memoryJson, err := json.Marshal(memory)
	if err != nil {
		log.Errorf("failed to marshal workout memory: %s", err)
		http.Error(w, "failed to marshal workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, memoryJson)
}

func (handler *Handler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.insights")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	insights, err := handler.service.Insights(ctx, identity.UserID)
	if err != nil {
		log.Errorf("workout insights for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to generate insights", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(InsightsResponse{
		Insights: insights,
		Saved:    true,
	})
	if err != nil {
		log.Errorf("failed to marshal insights: %s", err)
		http.Error(w, "failed to marshal insights", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "error, id NaN", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, identity.UserID, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "Workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %d: %s", id, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteMessageResponseOK(w, "Workout deleted successfully")
}
