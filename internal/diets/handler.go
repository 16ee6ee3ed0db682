package diets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/internal/auth"
	"github.com/2beens/aitrainer/internal/coachai"
	"github.com/2beens/aitrainer/internal/telemetry/metrics"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=diets_mocks_test.go -package=diets_test

type dietsRepo interface {
	Add(ctx context.Context, diet Diet) (*Diet, error)
	ListByUser(ctx context.Context, userID int) ([]Diet, error)
	Delete(ctx context.Context, userID, id int) error
}

type planGenerator interface {
	GenerateDietPlan(ctx context.Context, p coachai.Profile) (string, error)
}

type Handler struct {
	repo           dietsRepo
	generator      planGenerator
	metricsManager *metrics.Manager
}

func NewHandler(repo dietsRepo, generator planGenerator, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		generator:      generator,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/diet/generate", handler.HandleGenerate).Methods("POST", "OPTIONS").Name("generate-diet")
	router.HandleFunc("/diets", handler.HandleList).Methods("GET", "OPTIONS").Name("list-diets")
	router.HandleFunc("/diets/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-diet")
}

func (handler *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diets.generate")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req DietCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("generate diet, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// a failed generation still stores the diet, with the failure reason as its plan
	plan, err := handler.generator.GenerateDietPlan(ctx, req.Profile())
	if err != nil {
		log.Errorf("generate diet plan for user %d: %s", identity.UserID, err)
	}

	diet, err := handler.repo.Add(ctx, req.ToDiet(identity.UserID, plan))
	if err != nil {
		log.Errorf("add diet for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to save diet", http.StatusInternalServerError)
		return
	}
	if handler.metricsManager != nil {
		handler.metricsManager.CounterPlansGenerated.WithLabelValues("diet").Inc()
	}

	dietJson, err := json.Marshal(diet)
	if err != nil {
		log.Errorf("failed to marshal diet: %s", err)
		http.Error(w, "failed to marshal diet", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, dietJson)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diets.list")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	diets, err := handler.repo.ListByUser(ctx, identity.UserID)
	if err != nil {
		log.Errorf("list diets for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to get diets", http.StatusInternalServerError)
		return
	}

	dietsJson, err := json.Marshal(diets)
	if err != nil {
		log.Errorf("failed to marshal diets: %s", err)
		http.Error(w, "failed to marshal diets", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, dietsJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.diets.delete")
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

	if err := handler.repo.Delete(ctx, identity.UserID, id); err != nil {
		if errors.Is(err, ErrDietNotFound) {
			http.Error(w, "Diet not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete diet %d: %s", id, err)
		http.Error(w, "failed to delete diet", http.StatusInternalServerError)
		return
	}

	pkg.WriteMessageResponseOK(w, "Diet deleted successfully")
}
