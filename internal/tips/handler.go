package tips

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/internal/auth"
	"github.com/2beens/aitrainer/internal/coachai"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workout-tips", handler.HandleGetTips).Methods("GET", "OPTIONS").Name("workout-tips")
	router.HandleFunc("/workout-history/save-tips", handler.HandleSaveTips).Methods("POST", "OPTIONS").Name("save-tips")
	router.HandleFunc("/workout-tips/history", handler.HandleHistory).Methods("GET", "OPTIONS").Name("tips-history")
}

func (handler *Handler) HandleGetTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tips.get")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	regenerate := false
	if regenerateStr := r.URL.Query().Get("regenerate"); regenerateStr != "" {
		var err error
		regenerate, err = strconv.ParseBool(regenerateStr)
		if err != nil {
			http.Error(w, "invalid regenerate param", http.StatusBadRequest)
			return
		}
	}

	resp, err := handler.service.Tips(ctx, identity.UserID, regenerate)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoWorkout):
			http.Error(w, "No workout found. Generate a workout first.", http.StatusNotFound)
		case errors.Is(err, coachai.ErrUnparsableTips):
			log.Warnf("workout tips for user %d: %s", identity.UserID, err)
			http.Error(w, "AI response could not be parsed. Please try again.", http.StatusInternalServerError)
		default:
			log.Errorf("workout tips for user %d: %s", identity.UserID, err)
			http.Error(w, "failed to generate workout tips", http.StatusInternalServerError)
		}
		return
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal tips: %s", err)
		http.Error(w, "failed to marshal tips", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respJson)
}

func (handler *Handler) HandleSaveTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tips.save")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req SaveTipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("save tips, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	saved, err := handler.service.Save(ctx, identity.UserID, req.Tips)
	if err != nil {
		if errors.Is(err, ErrInvalidTips) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("save tips for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to save tips", http.StatusInternalServerError)
		return
	}

	savedJson, err := json.Marshal(saved)
	if err != nil {
		log.Errorf("failed to marshal saved tips: %s", err)
		http.Error(w, "failed to marshal tips", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, savedJson)
}

func (handler *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.tips.history")
	defer span.End()

	identity, ok := auth.IdentityFromContext(ctx)
	if !ok {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	history, err := handler.service.History(ctx, identity.UserID)
	if err != nil {
		log.Errorf("tips history for user %d: %s", identity.UserID, err)
		http.Error(w, "failed to get tips history", http.StatusInternalServerError)
		return
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("failed to marshal tips history: %s", err)
		http.Error(w, "failed to marshal tips history", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, historyJson)
}
