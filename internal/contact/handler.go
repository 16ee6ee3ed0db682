package contact

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/aitrainer/internal/telemetry/metrics"
	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

type mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Handler struct {
	mailer         mailer
	metricsManager *metrics.Manager
}

func NewHandler(mailer mailer, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		mailer:         mailer,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/contact", handler.HandleContact).Methods("POST", "OPTIONS").Name("contact")
}

func (handler *Handler) HandleContact(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.contact")
	defer span.End()

	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		log.Tracef("contact, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	if msg.Name == "" || msg.Email == "" || strings.TrimSpace(msg.Message) == "" {
		http.Error(w, "name, email and message are required", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		http.Error(w, "email is not valid", http.StatusBadRequest)
		return
	}

	if err := handler.mailer.Send(ctx, msg); err != nil {
		log.Errorf("contact, send email: %s", err)
		handler.metricsManager.CounterContactMessages.WithLabelValues("failed").Inc()
		http.Error(w, "Failed to send email", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterContactMessages.WithLabelValues("sent").Inc()
	pkg.WriteMessageResponseOK(w, "Message sent successfully")
}
