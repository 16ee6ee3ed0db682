package bodymetrics

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/aitrainer/internal/telemetry/tracing"
	"github.com/2beens/aitrainer/pkg"
)

type BMIResponse struct {
	BMIResult
	Report string `json:"report"`
}

type BMRResponse struct {
	BMRResult
	Report string `json:"report"`
}

// Handler serves the public calculators.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/calc/bmi", handler.HandleBMI).Methods("POST", "OPTIONS").Name("calc-bmi")
	router.HandleFunc("/calc/bmr", handler.HandleBMR).Methods("POST", "OPTIONS").Name("calc-bmr")
}

func (handler *Handler) HandleBMI(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodymetrics.bmi")
	defer span.End()

	var in BMIInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Debugf("bmi, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	weightUnit, err := ParseWeightUnit(string(in.WeightUnit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	heightUnit, err := ParseHeightUnit(string(in.HeightUnit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in.WeightUnit, in.HeightUnit = weightUnit, heightUnit

	res, err := BMI(in.Weight, in.WeightUnit, in.Height, in.HeightUnit)
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, "weight and height must be positive numbers", http.StatusBadRequest)
		return
	}

	span.SetAttributes(attribute.String("bmi.category", res.Category))

	respBytes, err := json.Marshal(BMIResponse{
		BMIResult: res,
		Report:    BMIReport(in, res),
	})
	if err != nil {
		log.Errorf("marshal bmi response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}

func (handler *Handler) HandleBMR(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.bodymetrics.bmr")
	defer span.End()

	var in BMRInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Debugf("bmr, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	weightUnit, err := ParseWeightUnit(string(in.WeightUnit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	heightUnit, err := ParseHeightUnit(string(in.HeightUnit))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	in.WeightUnit, in.HeightUnit = weightUnit, heightUnit
	in.Gender = string(ParseGender(in.Gender))

	res, err := BMR(in.Age, Gender(in.Gender), in.Weight, in.WeightUnit, in.Height, in.HeightUnit)
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, "age, weight and height must be positive numbers", http.StatusBadRequest)
		return
	}

	respBytes, err := json.Marshal(BMRResponse{
		BMRResult: res,
		Report:    BMRReport(in, res),
	})
	if err != nil {
		log.Errorf("marshal bmr response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, respBytes)
}
