package api

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"lab-reservations/reservation"
	"lab-reservations/schedule"
)

// DocumentStore persists a supporting document and returns the reference
// the client attaches to its reservation request.
type DocumentStore interface {
	Store(ctx context.Context, data []byte, filename string) (string, error)
}

type API struct {
	router      *mux.Router
	catalog     *schedule.Catalog
	resolver    reservation.AvailabilityResolver
	calendar    reservation.CalendarGateway
	coordinator *reservation.Coordinator
	documents   DocumentStore
	loc         *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

func NewAPI(
	catalog *schedule.Catalog,
	resolver reservation.AvailabilityResolver,
	calendar reservation.CalendarGateway,
	coordinator *reservation.Coordinator,
	documents DocumentStore,
	loc *time.Location,
	logger *zap.Logger,
) *API {
	r := mux.NewRouter()
	r = r.PathPrefix("/api").Subrouter()
	return &API{
		router:      r,
		catalog:     catalog,
		resolver:    resolver,
		calendar:    calendar,
		coordinator: coordinator,
		documents:   documents,
		loc:         loc,
		logger:      logger,
		now:         time.Now,
	}
}

func (a *API) Handler() http.Handler {
	// Use Gorilla's built-in logging handler
	return handlers.LoggingHandler(os.Stdout, a.router)
}

type Response struct {
	Status   int `json:"status"`
	Response any `json:"response"`
}

func (a *API) Response(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(Response{
		Status:   status,
		Response: data,
	})
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (a *API) RegisterRoutes() {
	a.router.HandleFunc("/health", a.health).Methods(http.MethodGet)
	a.router.HandleFunc("/availability", a.getAvailability).Methods(http.MethodGet)
	a.router.HandleFunc("/reservations", a.createReservations).Methods(http.MethodPost)
	a.router.HandleFunc("/documents", a.uploadDocument).Methods(http.MethodPost)
}
