package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/garagebook/garagebook/internal/config"
	"github.com/garagebook/garagebook/internal/database"
	"github.com/garagebook/garagebook/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

type Server struct {
	db            *database.DB
	cfg           *config.Config
	exportLimiter *rate.Limiter
}

func NewServer(db *database.DB, cfg *config.Config) *Server {
	return &Server{
		db:            db,
		cfg:           cfg,
		exportLimiter: rate.NewLimiter(rate.Every(5*time.Second), 2),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.BaseURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.healthCheck)
		r.Get("/stats", s.getGlobalStats)

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", s.listVehicles)
			r.Post("/", s.createVehicle)
			r.Get("/search", s.searchVehicles)
			r.Put("/status/unused", s.clearVehicleStatus)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getVehicle)
				r.Put("/", s.updateVehicle)
				r.Delete("/", s.deleteVehicle)
				r.Put("/status", s.setVehicleStatus)

				r.Get("/maintenance", s.listMaintenance)
				r.Post("/maintenance", s.createMaintenance)

				r.Get("/charging", s.listCharging)
				r.Post("/charging", s.createCharging)
				r.Get("/charging/stats", s.getChargingSummary)
				r.Get("/charging/trend", s.getChargingTrend)
				r.Get("/charging/locations", s.getChargingLocations)
			})
		})

		r.Route("/charging", func(r chi.Router) {
			r.Put("/{id}", s.updateCharging)
			r.Delete("/{id}", s.deleteCharging)
		})

		r.Route("/bills", func(r chi.Router) {
			r.Get("/", s.listBills)
			r.Post("/", s.createBill)
			r.Get("/stats/monthly", s.getMonthlyBillStats)
			r.Get("/stats/categories", s.getCategoryBreakdown)
			r.Get("/{id}", s.getBill)
			r.Put("/{id}", s.updateBill)
			r.Delete("/{id}", s.deleteBill)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
			r.Put("/{id}", s.updateCategory)
			r.Delete("/{id}", s.deleteCategory)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", s.listBookmarks)
			r.Post("/", s.createBookmark)
			r.Post("/reorder", s.reorderBookmarks)
			r.Put("/{id}", s.updateBookmark)
			r.Delete("/{id}", s.deleteBookmark)
		})

		r.Route("/export", func(r chi.Router) {
			r.Use(s.rateLimitExport)
			r.Get("/vehicles/{id}/charging", s.exportCharging)
			r.Get("/bills", s.exportBills)
		})
	})

	// Serve frontend
	s.serveFrontend(r)

	return r
}

// --- Middleware ---

func (s *Server) rateLimitExport(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.exportLimiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "Rate limit exceeded - please wait before requesting another export")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- Health & Global Stats ---

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getGlobalStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	totalVehicles, err := s.db.CountVehicles(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	totalMaintenance, err := s.db.CountMaintenance(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	totalCost, err := s.db.SumMaintenanceCost(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	avgMileage, err := s.db.AvgMileage(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.GlobalStats{
		TotalVehicles:    totalVehicles,
		TotalMaintenance: totalMaintenance,
		TotalCost:        strconv.FormatFloat(totalCost, 'f', 2, 64),
		AvgMileage:       strconv.FormatFloat(avgMileage, 'f', 2, 64),
	})
}

// --- Frontend ---

func (s *Server) serveFrontend(r chi.Router) {
	staticDir := s.cfg.StaticDir

	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		log.Warn().Str("dir", staticDir).Msg("frontend static directory not found")
		return
	}

	fs := http.FileServer(http.Dir(staticDir))

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(staticDir, r.URL.Path)

		if _, err := os.Stat(path); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		fs.ServeHTTP(w, r)
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDBError maps storage errors onto the fixed status surface: 404 for a
// missing row, 500 with the message for everything else (constraint
// violations included).
func writeDBError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, database.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func urlID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
