package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appai "github.com/bryanwahyu/securewatch/internal/application/ai"
	appscans "github.com/bryanwahyu/securewatch/internal/application/scans"
	domai "github.com/bryanwahyu/securewatch/internal/domain/ai"
	"github.com/bryanwahyu/securewatch/internal/domain/risk"
	domain "github.com/bryanwahyu/securewatch/internal/domain/scans"
	"github.com/bryanwahyu/securewatch/internal/middleware"
)

// maxUploadBytes caps media submissions (form + file).
const maxUploadBytes = 64 << 20

type Router struct {
	scansSvc *appscans.Service
	aiSvc    *appai.Service
}

func NewRouter(scansSvc *appscans.Service, aiSvc *appai.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{scansSvc: scansSvc, aiSvc: aiSvc}
	mux := chi.NewRouter()

	// The dashboard is a browser app on another origin.
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{user}", func(rt chi.Router) {
		rt.Post("/scans/url", r.wrap(r.handleScanURL))
		rt.Post("/scans/media", r.wrap(r.handleScanMedia))
		rt.Get("/scans", r.wrap(r.handleHistory))
		rt.Get("/scans/latest", r.wrap(r.handleLatest))
		rt.Get("/scans/{id}", r.wrap(r.handleGet))
		rt.Delete("/scans/{id}", r.wrap(r.handleDelete))
		rt.Delete("/scans", r.wrap(r.handleClearHistory))
		rt.Get("/stats", r.wrap(r.handleStats))
		rt.Get("/export.csv", r.wrap(r.handleExport))
		rt.Post("/ai/explain", r.wrap(r.handleExplain))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, middleware.ErrInvalid):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			case errors.Is(err, domai.ErrNotConfigured):
				http.Error(w, "ai advisor not configured", http.StatusServiceUnavailable)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// userFrom validates the path partition key and, when auth is on, pins it
// to the authenticated user.
func userFrom(req *http.Request) (string, error) {
	user := chi.URLParam(req, "user")
	if err := middleware.ValidateUserID(user); err != nil {
		return "", err
	}
	if auth := middleware.GetUserFromContext(req.Context()); auth != "" && auth != user {
		return "", fmt.Errorf("api key is not valid for user %s: %w", user, middleware.ErrInvalid)
	}
	return user, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/{user}/scans/url
// Body: {"url": "<submission>"}
func (r *Router) handleScanURL(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}

	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding request body: %w", middleware.ErrInvalid)
	}
	if err := middleware.ValidateScanURL(body.URL); err != nil {
		return err
	}

	scan, err := r.scansSvc.ScanURL(req.Context(), appscans.ScanURLCommand{
		UserID: user,
		URL:    middleware.SanitizeScanURL(body.URL),
	})
	if err != nil {
		return err
	}

	middleware.IncrementPhishingScans()
	if scan.RiskLevel != risk.LevelSafe {
		middleware.IncrementThreats()
	}
	return writeJSON(w, scan)
}

// POST /v1/{user}/scans/media
// Multipart form with a single "file" part.
func (r *Router) handleScanMedia(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}

	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("parsing upload: %w", middleware.ErrInvalid)
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return fmt.Errorf("missing file part: %w", middleware.ErrInvalid)
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	media, err := middleware.MediaTypeOf(contentType)
	if err != nil {
		return err
	}

	scan, err := r.scansSvc.ScanMedia(req.Context(), appscans.ScanMediaCommand{
		UserID:      user,
		Filename:    header.Filename,
		Media:       media,
		FileSize:    header.Size,
		ContentType: contentType,
		Content:     file,
	})
	if err != nil {
		return err
	}

	middleware.IncrementDeepfakeScans()
	if scan.RiskLevel != risk.LevelSafe {
		middleware.IncrementThreats()
	}
	return writeJSON(w, scan)
}

// GET /v1/{user}/scans?page=&page_size=&type=&level=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}

	q := req.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("page_size"))
	filters := middleware.HistoryFilters(q.Get("type"), q.Get("level"))

	result, err := r.scansSvc.History(req.Context(), user, page, middleware.ValidatePageSize(size), filters)
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}

// GET /v1/{user}/scans/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	list := r.scansSvc.Latest(req.Context(), user, middleware.ValidateLimit(limit))
	return writeJSON(w, list)
}

// GET /v1/{user}/scans/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateScanID(id); err != nil {
		return err
	}

	scan, err := r.scansSvc.Get(req.Context(), user, domain.ScanID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, scan)
}

// DELETE /v1/{user}/scans/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateScanID(id); err != nil {
		return err
	}

	if err := r.scansSvc.Delete(req.Context(), user, domain.ScanID(id)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// DELETE /v1/{user}/scans
func (r *Router) handleClearHistory(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}
	if err := r.scansSvc.ClearHistory(req.Context(), user); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/{user}/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}
	return writeJSON(w, r.scansSvc.Stats(req.Context(), user))
}

// GET /v1/{user}/export.csv
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="securewatch-history.csv"`)
	return r.scansSvc.ExportCSV(req.Context(), user, w)
}

// POST /v1/{user}/ai/explain
// Body: {"scan_id": "<id>"}
func (r *Router) handleExplain(w http.ResponseWriter, req *http.Request) error {
	user, err := userFrom(req)
	if err != nil {
		return err
	}

	var body struct {
		ScanID string `json:"scan_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding request body: %w", middleware.ErrInvalid)
	}
	if err := middleware.ValidateScanID(body.ScanID); err != nil {
		return err
	}

	scan, err := r.scansSvc.Get(req.Context(), user, domain.ScanID(body.ScanID))
	if err != nil {
		return err
	}

	advice, err := r.aiSvc.Explain(req.Context(), scan)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{
		"scan_id": body.ScanID,
		"advice":  advice,
	})
}
