package insight

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/leeguhn/crawler/internal/store"
	"github.com/leeguhn/crawler/review"
)

// Routes returns the doctor HTTP surface. passwordHash is an optional
// bcrypt hash; when set, every /api route requires HTTP Basic auth with
// a matching password.
func (s *Service) Routes(passwordHash string, logger *slog.Logger) chi.Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		if passwordHash != "" {
			api.Use(basicAuth(passwordHash))
		}
		api.Post("/analyze", s.handleAnalyze(logger))
		api.Get("/reports", s.handleReports)
		api.Get("/reports/{id}", s.handleReport)
	})
	return r
}

type analyzeRequest struct {
	CSVPath     string `json:"csv_path"`
	Instruction string `json:"instruction"`
}

func (s *Service) handleAnalyze(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if req.CSVPath == "" || req.Instruction == "" {
			writeError(w, http.StatusBadRequest, "csv_path and instruction are required")
			return
		}

		res, err := s.Analyze(r.Context(), req.CSVPath, req.Instruction)
		switch {
		case errors.Is(err, review.ErrNoReviewColumn):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			// Model endpoint failures surface verbatim, per run policy.
			logger.Error("insight: analyze failed", "csv", req.CSVPath, "error", err)
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (s *Service) handleReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.Reports(r.Context(), 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if reports == nil {
		reports = []*store.Report{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": toSummaries(reports)})
}

func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.Report(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSummary(rep, true))
}

func toSummaries(reports []*store.Report) []map[string]any {
	out := make([]map[string]any, len(reports))
	for i, rep := range reports {
		out[i] = toSummary(rep, false)
	}
	return out
}

func toSummary(rep *store.Report, withChunks bool) map[string]any {
	m := map[string]any{
		"id":           rep.ID,
		"csv_path":     rep.CSVPath,
		"instruction":  rep.Instruction,
		"model":        rep.Model,
		"review_count": rep.ReviewCount,
		"chunk_count":  rep.ChunkCount,
		"final_report": rep.Final,
		"created_at":   rep.CreatedAt.UTC(),
	}
	if withChunks {
		m["chunk_reports"] = rep.ChunkReports
	}
	return m
}

// basicAuth requires HTTP Basic credentials whose password matches the
// bcrypt hash. The username is not checked.
func basicAuth(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, pass, ok := r.BasicAuth()
			if !ok || bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(pass)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="doctor"`)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
