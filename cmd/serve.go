package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akash-eu-prime/leadgen-cli/internal/filter"
	"github.com/akash-eu-prime/leadgen-cli/internal/model"
	"github.com/akash-eu-prime/leadgen-cli/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the lead pipeline over HTTP:

  POST /leads/generate   generate and persist a batch (?count=N&verify=true)
  GET  /leads            latest or named batch with filter query params
  GET  /leads/stats      batch statistics
  GET  /leads/options    available filter choices
  GET  /health           liveness check`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

type apiServer struct {
	store store.Store
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	api := &apiServer{store: st}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/leads", func(r chi.Router) {
		r.Post("/generate", api.handleGenerate)
		r.Get("/", api.handleList)
		r.Get("/stats", api.handleStats)
		r.Get("/options", api.handleOptions)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("http server listening", zap.Int("port", cfg.Server.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *apiServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	count := 50
	if v := r.URL.Query().Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > cfg.Generator.MaxLeads {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("count must be in [1, %d]", cfg.Generator.MaxLeads))
			return
		}
		count = n
	}
	verify := r.URL.Query().Get("verify") == "true"

	g := buildGenerator(0, verify)
	leads, err := g.Generate(r.Context(), count)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	batch, err := s.store.SaveBatch(r.Context(), leads.Leads)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

func (s *apiServer) handleList(w http.ResponseWriter, r *http.Request) {
	batch, ok := s.batchFromRequest(w, r)
	if !ok {
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	leads := filter.Apply(model.NewCollection(batch.Leads), criteria)
	writeJSON(w, http.StatusOK, map[string]any{
		"batch_id": batch.ID,
		"count":    leads.Len(),
		"leads":    leads.Leads,
	})
}

func (s *apiServer) handleStats(w http.ResponseWriter, r *http.Request) {
	batch, ok := s.batchFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.NewCollection(batch.Leads).Stats())
}

func (s *apiServer) handleOptions(w http.ResponseWriter, r *http.Request) {
	batch, ok := s.batchFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, filter.OptionsFor(model.NewCollection(batch.Leads)))
}

func (s *apiServer) batchFromRequest(w http.ResponseWriter, r *http.Request) (*store.Batch, bool) {
	batch, err := loadBatch(r.Context(), s.store, r.URL.Query().Get("batch"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "batch not found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return batch, true
}

// criteriaFromQuery maps filter query params onto criteria. Absent params
// stay unset.
func criteriaFromQuery(r *http.Request) (filter.Criteria, error) {
	q := r.URL.Query()
	c := filter.Criteria{
		Search:       q.Get("search"),
		Location:     q.Get("location"),
		Company:      q.Get("company"),
		FundingRound: q.Get("funding"),
		VerifiedOnly: q.Get("verified_only") == "true",
	}

	for name, dst := range map[string]**int{"min_score": &c.MinScore, "max_score": &c.MaxScore} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return c, fmt.Errorf("%s must be an integer", name)
			}
			*dst = &n
		}
	}
	if v := q.Get("has_paper"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("has_paper must be a boolean")
		}
		c.HasPaper = &b
	}
	return c, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
