package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/compscan/internal/analysis"
)

var servePort int

// analysisRunner is the slice of Analyzer the HTTP layer needs.
type analysisRunner interface {
	Run(ctx context.Context, address string, radiusMiles float64) (*analysis.Result, error)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for analysis requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		analyzer, err := initAnalyzer("")
		if err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: apiRouter(analyzer, cfg.Search.RadiusMiles),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// apiRouter builds the HTTP routes. defaultRadius fills in requests that
// omit radius_miles.
func apiRouter(runner analysisRunner, defaultRadius float64) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/api/analyze", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			Address     string  `json:"address"`
			RadiusMiles float64 `json:"radius_miles"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if body.Address == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address is required"})
			return
		}
		radius := body.RadiusMiles
		if radius == 0 {
			radius = defaultRadius
		}
		if radius < 1 || radius > 25 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius_miles out of range (1-25)"})
			return
		}

		result, err := runner.Run(req.Context(), body.Address, radius)
		if err != nil {
			zap.L().Error("analysis request failed",
				zap.String("address", body.Address),
				zap.Error(err),
			)
			writeJSON(w, http.StatusBadGateway, map[string]string{"error": "analysis failed"})
			return
		}

		writeJSON(w, http.StatusOK, result)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
