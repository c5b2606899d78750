// cmd/web/main.go
//
// paramguard – demo HTTP host for the validation middleware.
//
// Start-up
// --------
//
//  1. Load config (conf/.env → conf/global.yaml → PARAMGUARD_ env).
//
//  2. Start daily rotating logger (tees to console in a TTY).
//
//  3. Build the validator registry from `rules:` in config, or from the
//     built-in demo rules when the list is empty.
//
//  4. Mount routes on chi:
//
//     • /metrics          – Prometheus
//     • GET /test/{n}     – validated, returns {"name":"chashu"}
//
//  5. Serve until SIGINT / SIGTERM, then shut down gracefully.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/paramguard/internal/config"
	"github.com/yanizio/paramguard/internal/logger"
	"github.com/yanizio/paramguard/internal/middleware"
	"github.com/yanizio/paramguard/internal/respond"
	"github.com/yanizio/paramguard/internal/server"
	"github.com/yanizio/paramguard/internal/validation"
	"github.com/yanizio/paramguard/internal/validation/rules"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Log, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	reg, err := buildRegistry(cfg.Rules)
	if err != nil {
		logOut.Fatalw("build validator registry", "err", err)
	}
	logOut.Infow("validator registry ready", "fields", reg.Len())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.HTTP.ListenAddr, newRouter(cfg, reg))
	if err := server.Run(ctx, srv); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Infow("http server stopped")
}

// buildRegistry applies configured rules, or the demo set when none are
// configured.
func buildRegistry(list []config.Rule) (*validation.Registry, error) {
	reg := validation.NewRegistry()
	if len(list) == 0 {
		zap.S().Infow("no rules configured, using demo rules")
		reg.Register(validation.PathParam("n"), rules.IsNumber)
		reg.Register(validation.Header("X-Custom-Header"), rules.IsNumber)
		reg.Register(validation.QueryParam("test"), rules.IsBool)
		reg.Register(validation.QueryParam("test"), rules.MinLength(10))
		reg.Register(validation.Cookie("test"), rules.MinLength(20))
		return reg, nil
	}
	if err := rules.Apply(reg, list); err != nil {
		return nil, err
	}
	return reg, nil
}

type cat struct {
	Name string `json:"name"`
}

// newRouter wires the global wrappers, metrics, and the validated route.
func newRouter(cfg *config.Config, reg *validation.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.AccessLog)
	r.Use(middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS))
	r.Use(middleware.Security)

	r.Handle("/metrics", promhttp.Handler())

	// Installed per route so chi has bound {n} before validation runs.
	r.With(validation.Middleware(reg, validation.WithEncoder(respond.JSONEncoder))).
		Get("/test/{n}", func(w http.ResponseWriter, _ *http.Request) {
			if err := respond.JSON(w, http.StatusOK, cat{Name: "chashu"}, respond.JSONEncoder); err != nil {
				respond.Text(w, http.StatusInternalServerError, err.Error())
			}
		})

	return r
}
