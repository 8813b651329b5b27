package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/monet-draw/monet/internal/auth"
	"github.com/monet-draw/monet/internal/canvas"
	"github.com/monet-draw/monet/internal/config"
	"github.com/monet-draw/monet/internal/db"
	"github.com/monet-draw/monet/internal/drawing"
	"github.com/monet-draw/monet/internal/live"
	mw "github.com/monet-draw/monet/internal/middleware"
	"github.com/monet-draw/monet/internal/render"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	canvas.SetLogger(slog.Default().With("component", "canvas"))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	queries := db.New(pool)
	renderOpts := []canvas.Option{canvas.WithUnit(cfg.DocumentUnit)}

	authService := auth.NewService(queries, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	drawingService := drawing.NewService(queries, cfg.MaxCommands, renderOpts...)
	drawingHandler := drawing.NewHandler(drawingService, cfg.MaxScriptBytes)

	renderHandler := render.NewHandler(cfg.MaxScriptBytes, cfg.MaxCommands, renderOpts...)

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hub := live.NewHub()
	go hub.Run(hubCtx)
	liveHandler := live.NewHandler(hub, authService, cfg.Origins(), cfg.MaxCommands, renderOpts...)

	handler := newRouter(routes{
		authService: authService,
		auth:        authHandler,
		drawings:    drawingHandler,
		render:      renderHandler,
		live:        liveHandler,
		hub:         hub,
	}, cfg.Origins())

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Hijacked websocket connections are not closed by Shutdown
		stopHub()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr, "unit", cfg.DocumentUnit)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

type routes struct {
	authService *auth.Service
	auth        *auth.Handler
	drawings    *drawing.Handler
	render      *render.Handler
	live        *live.Handler
	hub         *live.Hub
}

// newRouter wires every route. CORS wraps the router rather than being
// installed with Use, because mux only runs middleware on matched routes and
// preflight requests match none.
func newRouter(h routes, origins []string) http.Handler {
	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)

	// Auth routes (public)
	r.HandleFunc("/auth/register", h.auth.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.auth.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok","version":%q,"connections":%d}`, canvas.Version, h.hub.Count())
	}).Methods("GET")

	// Rendering (public)
	r.HandleFunc("/render", h.render.Render).Methods("POST")
	r.HandleFunc("/samples", h.render.ListSamples).Methods("GET")
	r.HandleFunc("/samples/{name}.svg", h.render.SampleSVG).Methods("GET")
	r.HandleFunc("/samples/{name}.json", h.render.SampleScript).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.authService.AuthMiddleware)

	api.HandleFunc("/me", h.auth.Me).Methods("GET")
	api.HandleFunc("/drawings", h.drawings.List).Methods("GET")
	api.HandleFunc("/drawings", h.drawings.Create).Methods("POST")
	api.HandleFunc("/drawings/{drawingId}/svg", h.drawings.GetSVG).Methods("GET")
	api.HandleFunc("/drawings/{drawingId}/script", h.drawings.GetScript).Methods("GET")
	api.HandleFunc("/drawings/{drawingId}", h.drawings.Delete).Methods("DELETE")

	// WebSocket endpoint, anonymous unless ?token= is given
	r.Handle("/ws/draw", h.live)

	return mw.CORS(origins)(r)
}
