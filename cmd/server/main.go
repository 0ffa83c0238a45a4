// Command server runs the Zafran House ordering website.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/zafran-house/ordering/internal/auth"
	"github.com/zafran-house/ordering/internal/cart"
	"github.com/zafran-house/ordering/internal/catalog"
	"github.com/zafran-house/ordering/internal/config"
	"github.com/zafran-house/ordering/internal/franchise"
	"github.com/zafran-house/ordering/internal/logging"
	"github.com/zafran-house/ordering/internal/supabase"
	"github.com/zafran-house/ordering/internal/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New("server", os.Stderr, cfg.Log.Level)

	db, err := supabase.New(supabase.Config{
		ProjectURL: cfg.Supabase.URL,
		AnonKey:    cfg.Supabase.AnonKey,
		ServiceKey: cfg.Supabase.ServiceKey,
	})
	if err != nil {
		log.Fatalf("supabase client: %v", err)
	}

	server, err := web.NewServer(
		logger,
		catalog.New(db),
		cart.NewRegistry(),
		auth.New(db, cfg.Supabase.JWTSecret),
		franchise.New(db),
	)
	if err != nil {
		log.Fatalf("server: %v", err)
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: server.Router(cfg.Server.AllowedOrigins),
	}

	go func() {
		logger.Info(context.Background(), "server starting", map[string]interface{}{
			"addr": cfg.Server.Addr(),
		})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error(ctx, "shutdown", err, nil)
	}
	logger.Info(context.Background(), "server stopped", nil)
}
