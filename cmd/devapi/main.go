// Command devapi serves an in-memory RootShare backend for local runs of
// the CLI. State is lost on exit.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/rootshare/internal/logging"
	"github.com/dmitrijs2005/rootshare/internal/testutil/fakeapi"
)

func main() {
	addr := flag.String("a", ":3000", "listen address")
	secret := flag.String("k", "dev-secret", "HMAC key for issued tokens")
	ttl := flag.Duration("ttl", 15*time.Minute, "access token lifetime")
	level := flag.String("l", "info", "log level")
	flag.Parse()

	logger := logging.New(os.Stdout, *level)
	api := fakeapi.New([]byte(*secret), fakeapi.WithAccessTTL(*ttl), fakeapi.WithLogger(logger))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "shutdown failed", "error", err)
		}
	}()

	logger.Info(ctx, "serving dev API", "addr", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "server stopped", "error", err)
		os.Exit(1)
	}
}
