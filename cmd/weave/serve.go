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

	"github.com/spf13/cobra"

	httpAdapter "github.com/aretw0/weave/internal/adapters/http"
	"github.com/aretw0/weave/internal/logging"
	"github.com/aretw0/weave/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/weave/pkg/adapters/redis"
	"github.com/aretw0/weave/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rendering preview server",
	Long: `Starts an HTTP server exposing POST /render for fragment documents,
plus /healthz and Prometheus /metrics. Rendered output is cached in memory,
or in Redis when --redis is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		cacheTTL, _ := cmd.Flags().GetDuration("cache-ttl")

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		var cache ports.RenderCache
		if redisAddr != "" {
			rc := redisAdapter.New(redisAddr, "", 0, redisAdapter.WithTTL(cacheTTL))
			defer rc.Close()
			cache = rc
			logger.Info("Using Redis render cache", "addr", redisAddr, "ttl", cacheTTL)
		} else {
			cache = memory.New()
		}

		handler := httpAdapter.NewHandler(cache, logger)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Weave preview server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("Shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				fmt.Printf("Could not stop server gracefully: %v\n", err)
				os.Exit(1)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("port", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the shared render cache (host:port)")
	serveCmd.Flags().Duration("cache-ttl", time.Hour, "Expiration for cached renderings (Redis only)")
}
