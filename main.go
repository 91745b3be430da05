package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bitwise74/files-api/app"
	"bitwise74/files-api/config"
	"bitwise74/files-api/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	if err := app.MakeLogger(viper.GetString("app.log_level")); err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		zap.L().Fatal("Shutting down after a fatal error", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	mode := viper.GetString("app.mode")

	svc, err := setup(ctx)
	if err != nil {
		return err
	}
	defer svc.close()

	var server *http.Server
	serverErr := make(chan error, 1)

	if mode == "api" || mode == "all" {
		router := app.NewRouter(svc.deps, app.RouterConfig{
			Origins:       splitOrigins(viper.GetString("host.cors")),
			RateLimit:     viper.GetInt("security.rate_limit"),
			MaxUploadSize: viper.GetInt64("upload.max_size"),
		})

		server = &http.Server{
			Addr:              fmt.Sprintf(":%d", viper.GetInt("host.port")),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			zap.L().Info("Server starting", zap.String("addr", server.Addr))

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	}

	if mode == "worker" || mode == "all" {
		err := svc.consumer.Start(queue.Handlers{
			Thumbnail: svc.thumbnails.Handle,
			Welcome:   svc.deps.Users.Welcome,
		})
		if err != nil {
			return fmt.Errorf("failed to start queue consumer, %w", err)
		}

		zap.L().Info("Queue consumer started", zap.String("driver", viper.GetString("queue.driver")))
	}

	select {
	case <-ctx.Done():
		zap.L().Info("Shutdown signal received")
	case err := <-serverErr:
		zap.L().Error("Server stopped", zap.Error(err))
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Failed to shut the server down gracefully", zap.Error(err))
		}
	}

	if mode == "worker" || mode == "all" {
		svc.consumer.Shutdown()
	}

	return nil
}

func splitOrigins(s string) []string {
	origins := []string{}

	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return origins
}
