// Package httpapi serves a read-only HTTP view of the registered watch-lists.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/sofiwisher/sofiwisher/internal/store"
)

// Config contains configuration variables for the HTTP API.
type Config struct {
	// Addr is the address to listen on. The API is disabled when it is empty.
	Addr string `json:"addr" yaml:"addr" env:"HTTP_ADDR"`

	// ShutdownTimeout bounds the graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		Addr:            "",
		ShutdownTimeout: 5 * time.Second,
	}
}

// NewRouter returns the routes of the API backed by the given store.
func NewRouter(s store.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/users", func(c *gin.Context) {
		records, err := s.All(c.Request.Context())
		if err != nil {
			logger.Errorf("Failed to list watch-lists: %+v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
			return
		}
		if records == nil {
			records = []*store.Record{}
		}
		c.JSON(http.StatusOK, records)
	})

	r.GET("/users/:id/series", func(c *gin.Context) {
		userID := c.Param("id")
		series, err := s.List(c.Request.Context(), userID)
		switch {
		case errors.Is(err, store.ErrNoSeries):
			c.JSON(http.StatusNotFound, gin.H{"error": "no series"})
			return

		case err != nil:
			logger.Errorf("Failed to list series of %s: %+v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, store.Record{UserID: userID, Series: series})
	})

	return r
}

// Serve runs the handler on Config.Addr until ctx is canceled, then shuts it down gracefully.
func Serve(ctx context.Context, config *Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              config.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API listening on %s", config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
