package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/repository"
)

const pingTimeout = 2 * time.Second

// Controller handles general HTTP requests.
type Controller struct {
	store repository.Pinger
}

// New creates a new Controller that reports on the given store.
func New(store repository.Pinger) *Controller {
	return &Controller{
		store: store,
	}
}

// Ping handles the HTTP GET request for health check endpoint.
func (con *Controller) Ping(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := con.store.Ping(ctx); err != nil {
		slog.Error("health check failed", slog.Any("err", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"message": "database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
