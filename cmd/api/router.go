package main

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"bookmanager-backend/internal/shared/middleware"
	"bookmanager-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Covers written by the local store are served straight from disk. The
	// minio driver returns absolute object URLs instead.
	if c.Config.Storage.Driver == "local" {
		router.Static("/images", filepath.Join(c.Config.Storage.Root, "images"))
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupBookRoutes(v1, c)
	}

	return router
}

func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/export", c.BookHandler.ExportBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.POST("", c.BookHandler.CreateBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id/image", c.BookHandler.DeleteBookImage)
		books.DELETE("/:id", c.BookHandler.DeleteBook)
	}
}

// healthCheckHandler reports liveness of the process and its two backing
// services.
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "unreachable"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(checkCtx); err != nil {
			status = http.StatusServiceUnavailable
			cacheStatus = "unreachable"
		}

		ctx.JSON(status, gin.H{
			"status":   http.StatusText(status),
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}
