package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"printquote/internal/catalog"
	"printquote/internal/pricing"
)

// Catalog is the configuration/storage collaborator the handlers talk
// to. The pricing engine itself only ever sees the snapshot.
type Catalog interface {
	Snapshot(ctx context.Context, req pricing.Request) (pricing.Snapshot, error)
	ListAnchors(ctx context.Context, filter catalog.AnchorFilter) ([]catalog.AnchorPrice, error)
	CreateAnchor(ctx context.Context, in catalog.AnchorInput) (*catalog.AnchorPrice, error)
	UpdateAnchor(ctx context.Context, id int64, in catalog.AnchorInput) (*catalog.AnchorPrice, error)
	DeleteAnchor(ctx context.Context, id int64) error
	ExportAnchorsXLSX(ctx context.Context) ([]byte, error)
}

type Server struct {
	catalog Catalog
	logger  *zap.Logger
	router  *gin.Engine
}

func New(cat Catalog, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		catalog: cat,
		logger:  logger,
		router:  gin.New(),
	}
	s.router.Use(gin.Recovery())
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth())
	s.router.POST("/quote/calculate", s.handleQuoteCalculate())

	admin := s.router.Group("/admin")
	{
		admin.GET("/anchors", s.handleListAnchors())
		admin.POST("/anchors", s.handleCreateAnchor())
		admin.PUT("/anchors/:id", s.handleUpdateAnchor())
		admin.DELETE("/anchors/:id", s.handleDeleteAnchor())
		admin.GET("/anchors/export", s.handleExportAnchors())
	}
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("HTTP server started", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
