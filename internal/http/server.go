package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/janhavi-28/SEO-Agent/internal/common/logger"
)

type ServerConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Server struct {
	Engine *gin.Engine
	srv    *nethttp.Server
	logger logger.Logger
}

func NewServer(cfg ServerConfig, router RouterConfig) *Server {
	engine := NewRouter(router)
	log := router.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Server{
		Engine: engine,
		srv: &nethttp.Server{
			Addr:              cfg.Address,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
		logger: log,
	}
}

// Run serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{"address": s.srv.Addr})
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
