package http

import (
	"github.com/gin-gonic/gin"

	"github.com/sarun2104/training-app/internal/pkg/logger"
)

// Server owns the configured engine; the app layer only decides the address.
type Server struct {
	log    *logger.Logger
	engine *gin.Engine
}

func NewServer(log *logger.Logger, cfg RouterConfig) *Server {
	return &Server{
		log:    log.With("server", "http"),
		engine: NewRouter(cfg),
	}
}

// Engine exposes the router for tests and for handlers registered late.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run(address string) error {
	s.log.Info("HTTP server listening", "addr", address)
	return s.engine.Run(address)
}
