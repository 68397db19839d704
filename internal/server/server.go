// Package server exposes the document analysis service over HTTP.
package server

import (
	"context"

	"github.com/certifyai/certify/internal/agent"
	"github.com/certifyai/certify/internal/analyst"
	"github.com/certifyai/certify/internal/logger"
	"github.com/certifyai/certify/internal/vault"
	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps uploaded document size at 20 MB.
const maxUploadBytes = 20 << 20

// DocumentAnalyst is the analysis dependency of the server. Satisfied by
// *analyst.Analyst; tests substitute a stub.
type DocumentAnalyst interface {
	AnalyzeText(ctx context.Context, text string) (*analyst.Result, error)
	AnalyzeDocument(ctx context.Context, mimeType string, data []byte) (*analyst.Result, error)
}

// Server wires the analyst, agent, and vault behind HTTP handlers.
type Server struct {
	analyst DocumentAnalyst
	agent   *agent.Agent
	vault   vault.Vault
	log     *logger.Logger
}

// Option is a functional option for Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// New creates a server.
func New(a DocumentAnalyst, ag *agent.Agent, v vault.Vault, opts ...Option) *Server {
	s := &Server{
		analyst: a,
		agent:   ag,
		vault:   v,
		log:     logger.New("server", nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = maxUploadBytes

	r.GET("/", s.handleHealth)

	// /analyze predates the per-mode endpoints and behaves like
	// /analyze-text
	r.POST("/analyze", s.handleAnalyzeText)
	r.POST("/analyze-text", s.handleAnalyzeText)
	r.POST("/analyze-pdf", s.handleAnalyzeFile)
	r.POST("/analyze-image", s.handleAnalyzeFile)

	r.GET("/analyses/:id", s.handleGetAnalysis)

	return r
}

// Run starts the server on the given address.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}
