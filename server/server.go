// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package server exposes the email processing pipeline over HTTP.
//
// The API mirrors a loan-servicing intake flow: POST /process_email accepts
// an email as multipart form data (plain body text, an uploaded email file,
// attachments, or any combination), classifies it, and stores the record.
// POST /configure swaps the classification assistant identity at runtime.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/mailsift/ai"
	"github.com/poiesic/mailsift/ingest"
	"github.com/poiesic/mailsift/storage"
)

// Server holds the state for the REST API server.
type Server struct {
	pipeline   *ingest.Pipeline
	classifier ai.Classifier
	repository storage.EmailRepository
	router     *gin.Engine
	logger     *slog.Logger
}

// NewServer creates a new Server instance.
func NewServer(pipeline *ingest.Pipeline, classifier ai.Classifier, repository storage.EmailRepository) *Server {
	r := gin.Default()
	s := &Server{
		pipeline:   pipeline,
		classifier: classifier,
		repository: repository,
		router:     r,
		logger:     slog.Default().With("component", "server"),
	}
	s.setupRoutes()
	return s
}

// Run starts the server on the specified address.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler returns the underlying HTTP handler, for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.POST("/process_email", s.handleProcessEmail)
	s.router.POST("/configure", s.handleConfigure)
	s.router.GET("/emails", s.handleListEmails)
	s.router.GET("/stats", s.handleStats)
}

// Health check
func (s *Server) healthCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}
