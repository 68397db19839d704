package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/certifyai/certify/internal/analysis"
	"github.com/certifyai/certify/internal/analyst"
	"github.com/certifyai/certify/internal/logger"
	"github.com/gin-gonic/gin"
)

// analyzeTextRequest is the JSON body of the text endpoints.
type analyzeTextRequest struct {
	Text string `json:"text"`
}

// analysisResponse is the success envelope shared by all analyze endpoints.
type analysisResponse struct {
	Analysis     analysisBody `json:"analysis"`
	ActionsTaken []string     `json:"actions_taken"`
}

type analysisBody struct {
	Summary      string     `json:"summary"`
	RiskAnalysis []riskBody `json:"risk_analysis"`
}

type riskBody struct {
	ClauseSummary    string `json:"clause_summary"`
	RiskLevel        string `json:"risk_level"`
	Explanation      string `json:"explanation"`
	ActionSuggestion string `json:"action_suggestion"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "CertifyAI backend is running.",
	})
}

func (s *Server) handleAnalyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: 'text' field is missing.",
		})
		return
	}

	result, err := s.analyst.AnalyzeText(c.Request.Context(), req.Text)
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}

	s.respondWithResult(c, result)
}

func (s *Server) handleAnalyzeFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: 'file' field is missing.",
		})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("File too large: limit is %d MB.", maxUploadBytes>>20),
		})
		return
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		s.log.Error("failed to read upload", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to analyze document.",
		})
		return
	}

	result, err := s.analyst.AnalyzeDocument(c.Request.Context(), uploadMIMEType(fileHeader), data)
	if err != nil {
		s.respondAnalysisError(c, err)
		return
	}

	s.respondWithResult(c, result)
}

func (s *Server) handleGetAnalysis(c *gin.Context) {
	record, err := s.vault.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Analysis not found.",
		})
		return
	}

	c.JSON(http.StatusOK, record)
}

// respondWithResult runs the follow-up agent and writes the success
// envelope.
func (s *Server) respondWithResult(c *gin.Context, result *analyst.Result) {
	actions := s.agent.Run(c.Request.Context(), result)

	report := result.Report
	body := analysisBody{
		Summary:      report.Summary,
		RiskAnalysis: make([]riskBody, 0, len(report.RiskItems)),
	}
	for _, item := range report.RiskItems {
		body.RiskAnalysis = append(body.RiskAnalysis, riskBody{
			ClauseSummary:    item.ClauseSummary,
			RiskLevel:        item.RiskLevel.String(),
			Explanation:      item.Explanation,
			ActionSuggestion: item.ActionSuggestion,
		})
	}

	c.JSON(http.StatusOK, analysisResponse{
		Analysis:     body,
		ActionsTaken: actions,
	})
}

func (s *Server) respondAnalysisError(c *gin.Context, err error) {
	if errors.Is(err, analyst.ErrEmptyDocument) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: document is empty.",
		})
		return
	}

	s.log.Error("analysis failed", logger.Err(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Failed to analyze document.",
		"details": err.Error(),
	})
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return data, nil
}

// uploadMIMEType picks the MIME type sent to the model, preferring the
// filename extension over the client-supplied header.
func uploadMIMEType(fileHeader *multipart.FileHeader) string {
	if mt := analysis.MIMEType(fileHeader.Filename); mt != "application/octet-stream" {
		return mt
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
