package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chuimeng/vecdex/internal/loaders"
	"github.com/chuimeng/vecdex/internal/pipeline"
)

// IngestRequest is the JSON body of POST /api/v1/ingest.
type IngestRequest struct {
	FilePath string `json:"file_path" binding:"required"`
	DocID    string `json:"doc_id" binding:"required"`
	FileHash string `json:"file_hash"`
}

// IngestResponse is the JSON body returned for a successful ingestion.
type IngestResponse struct {
	DocID      string `json:"doc_id"`
	SourceFile string `json:"source_file"`
	FileHash   string `json:"file_hash"`
	ChunkCount int    `json:"chunk_count"`
}

// Router builds the HTTP surface of the ingestion service.
func (s *Service) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api/v1")
	{
		api.POST("/ingest", s.handleIngest)
	}
	router.GET("/healthz", s.handleHealth)

	return router
}

func (s *Service) handleIngest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.Ingest(c.Request.Context(), req.FilePath, req.DocID, req.FileHash)
	if err != nil {
		c.JSON(ingestStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, IngestResponse{
		DocID:      result.Identity.DocID,
		SourceFile: result.Identity.SourceFile,
		FileHash:   result.Identity.FileHash,
		ChunkCount: result.ChunkCount,
	})
}

func (s *Service) handleHealth(c *gin.Context) {
	if err := s.Health(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ingestStatus maps pipeline failures onto HTTP status codes: caller
// mistakes read as 4xx, everything else as a server-side failure.
func ingestStatus(err error) int {
	switch {
	case errors.Is(err, loaders.ErrNotFound),
		errors.Is(err, loaders.ErrUnsupportedFileType),
		errors.Is(err, loaders.ErrNoExtractableText),
		errors.Is(err, pipeline.ErrEmptyDocument):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
