package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docugraph/docugraph-backend/internal/modules/ingest"
	"github.com/docugraph/docugraph-backend/internal/platform/apierr"
	"github.com/docugraph/docugraph-backend/internal/platform/ctxutil"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

type IngestHandler struct {
	svc *ingest.Service
	log *logger.Logger
}

func NewIngestHandler(svc *ingest.Service, log *logger.Logger) *IngestHandler {
	return &IngestHandler{svc: svc, log: log}
}

type ingestRequest struct {
	Documents []ingest.Document `json:"documents"`
	Prompt    string            `json:"prompt,omitempty"`
}

type ingestResponse struct {
	Results []ingest.DocumentResult `json:"results"`
}

// Ingest extracts triples from each submitted document and writes them
// to the graph. Per-document failures are reported in the result list
// rather than failing the whole batch.
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", err))
		return
	}
	if len(req.Documents) == 0 {
		RespondError(c, apierr.BadRequest("no_documents", errors.New("at least one document is required")))
		return
	}
	for _, doc := range req.Documents {
		if doc.Text == "" {
			RespondError(c, apierr.BadRequest("empty_document", errors.New("document text must not be empty")))
			return
		}
	}

	ctx := c.Request.Context()
	h.log.Info("ingest request", "request_id", ctxutil.RequestID(ctx), "documents", len(req.Documents))
	results := h.svc.IngestAll(ctx, req.Documents, req.Prompt)
	c.JSON(http.StatusOK, ingestResponse{Results: results})
}
