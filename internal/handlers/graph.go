package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
	"github.com/docugraph/docugraph-backend/internal/modules/qa"
	"github.com/docugraph/docugraph-backend/internal/modules/viz"
	"github.com/docugraph/docugraph-backend/internal/platform/apierr"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

type GraphHandler struct {
	store *graph.Store
	svc   *qa.Service
	log   *logger.Logger
}

func NewGraphHandler(store *graph.Store, svc *qa.Service, log *logger.Logger) *GraphHandler {
	return &GraphHandler{store: store, svc: svc, log: log}
}

type subgraphRequest struct {
	Question string `json:"question"`
}

// Subgraph extracts entities from the question, fetches the rows
// anchored on them and shapes them into a renderable graph model.
func (h *GraphHandler) Subgraph(c *gin.Context) {
	var req subgraphRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", err))
		return
	}
	if req.Question == "" {
		RespondError(c, apierr.BadRequest("empty_question", errors.New("question must not be empty")))
		return
	}

	rows, err := h.svc.Subgraph(c.Request.Context(), req.Question)
	if err != nil {
		RespondError(c, apierr.BadGateway("subgraph_failed", err))
		return
	}
	c.JSON(http.StatusOK, viz.BuildModel(rows))
}

func (h *GraphHandler) Schema(c *gin.Context) {
	schema, err := h.store.Schema(c.Request.Context())
	if err != nil {
		RespondError(c, apierr.BadGateway("schema_failed", err))
		return
	}
	c.JSON(http.StatusOK, schema)
}

type existsResponse struct {
	HasData bool `json:"has_data"`
}

func (h *GraphHandler) Exists(c *gin.Context) {
	has, err := h.store.HasData(c.Request.Context())
	if err != nil {
		RespondError(c, apierr.BadGateway("exists_failed", err))
		return
	}
	c.JSON(http.StatusOK, existsResponse{HasData: has})
}

// Clear drops every node and relationship. Destructive; mounted under
// the admin route group only.
func (h *GraphHandler) Clear(c *gin.Context) {
	if err := h.store.Clear(c.Request.Context()); err != nil {
		RespondError(c, apierr.BadGateway("clear_failed", err))
		return
	}
	c.Status(http.StatusNoContent)
}
