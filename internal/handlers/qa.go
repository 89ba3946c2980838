package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docugraph/docugraph-backend/internal/modules/qa"
	"github.com/docugraph/docugraph-backend/internal/platform/apierr"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

type QAHandler struct {
	svc       *qa.Service
	questions []string
	log       *logger.Logger
}

func NewQAHandler(svc *qa.Service, questions []string, log *logger.Logger) *QAHandler {
	return &QAHandler{svc: svc, questions: questions, log: log}
}

type askRequest struct {
	Question string `json:"question"`
}

// Ask translates the question to Cypher, runs it read-only and
// synthesizes an answer from the rows. A generated query that
// contains write operations surfaces as 422.
func (h *QAHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, apierr.BadRequest("invalid_body", err))
		return
	}
	if req.Question == "" {
		RespondError(c, apierr.BadRequest("empty_question", errors.New("question must not be empty")))
		return
	}

	answer, err := h.svc.Ask(c.Request.Context(), req.Question)
	if err != nil {
		if errors.Is(err, qa.ErrDisallowedWrite) {
			RespondError(c, apierr.Unprocessable("disallowed_write", err))
			return
		}
		RespondError(c, apierr.BadGateway("ask_failed", err))
		return
	}
	c.JSON(http.StatusOK, answer)
}

type questionsResponse struct {
	Questions []string `json:"questions"`
}

func (h *QAHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, questionsResponse{Questions: h.questions})
}
