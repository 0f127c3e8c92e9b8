package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"astroconsult/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the assistant route under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/assistant", h.Send)
}

type sendRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	reply, err := h.service.Send(c.Request.Context(), req.Message)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "ASSISTANT_UNAVAILABLE", "assistant is unavailable")
		return
	}
	response.Success(c, http.StatusOK, reply)
}
