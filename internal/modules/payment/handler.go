package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"astroconsult/internal/modules/flow"
	"astroconsult/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers payment routes under the protected group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings/:id/pay", h.Initiate)

	g := rg.Group("/payments/razorpay")
	{
		g.POST("/complete", h.Complete)
		g.POST("/failed", h.Failed)
		g.POST("/dismissed", h.Dismissed)
	}
}

func (h *Handler) Initiate(c *gin.Context) {
	userID := c.GetInt64("user_id")

	resp, err := h.service.Initiate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Complete(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	resp, err := h.service.Complete(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Failed(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req FailureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.Fail(c.Request.Context(), userID, req); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}

func (h *Handler) Dismissed(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req DismissRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.service.Dismiss(c.Request.Context(), userID, req); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"recorded": true})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, flow.ErrSessionNotFound), errors.Is(err, ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, flow.ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrPreconditionFailed):
		response.Error(c, http.StatusUnprocessableEntity, "PRECONDITION_FAILED", err.Error())
	case errors.Is(err, ErrSlotUnavailable):
		response.Error(c, http.StatusConflict, "SLOT_UNAVAILABLE", err.Error())
	case errors.Is(err, ErrPaymentSetupFailed):
		response.Error(c, http.StatusBadGateway, "PAYMENT_SETUP_FAILED", err.Error())
	case errors.Is(err, ErrVerificationFailed):
		response.Error(c, http.StatusBadRequest, "PAYMENT_VERIFICATION_FAILED", err.Error())
	case errors.Is(err, ErrAttemptMismatch):
		response.Error(c, http.StatusConflict, "ATTEMPT_MISMATCH", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}
