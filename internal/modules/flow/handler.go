package flow

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"astroconsult/internal/domain"
	"astroconsult/internal/pkg/response"
	"astroconsult/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Start)
	rg.GET("/bookings/:id", h.Get)
	rg.POST("/bookings/:id/offering", h.SelectOffering)
	rg.POST("/bookings/:id/date", h.SelectDate)
	rg.POST("/bookings/:id/time", h.SelectTime)
	rg.POST("/bookings/:id/details", h.EnterDetails)
	rg.POST("/bookings/:id/back", h.Back)
	rg.DELETE("/bookings/:id", h.Abandon)
}

func (h *Handler) Start(c *gin.Context) {
	sess := h.service.Start(c.GetInt64("user_id"))
	response.Success(c, http.StatusCreated, toSessionResponse(sess))
}

func (h *Handler) Get(c *gin.Context) {
	sess, err := h.service.Get(c.Param("id"), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) SelectOffering(c *gin.Context) {
	var req SelectOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please choose a consultation type")
		return
	}

	sess, err := h.service.SelectOffering(c.Param("id"), c.GetInt64("user_id"), req.OfferingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please choose a date")
		return
	}

	sess, err := h.service.SelectDate(c.Param("id"), c.GetInt64("user_id"), req.Date)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please choose a time slot")
		return
	}

	sess, err := h.service.SelectTime(c.Param("id"), c.GetInt64("user_id"), req.Time)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) EnterDetails(c *gin.Context) {
	var req EnterDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields", fields)
		return
	}

	details := domain.ContactDetails{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Topic:     req.Topic,
		Questions: req.Questions,
	}

	sess, err := h.service.EnterDetails(c.Param("id"), c.GetInt64("user_id"), details)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) Back(c *gin.Context) {
	sess, err := h.service.Back(c.Param("id"), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) Abandon(c *gin.Context) {
	if err := h.service.Abandon(c.Param("id"), c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"abandoned": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking session not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your booking session")
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fill in all required fields")
	case errors.Is(err, ErrOutOfOrder):
		response.Error(c, http.StatusConflict, "STEP_OUT_OF_ORDER", "This step is not available yet")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong. Please try again.")
	}
}
