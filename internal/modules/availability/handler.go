package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"astroconsult/internal/pkg/response"
)

type Handler struct {
	generator *Generator
}

func NewHandler(generator *Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/availability", h.GetAvailability)
}

func (h *Handler) GetAvailability(c *gin.Context) {
	dates := h.generator.Dates()

	out := make([]dateResponse, 0, len(dates))
	for _, d := range dates {
		out = append(out, dateResponse{
			Date:    d.Date.Format("2006-01-02"),
			Weekday: d.Date.Weekday().String(),
			Slots:   d.Slots,
		})
	}
	response.Success(c, http.StatusOK, gin.H{"dates": out})
}

type dateResponse struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Slots   []Slot `json:"slots"`
}
