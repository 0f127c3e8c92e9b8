package catalog

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/offerings", h.ListOfferings)
	rg.GET("/catalog/offerings/:id", h.GetOffering)
	rg.GET("/catalog/plans", h.ListPlans)
}

func (h *Handler) ListOfferings(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"offerings": h.service.Offerings()})
}

func (h *Handler) GetOffering(c *gin.Context) {
	o, err := h.service.OfferingByID(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Offering not found")
		return
	}
	response.Success(c, http.StatusOK, o)
}

func (h *Handler) ListPlans(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"plans": h.service.Plans()})
}
