package handler

import (
	"github.com/gin-gonic/gin"

	"betsense/internal/models"
)

type catalogResponse struct {
	AvailableSports       []models.Sport           `json:"availableSports"`
	AvailableBetTypes     []models.BetType         `json:"availableBetTypes"`
	MarketInfluences      []models.MarketInfluence `json:"marketInfluences"`
	AvailabilityValues    []models.Availability    `json:"availabilityValues"`
	MinBetsPerInsight     int                      `json:"minBetsPerInsight"`
	DefaultHistoricalOdds string                   `json:"defaultHistoricalOdds"`
}

type CatalogHandler struct {
	DefaultHistoricalOdds string
}

func (h *CatalogHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/catalog", h.catalog)
}

// @Summary Reference data for forms and filters
// @Tags catalog
// @Success 200 {object} apiResponse
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) catalog(c *gin.Context) {
	Ok(c, catalogResponse{
		AvailableSports:       models.AvailableSports(),
		AvailableBetTypes:     models.AvailableBetTypes(),
		MarketInfluences:      models.InfluenceCatalog(),
		AvailabilityValues:    models.AvailableAvailability(),
		MinBetsPerInsight:     models.MinBetsPerInsight,
		DefaultHistoricalOdds: h.DefaultHistoricalOdds,
	}, nil)
}
