package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"betsense/internal/forms"
	"betsense/internal/logger"
	"betsense/internal/repository"
	"betsense/internal/service"
)

type OddsHandler struct {
	Repo    repository.Repository
	Ledger  *service.Ledger
	Advisor *service.Advisor
	Logger  *zap.Logger
}

func (h *OddsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/odds")
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/:id", h.get)
	group.POST("/:id/prediction", h.predict)
	group.POST("/:id/insights", h.insights)
}

// @Summary List odds
// @Tags odds
// @Param sport query string false "sport"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/v1/odds [get]
func (h *OddsHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	params := repository.ListOddsParams{
		Limit:  repository.NormalizeLimit(intQuery(c, "limit", 50), 50),
		Offset: repository.NormalizeOffset(intQuery(c, "offset", 0)),
		Sport:  strQueryPtr(c, "sport"),
	}
	ctx := c.Request.Context()
	items, err := h.Repo.ListOdds(ctx, params)
	if err != nil {
		logger.OrNop(h.Logger).Warn("list odds failed", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	total, err := h.Repo.CountOdds(ctx, params)
	if err != nil {
		logger.OrNop(h.Logger).Warn("count odds failed", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

// @Summary Get one odd
// @Tags odds
// @Param id path string true "odd id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/odds/{id} [get]
func (h *OddsHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	odd, err := h.Repo.GetOdd(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	Ok(c, odd, nil)
}

// @Summary Add an odd
// @Description Accepts JSON or form posts. marketInfluenceDetails, historicalComparisonChartData and playerStatusData may be JSON text; malformed text falls back to an empty value.
// @Tags odds
// @Accept json
// @Accept x-www-form-urlencoded
// @Param body body forms.OddForm true "odd"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/odds [post]
func (h *OddsHandler) create(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var form forms.OddForm
	if err := c.ShouldBind(&form); err != nil {
		bindError(c, err)
		return
	}
	if err := form.Validate(); err != nil {
		if !respondInvalid(c, err) {
			bindError(c, err)
		}
		return
	}
	odd := form.Odd(h.Logger)
	if err := h.Ledger.AddOdd(c.Request.Context(), &odd); err != nil {
		logger.OrNop(h.Logger).Warn("add odd failed", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	Created(c, odd)
}

// @Summary Predict odds movement for a stored odd
// @Tags odds
// @Param id path string true "odd id"
// @Param X-Surface-Key header string false "surface key, default prediction:<id>"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/odds/{id}/prediction [post]
func (h *OddsHandler) predict(c *gin.Context) {
	if h.Advisor == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	out, err := h.Advisor.PredictForOdd(c.Request.Context(), c.Param("id"), surfaceKey(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	Ok(c, out, nil)
}

// @Summary Analyze bet history against a stored odd
// @Tags odds
// @Param id path string true "odd id"
// @Param X-Surface-Key header string false "surface key, default insights:<id>"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/odds/{id}/insights [post]
func (h *OddsHandler) insights(c *gin.Context) {
	if h.Advisor == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	out, err := h.Advisor.InsightsForOdd(c.Request.Context(), c.Param("id"), surfaceKey(c))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	Ok(c, out, nil)
}
