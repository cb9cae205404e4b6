package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"betsense/internal/analysis"
	"betsense/internal/forms"
	"betsense/internal/gateway"
	"betsense/internal/service"
)

// ActionsHandler exposes the three analyst actions. Invalid input is
// rejected with 400 before any analyst runs; analyst failures come back as
// 200 with data.error set.
type ActionsHandler struct {
	Advisor  *service.Advisor
	Surfaces *service.Surfaces
	Logger   *zap.Logger
}

func (h *ActionsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/actions")
	group.POST("/predict-odds-changes", h.predict)
	group.POST("/calculate-bet-value", h.calculate)
	group.POST("/analyze-bet-history", h.analyze)
	r.GET("/api/v1/surfaces/:key", h.surface)
}

// @Summary Predict odds movement
// @Tags actions
// @Accept json
// @Param X-Surface-Key header string false "surface key, default prediction:adhoc"
// @Param body body gateway.PredictOddsChangesInput true "input"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/actions/predict-odds-changes [post]
func (h *ActionsHandler) predict(c *gin.Context) {
	if h.Advisor == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var in gateway.PredictOddsChangesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	if err := gateway.ValidateInput(gateway.ContractPredictOddsChanges, in); err != nil {
		if !respondInvalid(c, err) {
			bindError(c, err)
		}
		return
	}
	surface := surfaceKey(c)
	if surface == "" {
		surface = service.SurfacePrediction("adhoc")
	}
	Ok(c, h.Advisor.Predict(c.Request.Context(), surface, in), nil)
}

// @Summary Estimate the value of a bet
// @Description Uses the stored bet history. Without userHistoryAnalysis the history analysis runs first and its summary is passed on.
// @Tags actions
// @Accept json
// @Accept x-www-form-urlencoded
// @Param X-Surface-Key header string false "surface key, default calculator"
// @Param body body forms.CalculatorForm true "input"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/actions/calculate-bet-value [post]
func (h *ActionsHandler) calculate(c *gin.Context) {
	if h.Advisor == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var form forms.CalculatorForm
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
	out, err := h.Advisor.CalculateValue(c.Request.Context(), surfaceKey(c), form.Request())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	Ok(c, out, nil)
}

type analyzeRequest struct {
	CurrentBetContext analysis.BetContext `json:"currentBetContext"`
}

// @Summary Find patterns in the bet history for a match
// @Tags actions
// @Accept json
// @Param X-Surface-Key header string false "surface key, default insights"
// @Param body body analyzeRequest true "input"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/actions/analyze-bet-history [post]
func (h *ActionsHandler) analyze(c *gin.Context) {
	if h.Advisor == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	check := gateway.AnalyzeBetHistoryInput{CurrentBetContext: req.CurrentBetContext}
	if err := gateway.ValidateInput(gateway.ContractAnalyzeBetHistory, check); err != nil {
		if !respondInvalid(c, err) {
			bindError(c, err)
		}
		return
	}
	out, err := h.Advisor.AnalyzeHistory(c.Request.Context(), surfaceKey(c), req.CurrentBetContext)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	Ok(c, out, nil)
}

// @Summary Last applied result of a surface
// @Tags actions
// @Param key path string true "surface key"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/v1/surfaces/{key} [get]
func (h *ActionsHandler) surface(c *gin.Context) {
	if h.Surfaces == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	snap, ok := h.Surfaces.Snapshot(c.Param("key"))
	if !ok {
		Error(c, http.StatusNotFound, "unknown surface", nil)
		return
	}
	Ok(c, snap, nil)
}
