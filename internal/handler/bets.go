package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"betsense/internal/analysis"
	"betsense/internal/forms"
	"betsense/internal/logger"
	"betsense/internal/models"
	"betsense/internal/repository"
	"betsense/internal/service"
)

type BetsHandler struct {
	Repo   repository.Repository
	Ledger *service.Ledger
	Logger *zap.Logger
}

func (h *BetsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/bets")
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/stake-profile", h.stakeProfile)
}

// @Summary List bet history
// @Tags bets
// @Param sport query string false "sport"
// @Param outcome query string false "win|loss"
// @Param ascending query bool false "oldest first"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/v1/bets [get]
func (h *BetsHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	params := repository.ListBetsParams{
		Limit:   repository.NormalizeLimit(intQuery(c, "limit", 50), 50),
		Offset:  repository.NormalizeOffset(intQuery(c, "offset", 0)),
		Sport:   strQueryPtr(c, "sport"),
		Outcome: strQueryPtr(c, "outcome"),
		Asc:     boolQueryPtr(c, "ascending"),
	}
	ctx := c.Request.Context()
	items, err := h.Repo.ListBets(ctx, params)
	if err != nil {
		logger.OrNop(h.Logger).Warn("list bets failed", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	total, err := h.Repo.CountBets(ctx, params)
	if err != nil {
		logger.OrNop(h.Logger).Warn("count bets failed", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

// @Summary Record a bet
// @Tags bets
// @Accept json
// @Accept x-www-form-urlencoded
// @Param body body forms.BetForm true "bet"
// @Success 201 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Router /api/v1/bets [post]
func (h *BetsHandler) create(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var form forms.BetForm
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
	bet := form.Bet()
	if err := h.Ledger.AddBet(c.Request.Context(), &bet); err != nil {
		logger.OrNop(h.Logger).Warn("add bet failed", zap.Error(err))
		respondStoreError(c, err)
		return
	}
	Created(c, bet)
}

type stakeProfileResponse struct {
	analysis.StakeProfile
	Stake     *float64 `json:"stake,omitempty"`
	Narrative string   `json:"narrative,omitempty"`
}

// @Summary Stake profile over the whole bet history
// @Tags bets
// @Param stake query number false "prospective stake to compare"
// @Success 200 {object} apiResponse
// @Router /api/v1/bets/stake-profile [get]
func (h *BetsHandler) stakeProfile(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	history, err := h.Repo.BetHistory(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	resp := stakeProfileResponse{StakeProfile: analysis.ComputeStakeProfile(history)}
	if stake := floatQueryPtr(c, "stake"); stake != nil {
		if !models.ValidStake(*stake) {
			Invalid(c, map[string]string{"stake": "Stake must be a positive number"})
			return
		}
		resp.Stake = stake
		resp.Narrative = analysis.StakeNarrative(*stake, resp.StakeProfile)
	}
	Ok(c, resp, nil)
}
