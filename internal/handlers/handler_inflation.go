package handlers

import (
	"log/slog"
	"net/http"

	"github.com/selimgur/kiraci/internal/core/domain"
	portssvc "github.com/selimgur/kiraci/internal/core/ports/services"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/selimgur/kiraci/internal/middleware"
	"github.com/gin-gonic/gin"
)

// inflationHandler handles HTTP requests related to inflation data and the
// legal maximum rent increase.
type inflationHandler struct {
	inflationService portssvc.InflationSvcFacade
}

// newInflationHandler creates a new inflationHandler.
func newInflationHandler(is portssvc.InflationSvcFacade) *inflationHandler {
	return &inflationHandler{inflationService: is}
}

// registerInflationRoutes registers routes related to inflation data.
func registerInflationRoutes(rg *gin.RouterGroup, inflationService portssvc.InflationSvcFacade) {
	h := newInflationHandler(inflationService)

	inflation := rg.Group("/inflation")
	{
		inflation.POST("", h.upsertInflation)
		inflation.GET("", h.listInflation)
		inflation.GET("/:year/:month", h.getInflation)
		inflation.POST("/:year/:month/fetch", h.fetchInflation)
	}

	rg.POST("/legal-max", h.legalMax)
}

// upsertInflation godoc
// @Summary Record a monthly inflation figure
// @Tags inflation
// @Accept  json
// @Produce  json
// @Param   figure body dto.UpsertInflationRequest true "Inflation details"
// @Success 201 {object} dto.InflationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /inflation [post]
func (h *inflationHandler) upsertInflation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertInflationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertInflation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	data, err := h.inflationService.UpsertInflation(c.Request.Context(), req)
	if err != nil {
		respondRateError(c, logger, err, "Failed to save inflation data")
		return
	}

	logger.Info("Inflation data saved", slog.String("period", data.Period.String()))
	c.JSON(http.StatusCreated, dto.ToInflationResponse(data))
}

// listInflation godoc
// @Summary List stored inflation figures
// @Tags inflation
// @Produce  json
// @Success 200 {array} dto.InflationResponse
// @Router /inflation [get]
func (h *inflationHandler) listInflation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	figures, err := h.inflationService.ListInflation(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list inflation data", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list inflation data"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListInflationResponse(figures))
}

// getInflation godoc
// @Summary Get the inflation figure for a month
// @Tags inflation
// @Produce  json
// @Param   year  path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.InflationResponse
// @Failure 404 {object} map[string]string "No figure stored for the month"
// @Router /inflation/{year}/{month} [get]
func (h *inflationHandler) getInflation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := periodFromParams(c)
	if !ok {
		return
	}

	data, err := h.inflationService.GetInflation(c.Request.Context(), period)
	if err != nil {
		respondRateError(c, logger, err, "Failed to retrieve inflation data")
		return
	}
	c.JSON(http.StatusOK, dto.ToInflationResponse(data))
}

// fetchInflation godoc
// @Summary Fetch the month's inflation figure from OECD
// @Tags inflation
// @Produce  json
// @Param   year  path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.InflationResponse
// @Failure 404 {object} map[string]string "Provider has no data for the month"
// @Failure 502 {object} map[string]string "Provider unavailable"
// @Router /inflation/{year}/{month}/fetch [post]
func (h *inflationHandler) fetchInflation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := periodFromParams(c)
	if !ok {
		return
	}

	data, err := h.inflationService.FetchInflation(c.Request.Context(), period)
	if err != nil {
		respondRateError(c, logger, err, "Failed to fetch inflation data")
		return
	}

	logger.Info("Inflation data fetched", slog.String("period", data.Period.String()))
	c.JSON(http.StatusOK, dto.ToInflationResponse(data))
}

// legalMax godoc
// @Summary Compute the legal maximum rent increase
// @Description Applies the stored inflation percentage for the period to a base amount; with no data the base amount is returned unchanged
// @Tags inflation
// @Accept  json
// @Produce  json
// @Param   request body dto.LegalMaxRequest true "Base amount and period"
// @Success 200 {object} dto.LegalMaxResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /legal-max [post]
func (h *inflationHandler) legalMax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LegalMaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for LegalMax", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	period := domain.MonthYear{Month: req.Month, Year: req.Year}
	maxAmount, data, err := h.inflationService.LegalMax(c.Request.Context(), req.BaseAmount, period)
	if err != nil {
		respondRateError(c, logger, err, "Failed to compute legal maximum")
		return
	}

	resp := dto.LegalMaxResponse{
		BaseAmount: req.BaseAmount,
		MaxAmount:  maxAmount,
		Month:      req.Month,
		Year:       req.Year,
	}
	if data != nil {
		resp.RatePercent = &data.RatePercent
	}
	c.JSON(http.StatusOK, resp)
}
