package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/selimgur/kiraci/internal/apperrors"
	"github.com/selimgur/kiraci/internal/core/domain"
	portssvc "github.com/selimgur/kiraci/internal/core/ports/services"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/selimgur/kiraci/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{exchangeRateService: ers}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.upsertExchangeRate)
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.GET("/:year/:month", h.getExchangeRate)
		exchangeRates.POST("/:year/:month/fetch", h.fetchExchangeRate)
	}
}

// periodFromParams parses the :year/:month path segments.
func periodFromParams(c *gin.Context) (domain.MonthYear, bool) {
	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year and month must be numeric"})
		return domain.MonthYear{}, false
	}
	return domain.MonthYear{Month: month, Year: year}, true
}

// upsertExchangeRate godoc
// @Summary Record a monthly exchange rate
// @Description Stores a manually entered monthly rate; re-submitting the same month overwrites it
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.UpsertExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) upsertExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpsertExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.exchangeRateService.UpsertRate(c.Request.Context(), req)
	if err != nil {
		respondRateError(c, logger, err, "Failed to save exchange rate")
		return
	}

	logger.Info("Exchange rate saved", slog.String("period", rate.Period.String()))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List stored exchange rates
// @Tags exchange rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getExchangeRate godoc
// @Summary Get the exchange rate for a month
// @Tags exchange rates
// @Produce  json
// @Param   year  path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "No rate stored for the month"
// @Router /exchange-rates/{year}/{month} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := periodFromParams(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.GetRate(c.Request.Context(), period)
	if err != nil {
		respondRateError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// fetchExchangeRate godoc
// @Summary Fetch the month's rate from TCMB
// @Description Pulls the monthly average from the upstream provider and stores it
// @Tags exchange rates
// @Produce  json
// @Param   year  path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 404 {object} map[string]string "Provider has no data for the month"
// @Failure 502 {object} map[string]string "Provider unavailable"
// @Router /exchange-rates/{year}/{month}/fetch [post]
func (h *exchangeRateHandler) fetchExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period, ok := periodFromParams(c)
	if !ok {
		return
	}

	rate, err := h.exchangeRateService.FetchRate(c.Request.Context(), period)
	if err != nil {
		respondRateError(c, logger, err, "Failed to fetch exchange rate")
		return
	}

	logger.Info("Exchange rate fetched", slog.String("period", rate.Period.String()))
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// respondRateError triages rate/inflation service errors into HTTP responses.
func respondRateError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No data for the requested month"})
	case errors.Is(err, apperrors.ErrProviderUnavailable):
		logger.Error("Provider unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream provider unavailable"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
