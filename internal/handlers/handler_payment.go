package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/selimgur/kiraci/internal/apperrors"
	portssvc "github.com/selimgur/kiraci/internal/core/ports/services"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/selimgur/kiraci/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to the derived payment series.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to payment records.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/agreements/:agreementID/payments")
	{
		payments.GET("", h.listPayments)
		payments.POST("/recalculate", h.recalculatePayments)
	}
}

// recalculatePayments godoc
// @Summary Regenerate the payment series for an agreement
// @Description Rebuilds one payment record per month from the agreement start through the current month; months without a stored exchange rate are reported in missingPeriods
// @Tags payments
// @Produce  json
// @Param   agreementID path string true "Agreement ID"
// @Success 200 {object} dto.PaymentSeriesResponse
// @Failure 404 {object} map[string]string "Agreement not found"
// @Failure 422 {object} map[string]string "A conditional rule could not be evaluated"
// @Router /agreements/{agreementID}/payments/recalculate [post]
func (h *paymentHandler) recalculatePayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	agreementID := c.Param("agreementID")

	records, gaps, err := h.paymentService.RecalculateSeries(c.Request.Context(), agreementID, time.Now().UTC())
	if err != nil {
		var ruleErr *apperrors.RuleFormatError
		switch {
		case errors.As(err, &ruleErr):
			logger.Warn("Rule format error during series generation",
				slog.String("agreement_id", agreementID),
				slog.String("condition", ruleErr.Condition),
			)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Agreement not found"})
		default:
			logger.Error("Failed to regenerate payment series", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate payment series"})
		}
		return
	}

	if len(gaps) > 0 {
		logger.Warn("Payment series has gaps",
			slog.String("agreement_id", agreementID),
			slog.Int("missing_months", len(gaps)),
		)
	}
	logger.Info("Payment series regenerated",
		slog.String("agreement_id", agreementID),
		slog.Int("records", len(records)),
	)
	c.JSON(http.StatusOK, dto.ToPaymentSeriesResponse(records, gaps))
}

// listPayments godoc
// @Summary List the stored payment series for an agreement
// @Tags payments
// @Produce  json
// @Param   agreementID path string true "Agreement ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Agreement not found"
// @Router /agreements/{agreementID}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	agreementID := c.Param("agreementID")

	payments, err := h.paymentService.ListPayments(c.Request.Context(), agreementID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Agreement not found"})
			return
		}
		logger.Error("Failed to list payments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list payments"})
		return
	}

	responses := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = dto.ToPaymentResponse(&payments[i])
	}
	c.JSON(http.StatusOK, responses)
}
