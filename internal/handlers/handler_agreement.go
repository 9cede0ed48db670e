package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/selimgur/kiraci/internal/apperrors"
	portssvc "github.com/selimgur/kiraci/internal/core/ports/services"
	"github.com/selimgur/kiraci/internal/dto"
	"github.com/selimgur/kiraci/internal/middleware"
	"github.com/gin-gonic/gin"
)

// agreementHandler handles HTTP requests related to rental agreements.
type agreementHandler struct {
	agreementService portssvc.AgreementSvcFacade
}

// newAgreementHandler creates a new agreementHandler.
func newAgreementHandler(as portssvc.AgreementSvcFacade) *agreementHandler {
	return &agreementHandler{agreementService: as}
}

// RegisterAgreementRoutes registers routes related to rental agreements.
func RegisterAgreementRoutes(rg *gin.RouterGroup, agreementService portssvc.AgreementSvcFacade) {
	h := newAgreementHandler(agreementService)

	agreements := rg.Group("/agreements")
	{
		agreements.POST("", h.createAgreement)
		agreements.GET("", h.listAgreements)
		agreements.GET("/:agreementID", h.getAgreement)
		agreements.PUT("/:agreementID", h.updateAgreement)
		agreements.DELETE("/:agreementID", h.deleteAgreement)
	}
}

// createAgreement godoc
// @Summary Create a rental agreement
// @Description Records a new rental agreement with optional conditional pricing rules
// @Tags agreements
// @Accept  json
// @Produce  json
// @Param   agreement body dto.CreateAgreementRequest true "Agreement details"
// @Success 201 {object} dto.AgreementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 409 {object} map[string]string "Agreement period overlaps an existing one"
// @Router /agreements [post]
func (h *agreementHandler) createAgreement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAgreement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	created, err := h.agreementService.CreateAgreement(c.Request.Context(), req)
	if err != nil {
		respondAgreementError(c, logger, err, "Failed to create agreement")
		return
	}

	logger.Info("Agreement created", slog.String("agreement_id", created.AgreementID))
	c.JSON(http.StatusCreated, dto.ToAgreementResponse(created))
}

// listAgreements godoc
// @Summary List rental agreements
// @Tags agreements
// @Produce  json
// @Success 200 {array} dto.AgreementResponse
// @Router /agreements [get]
func (h *agreementHandler) listAgreements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	agreements, err := h.agreementService.ListAgreements(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list agreements", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list agreements"})
		return
	}
	c.JSON(http.StatusOK, dto.ToListAgreementResponse(agreements))
}

// getAgreement godoc
// @Summary Get a rental agreement
// @Tags agreements
// @Produce  json
// @Param   agreementID path string true "Agreement ID"
// @Success 200 {object} dto.AgreementResponse
// @Failure 404 {object} map[string]string "Agreement not found"
// @Router /agreements/{agreementID} [get]
func (h *agreementHandler) getAgreement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	agreementID := c.Param("agreementID")

	agreement, err := h.agreementService.GetAgreementByID(c.Request.Context(), agreementID)
	if err != nil {
		respondAgreementError(c, logger, err, "Failed to get agreement")
		return
	}
	c.JSON(http.StatusOK, dto.ToAgreementResponse(agreement))
}

// updateAgreement godoc
// @Summary Update a rental agreement
// @Description Replaces the agreement's fields; regenerate the payment series afterwards
// @Tags agreements
// @Accept  json
// @Produce  json
// @Param   agreementID path string true "Agreement ID"
// @Param   agreement body dto.UpdateAgreementRequest true "Agreement details"
// @Success 200 {object} dto.AgreementResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Agreement not found"
// @Router /agreements/{agreementID} [put]
func (h *agreementHandler) updateAgreement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	agreementID := c.Param("agreementID")

	var req dto.UpdateAgreementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAgreement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.agreementService.UpdateAgreement(c.Request.Context(), agreementID, req)
	if err != nil {
		respondAgreementError(c, logger, err, "Failed to update agreement")
		return
	}

	logger.Info("Agreement updated", slog.String("agreement_id", agreementID))
	c.JSON(http.StatusOK, dto.ToAgreementResponse(updated))
}

// deleteAgreement godoc
// @Summary Delete a rental agreement
// @Description Removes the agreement and its derived payment records
// @Tags agreements
// @Param   agreementID path string true "Agreement ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Agreement not found"
// @Router /agreements/{agreementID} [delete]
func (h *agreementHandler) deleteAgreement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	agreementID := c.Param("agreementID")

	if err := h.agreementService.DeleteAgreement(c.Request.Context(), agreementID); err != nil {
		respondAgreementError(c, logger, err, "Failed to delete agreement")
		return
	}

	logger.Info("Agreement deleted", slog.String("agreement_id", agreementID))
	c.Status(http.StatusNoContent)
}

// respondAgreementError triages service errors into HTTP responses.
func respondAgreementError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrOverlap):
		logger.Warn("Overlap rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Agreement not found"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
