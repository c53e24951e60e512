package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
	"github.com/fintrackr/fintrackr_backend/internal/middleware"
)

type subscriptionHandler struct {
	subscriptionService portssvc.SubscriptionService
}

// registerSubscriptionRoutes registers routes related to subscriptions.
func registerSubscriptionRoutes(rg *gin.RouterGroup, subscriptionService portssvc.SubscriptionService) {
	h := &subscriptionHandler{subscriptionService: subscriptionService}

	subscriptions := rg.Group("/subscriptions")
	{
		subscriptions.POST("", h.createSubscription)
		subscriptions.GET("", h.listSubscriptions)
		subscriptions.GET("/:id", h.getSubscription)
		subscriptions.PUT("/:id", h.updateSubscription)
		subscriptions.DELETE("/:id", h.deleteSubscription)
		subscriptions.POST("/:id/advance", h.advanceCycle)
		subscriptions.GET("/:id/reminders", h.listReminders)
	}
}

// createSubscription godoc
// @Summary Create a new subscription
// @Description Creates a subscription with its next payment one cycle after the start date and schedules the reminder
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param subscription body dto.CreateSubscriptionRequest true "Subscription details"
// @Success 201 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /subscriptions [post]
func (h *subscriptionHandler) createSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create subscription")
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// listSubscriptions godoc
// @Summary List the user's subscriptions
// @Tags subscriptions
// @Produce json
// @Success 200 {array} dto.SubscriptionResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (h *subscriptionHandler) listSubscriptions(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	subs, err := h.subscriptionService.ListSubscriptions(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to list subscriptions")
		return
	}

	c.JSON(http.StatusOK, subs)
}

// getSubscription godoc
// @Summary Get a subscription by ID
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (h *subscriptionHandler) getSubscription(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetSubscriptionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve subscription")
		return
	}

	c.JSON(http.StatusOK, sub)
}

// updateSubscription godoc
// @Summary Update a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param subscription body dto.UpdateSubscriptionRequest true "Fields to update"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id} [put]
func (h *subscriptionHandler) updateSubscription(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateSubscription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	sub, err := h.subscriptionService.UpdateSubscription(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update subscription")
		return
	}

	c.JSON(http.StatusOK, sub)
}

// deleteSubscription godoc
// @Summary Delete a subscription
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id} [delete]
func (h *subscriptionHandler) deleteSubscription(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if err := h.subscriptionService.DeleteSubscription(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err, "Failed to delete subscription")
		return
	}

	c.Status(http.StatusNoContent)
}

// advanceCycle godoc
// @Summary Advance a subscription to its next billing cycle
// @Description Moves the next payment date one frequency interval forward and schedules the next reminder
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} map[string]string "Subscription is inactive"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id}/advance [post]
func (h *subscriptionHandler) advanceCycle(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.AdvanceCycle(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to advance subscription")
		return
	}

	c.JSON(http.StatusOK, sub)
}

// listReminders godoc
// @Summary List a subscription's pending reminders
// @Tags subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {array} dto.ReminderResponse
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /subscriptions/{id}/reminders [get]
func (h *subscriptionHandler) listReminders(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	reminders, err := h.subscriptionService.ListReminders(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to list reminders")
		return
	}

	c.JSON(http.StatusOK, reminders)
}
