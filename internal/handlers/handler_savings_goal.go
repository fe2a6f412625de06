package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/sms_budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
	"github.com/SscSPs/sms_budget_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type savingsGoalHandler struct {
	savingsGoalService portssvc.SavingsGoalSvcFacade
}

// registerSavingsGoalRoutes registers routes related to savings goals.
func registerSavingsGoalRoutes(rg *gin.RouterGroup, savingsGoalService portssvc.SavingsGoalSvcFacade) {
	h := &savingsGoalHandler{savingsGoalService: savingsGoalService}

	goals := rg.Group("/savings-goals")
	{
		goals.GET("", h.listSavingsGoals)
		goals.POST("", h.createSavingsGoal)
		goals.GET("/:id", h.getSavingsGoal)
		goals.PUT("/:id/amount", h.setSavingsGoalAmount)
		goals.POST("/:id/contributions", h.contributeToSavingsGoal)
	}
}

// listSavingsGoals godoc
// @Summary List savings goals
// @Description Lists the caller's savings goals, oldest first, with the total saved and completed count
// @Tags savings-goals
// @Produce  json
// @Success 200 {object} dto.ListSavingsGoalsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list savings goals"
// @Security BearerAuth
// @Router /savings-goals [get]
func (h *savingsGoalHandler) listSavingsGoals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.savingsGoalService.ListSavingsGoals(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list savings goals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// createSavingsGoal godoc
// @Summary Create a savings goal
// @Description Creates a goal with nothing saved yet
// @Tags savings-goals
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateSavingsGoalRequest true "Goal details"
// @Success 201 {object} dto.SavingsGoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create savings goal"
// @Security BearerAuth
// @Router /savings-goals [post]
func (h *savingsGoalHandler) createSavingsGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSavingsGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.savingsGoalService.CreateSavingsGoal(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create savings goal")
		return
	}

	logger.Info("Savings goal created", slog.String("goal_id", goal.GoalID))
	c.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(goal))
}

// getSavingsGoal godoc
// @Summary Get a savings goal
// @Tags savings-goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Savings goal not found"
// @Failure 500 {object} map[string]string "Failed to get savings goal"
// @Security BearerAuth
// @Router /savings-goals/{id} [get]
func (h *savingsGoalHandler) getSavingsGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.savingsGoalService.GetSavingsGoal(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to get savings goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// setSavingsGoalAmount godoc
// @Summary Set the saved amount
// @Description Overwrites how much has been saved towards a goal
// @Tags savings-goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   amount body dto.SetSavingsGoalAmountRequest true "New saved amount"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Savings goal not found"
// @Failure 500 {object} map[string]string "Failed to update savings goal"
// @Security BearerAuth
// @Router /savings-goals/{id}/amount [put]
func (h *savingsGoalHandler) setSavingsGoalAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetSavingsGoalAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetSavingsGoalAmount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.savingsGoalService.SetSavingsGoalAmount(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update savings goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// contributeToSavingsGoal godoc
// @Summary Add money to a goal
// @Description Adds to the saved amount. The saved amount never passes the target.
// @Tags savings-goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   contribution body dto.ContributeSavingsGoalRequest true "Amount to add"
// @Success 200 {object} dto.SavingsGoalResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Savings goal not found"
// @Failure 500 {object} map[string]string "Failed to add to savings goal"
// @Security BearerAuth
// @Router /savings-goals/{id}/contributions [post]
func (h *savingsGoalHandler) contributeToSavingsGoal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ContributeSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ContributeToSavingsGoal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	goal, err := h.savingsGoalService.ContributeToSavingsGoal(c.Request.Context(), ownerID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to add to savings goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}
