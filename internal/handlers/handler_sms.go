package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/sms_budget_tracker/internal/apperrors"
	"github.com/SscSPs/sms_budget_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/sms_budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/sms_budget_tracker/internal/core/smsparser"
	"github.com/SscSPs/sms_budget_tracker/internal/dto"
	"github.com/SscSPs/sms_budget_tracker/internal/middleware"
	"github.com/SscSPs/sms_budget_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

// smsHandler handles HTTP requests that feed raw SMS messages into the tracker.
type smsHandler struct {
	smsService portssvc.SMSSvcFacade
	posthog    *utils.PosthogClientWrapper
}

func newSMSHandler(ss portssvc.SMSSvcFacade, posthog *utils.PosthogClientWrapper) *smsHandler {
	return &smsHandler{
		smsService: ss,
		posthog:    posthog,
	}
}

// registerSMSRoutes registers routes related to SMS ingestion. ingestLimit
// guards the routes that store data.
func registerSMSRoutes(rg *gin.RouterGroup, smsService portssvc.SMSSvcFacade, posthog *utils.PosthogClientWrapper, ingestLimit gin.HandlerFunc) {
	h := newSMSHandler(smsService, posthog)

	sms := rg.Group("/sms")
	{
		sms.POST("/parse", h.parseSMS)
		sms.POST("/duplicate-check", h.checkDuplicate)
		sms.POST("", ingestLimit, h.ingestSMS)
		sms.POST("/batch", ingestLimit, h.ingestBatch)
	}
}

// parseSMS godoc
// @Summary Parse an SMS without storing it
// @Description Runs the extractors and the classifier over one message and returns the result
// @Tags sms
// @Accept  json
// @Produce  json
// @Param   sms body dto.SMSRequest true "Raw SMS"
// @Success 200 {object} dto.ParseSMSResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} map[string]string "Message could not be parsed"
// @Security BearerAuth
// @Router /sms/parse [post]
func (h *smsHandler) parseSMS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ParseSMS", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	parsed, err := h.smsService.ParseSMS(c.Request.Context(), req.Message)
	if err != nil {
		h.respondIngestError(c, logger, err, "Failed to parse SMS")
		return
	}

	c.JSON(http.StatusOK, parsed)
}

// ingestSMS godoc
// @Summary Add a transaction from an SMS
// @Description Checks the message against the history, parses it and stores the transaction
// @Tags sms
// @Accept  json
// @Produce  json
// @Param   sms body dto.SMSRequest true "Raw SMS"
// @Success 201 {object} dto.IngestResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "SMS already processed"
// @Failure 422 {object} map[string]string "Message could not be parsed"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to add transaction"
// @Security BearerAuth
// @Router /sms [post]
func (h *smsHandler) ingestSMS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IngestSMS", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.smsService.IngestSMS(c.Request.Context(), ownerID, req.Message)
	if err != nil {
		h.respondIngestError(c, logger, err, "Failed to add transaction")
		return
	}

	logger.Info("SMS ingested", slog.String("transaction_id", result.Transaction.TransactionID))
	middleware.PosthogEvent(c, h.posthog, "sms_ingested", map[string]any{
		"type":     string(result.Transaction.Type),
		"category": string(result.Transaction.Category),
		"pending":  result.Transaction.Type == domain.Withdrawal,
	})
	c.JSON(http.StatusCreated, result)
}

// ingestBatch godoc
// @Summary Add transactions from several SMS messages
// @Description Processes messages in order. Each accepted message counts for duplicate detection of the ones after it.
// @Tags sms
// @Accept  json
// @Produce  json
// @Param   sms body dto.BatchSMSRequest true "Raw SMS messages"
// @Success 200 {object} dto.BatchSMSResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to process batch"
// @Security BearerAuth
// @Router /sms/batch [post]
func (h *smsHandler) ingestBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BatchSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IngestBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	results, err := h.smsService.IngestBatch(c.Request.Context(), ownerID, req.Messages)
	if err != nil {
		respondWithError(c, logger, err, "Failed to process batch")
		return
	}

	resp := dto.BatchSMSResponse{Results: results}
	for _, r := range results {
		if r.Status == dto.BatchStatusCreated {
			resp.Created++
		} else {
			resp.Rejected++
		}
	}

	logger.Info("SMS batch processed", slog.Int("created", resp.Created), slog.Int("rejected", resp.Rejected))
	middleware.PosthogEvent(c, h.posthog, "sms_batch_ingested", map[string]any{
		"created":  resp.Created,
		"rejected": resp.Rejected,
	})
	c.JSON(http.StatusOK, resp)
}

// checkDuplicate godoc
// @Summary Check whether an SMS was already processed
// @Tags sms
// @Accept  json
// @Produce  json
// @Param   sms body dto.SMSRequest true "Raw SMS"
// @Success 200 {object} dto.DuplicateCheckResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to check duplicate"
// @Security BearerAuth
// @Router /sms/duplicate-check [post]
func (h *smsHandler) checkDuplicate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckDuplicate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ownerID, ok := middleware.GetOwnerIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	duplicate, err := h.smsService.CheckDuplicate(c.Request.Context(), ownerID, req.Message)
	if err != nil {
		respondWithError(c, logger, err, "Failed to check duplicate")
		return
	}

	c.JSON(http.StatusOK, dto.DuplicateCheckResponse{Duplicate: duplicate})
}

// respondIngestError writes the user-facing messages for rejected SMS.
func (h *smsHandler) respondIngestError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Info("SMS already processed")
		c.JSON(http.StatusConflict, gin.H{"error": dto.MessageAlreadyProcessed})
	case errors.Is(err, apperrors.ErrUnparseable):
		body := gin.H{"error": dto.MessageCouldNotParse}
		var failure *smsparser.ParseFailure
		if errors.As(err, &failure) {
			body["reason"] = failure.Reason
		}
		logger.Info("SMS could not be parsed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, body)
	default:
		respondWithError(c, logger, err, fallbackMsg)
	}
}
