package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/auctionwatch/api/internal/errors"
	"github.com/auctionwatch/api/internal/middleware"
	"github.com/auctionwatch/api/internal/models"
	"github.com/auctionwatch/api/internal/services"
)

// EvaluationHandler handles guardrail bid evaluation HTTP requests.
type EvaluationHandler struct {
	service services.EvaluationService
}

// NewEvaluationHandler creates a new EvaluationHandler instance.
func NewEvaluationHandler(service services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
	}
}

// EvaluateRequest represents the body of the single-parcel evaluation endpoint.
type EvaluateRequest struct {
	ParcelID            string        `json:"parcelId" binding:"required"`
	County              string        `json:"county"`
	PropertyType        string        `json:"propertyType"`
	OtherLiens          []models.Lien `json:"otherLiens"`
	AssessedValue       float64       `json:"assessedValue" binding:"gte=0"`
	MarketValueEstimate float64       `json:"marketValueEstimate" binding:"gte=0"`
	TaxDue              float64       `json:"taxDue" binding:"gte=0"`
}

// EvaluateBatchRequest represents the body of the batch evaluation endpoint.
type EvaluateBatchRequest struct {
	Records []models.PropertyRecord `json:"records" binding:"required"`
}

// EvaluateBatchResponse represents the batch evaluation response.
type EvaluateBatchResponse struct {
	Tally     map[string]int       `json:"tally"`
	Decisions []models.BidDecision `json:"decisions"`
	Passed    int                  `json:"passed"`
	Rejected  int                  `json:"rejected"`
}

// Evaluate handles POST /api/v1/parcels/evaluate endpoint.
// It runs a single parcel through the guardrails and returns the decision.
func (h *EvaluationHandler) Evaluate(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing evaluation request", map[string]interface{}{
			"parcel_id": req.ParcelID,
		})
	}

	parcel := models.Parcel{
		ParcelID:            req.ParcelID,
		County:              req.County,
		PropertyType:        req.PropertyType,
		OtherLiens:          req.OtherLiens,
		AssessedValue:       req.AssessedValue,
		MarketValueEstimate: req.MarketValueEstimate,
		TaxDue:              req.TaxDue,
	}

	decision, err := h.service.EvaluateParcel(c.Request.Context(), parcel)
	if err != nil {
		if errors.Is(err, services.ErrEvaluationHalted) {
			apierrors.ServiceUnavailable(c, "Bid evaluation is currently halted")
			return
		}
		apierrors.InternalServerError(c, "Failed to evaluate parcel", err)
		return
	}

	c.JSON(http.StatusOK, decision)
}

// EvaluateBatch handles POST /api/v1/parcels/evaluate-batch endpoint.
// It runs a batch of raw property records through the guardrails.
func (h *EvaluationHandler) EvaluateBatch(c *gin.Context) {
	log := middleware.GetLogger(c)

	var req EvaluateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			apierrors.ValidationError(c, validationErrors)
			return
		}
		apierrors.BadRequest(c, "Invalid request body", nil)
		return
	}

	if log != nil {
		log.Info("Processing batch evaluation request", map[string]interface{}{
			"count": len(req.Records),
		})
	}

	result, err := h.service.EvaluateBatch(c.Request.Context(), req.Records)
	if err != nil {
		if errors.Is(err, services.ErrEvaluationHalted) {
			apierrors.ServiceUnavailable(c, "Bid evaluation is currently halted")
			return
		}
		apierrors.InternalServerError(c, "Failed to evaluate batch", err)
		return
	}

	c.JSON(http.StatusOK, EvaluateBatchResponse{
		Tally:     result.Tally,
		Decisions: result.Decisions,
		Passed:    result.Passed,
		Rejected:  result.Rejected,
	})
}
