package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/subspace-app/reward-backend/internal/models"
	"github.com/subspace-app/reward-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SpinHandler handles reward-wheel HTTP requests
type SpinHandler struct {
	spinService services.SpinService
}

// NewSpinHandler creates a new SpinHandler
func NewSpinHandler(spinService services.SpinService) *SpinHandler {
	return &SpinHandler{
		spinService: spinService,
	}
}

// SpinRequestBody is the wire shape of a spin request. Numeric fields are
// pointers so that an absent or mistyped field is distinguishable from a
// zero value before anything reaches the domain layer.
type SpinRequestBody struct {
	UserID       string   `json:"user_id"`
	DomID        string   `json:"dom_id"`
	MinAmount    *float64 `json:"min_amount"`
	MaxAmount    *float64 `json:"max_amount"`
	Segments     *int     `json:"segments"`
	SpinDuration *int     `json:"spin_duration"`
}

// SpinResponse is the wire shape of a successful draw
type SpinResponse struct {
	Amount      float64   `json:"amount"`
	AllSegments []float64 `json:"all_segments"`
	SpinID      string    `json:"spin_id"`
}

// Spin handles POST /spins
func (h *SpinHandler) Spin(c *gin.Context) {
	var body SpinRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if body.MinAmount == nil || body.MaxAmount == nil || body.Segments == nil || body.SpinDuration == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_amount, max_amount, segments and spin_duration must be numbers"})
		return
	}

	req := &models.SpinRequest{
		RequesterID:         body.UserID,
		RecipientID:         body.DomID,
		MinAmount:           *body.MinAmount,
		MaxAmount:           *body.MaxAmount,
		SegmentCount:        *body.Segments,
		SpinDurationSeconds: *body.SpinDuration,
	}

	result, err := h.spinService.Spin(c.Request.Context(), req)
	if err != nil {
		h.writeSpinError(c, err)
		return
	}

	c.JSON(http.StatusOK, SpinResponse{
		Amount:      result.WinningAmount,
		AllSegments: result.Segments,
		SpinID:      result.SpinID,
	})
}

// writeSpinError maps the error taxonomy onto HTTP responses. Only user-safe
// messages cross the boundary; details stay in the server logs.
func (h *SpinHandler) writeSpinError(c *gin.Context, err error) {
	var vErr *models.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
		return
	}
	if errors.Is(err, models.ErrAccountNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dominant not found"})
		return
	}
	if errors.Is(err, models.ErrNotEligible) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient is not a dominant"})
		return
	}
	var pErr *models.PersistenceError
	if errors.As(err, &pErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save spin"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
}

// GetSpinByID handles GET /spins/:id
func (h *SpinHandler) GetSpinByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	record, err := h.spinService.GetSpinByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Spin not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve spin"})
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// GetSpins handles GET /spins with recipient_id, requester_id, status or
// start_date/end_date filters
func (h *SpinHandler) GetSpins(c *gin.Context) {
	page, limit := paginationParams(c)

	if recipientID := c.Query("recipient_id"); recipientID != "" {
		records, err := h.spinService.GetSpinsByRecipient(c.Request.Context(), recipientID, page, limit)
		h.writeSpinList(c, records, err)
		return
	}
	if requesterID := c.Query("requester_id"); requesterID != "" {
		records, err := h.spinService.GetSpinsByRequester(c.Request.Context(), requesterID, page, limit)
		h.writeSpinList(c, records, err)
		return
	}
	if status := c.Query("status"); status != "" {
		records, err := h.spinService.GetSpinsByStatus(c.Request.Context(), models.SpinStatus(status), page, limit)
		h.writeSpinList(c, records, err)
		return
	}

	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide recipient_id, requester_id, status, or start_date and end_date"})
		return
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format (YYYY-MM-DD)"})
		return
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format (YYYY-MM-DD)"})
		return
	}
	records, err := h.spinService.GetSpinsByDateRange(c.Request.Context(), start, end.AddDate(0, 0, 1), page, limit)
	h.writeSpinList(c, records, err)
}

// GetSpinCount handles GET /spins/count
func (h *SpinHandler) GetSpinCount(c *gin.Context) {
	count, err := h.spinService.GetSpinCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count spins"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *SpinHandler) writeSpinList(c *gin.Context, records []*models.SpinRecord, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve spins"})
		return
	}
	if records == nil {
		records = []*models.SpinRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
