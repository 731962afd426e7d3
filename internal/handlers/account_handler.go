package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subspace-app/reward-backend/internal/models"
	"github.com/subspace-app/reward-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService services.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService services.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateAccountRequest is the wire shape for account creation
type CreateAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// CreateAccount handles POST /accounts
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account := &models.Account{
		Username: req.Username,
		Role:     models.Role(req.Role),
	}
	if err := h.accountService.CreateAccount(c.Request.Context(), account); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GetAccountByID handles GET /accounts/:id
func (h *AccountHandler) GetAccountByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return
	}
	account, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetAccountByUsername handles GET /accounts/username/:username
func (h *AccountHandler) GetAccountByUsername(c *gin.Context) {
	account, err := h.accountService.GetAccountByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, models.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve account"})
		}
		return
	}
	c.JSON(http.StatusOK, account)
}

// GetAccounts handles GET /accounts, filtered by role
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	page, limit := paginationParams(c)
	role := models.Role(c.DefaultQuery("role", string(models.RoleDominant)))

	accounts, err := h.accountService.GetAccountsByRole(c.Request.Context(), role, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounts"})
		return
	}
	if accounts == nil {
		accounts = []*models.Account{}
	}
	c.JSON(http.StatusOK, accounts)
}

// GetAccountCount handles GET /accounts/count
func (h *AccountHandler) GetAccountCount(c *gin.Context) {
	count, err := h.accountService.GetAccountCount(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}
