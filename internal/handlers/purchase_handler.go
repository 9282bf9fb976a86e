package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/services"
)

// IdempotencyKeyHeader lets a client retry a purchase without buying twice.
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// PurchaseHandler handles token purchases.
type PurchaseHandler struct {
	purchaseService services.PurchaseServicer
	auditService    services.AuditServicer
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService services.PurchaseServicer, auditService services.AuditServicer) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService, auditService: auditService}
}

// PurchaseRequest is the body of a token purchase. Amount is decoded as a
// json.Number so fractional or non-numeric amounts surface as InvalidQuantity
// instead of a generic decode error.
type PurchaseRequest struct {
	InvestmentID string      `json:"investmentId"`
	Amount       json.Number `json:"amount" swaggertype:"integer"`
}

// Purchase buys tokens of an investment for the authenticated user
// @Summary     Purchase tokens
// @Description Atomically reserves tokens and records the purchase at the current price.
// @Tags        tokens
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key header string          false "Client key; a retry with the same key returns the original purchase"
// @Param       request         body   PurchaseRequest true  "Purchase"
// @Success     201 {object} models.Token
// @Success     200 {object} models.Token "Replay of an earlier request with the same Idempotency-Key"
// @Failure     400 {object} ErrorResponse "InvalidQuantity"
// @Failure     404 {object} ErrorResponse "NotFound"
// @Failure     409 {object} ErrorResponse "Inactive or InsufficientSupply; DUPLICATE_REQUEST while the key is in flight or, if its result could not be recorded, until it expires"
// @Failure     503 {object} ErrorResponse "PersistenceFailure"
// @Router      /tokens/purchase [post]
func (h *PurchaseHandler) Purchase(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidQuantity, "Request body must be {investmentId, amount}"))
		return
	}

	quantity, err := req.Amount.Int64()
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidQuantity)
		return
	}

	key := strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader))
	if len(key) > maxIdempotencyKeyLen {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Idempotency-Key is too long"))
		return
	}

	token, replayed, err := h.purchaseService.PurchaseOnce(c.Request.Context(), key, userID, req.InvestmentID, quantity)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if replayed {
		c.Header("Idempotent-Replay", "true")
		c.JSON(http.StatusOK, token)
		return
	}

	h.auditService.Log(userID, "PURCHASE_TOKENS", "investment", token.InvestmentID, c.ClientIP(),
		map[string]interface{}{
			"tokenId":       token.ID,
			"amount":        token.Amount,
			"purchasePrice": token.PurchasePrice.String(),
		})

	c.JSON(http.StatusCreated, token)
}
