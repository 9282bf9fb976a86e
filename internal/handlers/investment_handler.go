package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/models"
	"tokenvest/internal/pagination"
	"tokenvest/internal/repository"
	"tokenvest/internal/services"
)

// InvestmentHandler serves the investment catalogue and its distributions.
type InvestmentHandler struct {
	ledger        services.InventoryLedger
	distributions services.DistributionServicer
	auditService  services.AuditServicer
}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler(
	ledger services.InventoryLedger,
	distributions services.DistributionServicer,
	auditService services.AuditServicer,
) *InvestmentHandler {
	return &InvestmentHandler{ledger: ledger, distributions: distributions, auditService: auditService}
}

// ListInvestmentsQuery holds the optional catalogue filters.
type ListInvestmentsQuery struct {
	Type     string `form:"type" binding:"omitempty,investment_type"`
	Category string `form:"category" binding:"omitempty,investment_category"`
	MinROI   string `form:"minRoi"`
	Active   string `form:"active" binding:"omitempty,oneof=true false"`
	pagination.PageRequest
}

// CreateInvestmentRequest represents the request body for listing a new investment
type CreateInvestmentRequest struct {
	Name            string                `json:"name" binding:"required,max=255"`
	Description     string                `json:"description" binding:"max=5000"`
	Type            models.InvestmentType `json:"type" binding:"required,investment_type"`
	Category        string                `json:"category" binding:"required,investment_category"`
	Location        string                `json:"location" binding:"max=255"`
	ExpectedROI     decimal.Decimal       `json:"expectedRoi" binding:"decimal_nonnegative"`
	PricePerToken   decimal.Decimal       `json:"pricePerToken" binding:"decimal_positive"`
	TotalTokens     int64                 `json:"totalTokens" binding:"required,gt=0"`
	AvailableTokens *int64                `json:"availableTokens" binding:"omitempty,gte=0"`
	ImageURL        string                `json:"imageUrl" binding:"omitempty,url"`
	Currency        string                `json:"currency" binding:"omitempty,iso4217"`
	IsActive        *bool                 `json:"isActive"`
}

// UpdateInvestmentRequest is a partial update; omitted fields keep their value.
type UpdateInvestmentRequest struct {
	Name            *string                `json:"name" binding:"omitempty,min=1,max=255"`
	Description     *string                `json:"description" binding:"omitempty,max=5000"`
	Type            *models.InvestmentType `json:"type" binding:"omitempty,investment_type"`
	Category        *string                `json:"category" binding:"omitempty,investment_category"`
	Location        *string                `json:"location" binding:"omitempty,max=255"`
	ExpectedROI     *decimal.Decimal       `json:"expectedRoi" binding:"omitempty,decimal_nonnegative"`
	PricePerToken   *decimal.Decimal       `json:"pricePerToken" binding:"omitempty,decimal_positive"`
	TotalTokens     *int64                 `json:"totalTokens"`
	AvailableTokens *int64                 `json:"availableTokens" binding:"omitempty,gte=0"`
	ImageURL        *string                `json:"imageUrl" binding:"omitempty,url"`
	Currency        *string                `json:"currency" binding:"omitempty,iso4217"`
	IsActive        *bool                  `json:"isActive"`
}

// RecordDistributionRequest represents the request body for a payout.
type RecordDistributionRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"decimal_positive"`
	DistributionDate *time.Time      `json:"distributionDate"`
}

func (q ListInvestmentsQuery) filter() (repository.InvestmentFilter, error) {
	f := repository.InvestmentFilter{
		Type:     q.Type,
		Category: q.Category,
		Page:     q.PageRequest,
	}
	if q.MinROI != "" {
		roi, err := decimal.NewFromString(q.MinROI)
		if err != nil {
			return f, apperrors.WithMessage(apperrors.ErrInvalidInput, "minRoi must be a number")
		}
		f.MinROI = &roi
	}
	if q.Active != "" {
		active, _ := strconv.ParseBool(q.Active)
		f.Active = &active
	}
	f.Page.Defaults()
	return f, nil
}

// ListInvestments lists the catalogue newest first
// @Summary     List investments
// @Tags        investments
// @Produce     json
// @Param       type     query string false "real_estate or business"
// @Param       category query string false "Category within the type"
// @Param       minRoi   query number false "Minimum expected ROI"
// @Param       active   query bool   false "Only active or inactive listings"
// @Param       page     query int    false "Page number"
// @Param       pageSize query int    false "Page size (max 100)"
// @Success     200 {array}  models.Investment
// @Header      200 {integer} X-Total-Count "Rows matching the filter"
// @Failure     400 {object} ErrorResponse
// @Router      /investments [get]
func (h *InvestmentHandler) ListInvestments(c *gin.Context) {
	var q ListInvestmentsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	filter, err := q.filter()
	if err != nil {
		respondWithError(c, err)
		return
	}

	investments, total, err := h.ledger.ListInvestments(c.Request.Context(), filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, investments)
}

// GetInvestment returns one investment
// @Summary     Get investment
// @Tags        investments
// @Produce     json
// @Param       id path string true "Investment ID"
// @Success     200 {object} models.Investment
// @Failure     404 {object} ErrorResponse
// @Router      /investments/{id} [get]
func (h *InvestmentHandler) GetInvestment(c *gin.Context) {
	id, err := parsePathID(c, "id", apperrors.ErrInvestmentNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investment, err := h.ledger.GetInvestment(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, investment)
}

// CreateInvestment lists a new investment
// @Summary     Create investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateInvestmentRequest true "Investment"
// @Success     201 {object} models.Investment
// @Failure     400 {object} ErrorResponse
// @Failure     403 {object} ErrorResponse
// @Router      /investments [post]
func (h *InvestmentHandler) CreateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.ledger.CreateInvestment(c.Request.Context(), services.InvestmentInput{
		Name:            req.Name,
		Description:     req.Description,
		Type:            req.Type,
		Category:        req.Category,
		Location:        req.Location,
		ExpectedROI:     req.ExpectedROI,
		PricePerToken:   req.PricePerToken,
		TotalTokens:     req.TotalTokens,
		AvailableTokens: req.AvailableTokens,
		ImageURL:        req.ImageURL,
		Currency:        req.Currency,
		IsActive:        req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_INVESTMENT", "investment", investment.ID, c.ClientIP(),
		map[string]interface{}{
			"name":          investment.Name,
			"totalTokens":   investment.TotalTokens,
			"pricePerToken": investment.PricePerToken.String(),
		})

	c.JSON(http.StatusCreated, investment)
}

// UpdateInvestment applies a partial update
// @Summary     Update investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Investment ID"
// @Param       request body UpdateInvestmentRequest true "Fields to change"
// @Success     200 {object} models.Investment
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /investments/{id} [put]
func (h *InvestmentHandler) UpdateInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id", apperrors.ErrInvestmentNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investment, err := h.ledger.UpdateInvestment(c.Request.Context(), id, services.InvestmentPatch{
		Name:            req.Name,
		Description:     req.Description,
		Type:            req.Type,
		Category:        req.Category,
		Location:        req.Location,
		ExpectedROI:     req.ExpectedROI,
		PricePerToken:   req.PricePerToken,
		TotalTokens:     req.TotalTokens,
		AvailableTokens: req.AvailableTokens,
		ImageURL:        req.ImageURL,
		Currency:        req.Currency,
		IsActive:        req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_INVESTMENT", "investment", id, c.ClientIP(), changedFields(req))

	c.JSON(http.StatusOK, investment)
}

// DeleteInvestment removes an investment that has no purchase records
// @Summary     Delete investment
// @Tags        investments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Investment ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse
// @Failure     409 {object} ErrorResponse "Investment has purchases"
// @Router      /investments/{id} [delete]
func (h *InvestmentHandler) DeleteInvestment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id", apperrors.ErrInvestmentNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.ledger.DeleteInvestment(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_INVESTMENT", "investment", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Investment deleted successfully", ID: id})
}

// ListDistributions returns the payouts of an investment, latest first
// @Summary     List distributions
// @Tags        distributions
// @Produce     json
// @Param       id path string true "Investment ID"
// @Success     200 {array}  models.Distribution
// @Failure     404 {object} ErrorResponse
// @Router      /investments/{id}/distributions [get]
func (h *InvestmentHandler) ListDistributions(c *gin.Context) {
	id, err := parsePathID(c, "id", apperrors.ErrInvestmentNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	distributions, err := h.distributions.ListDistributions(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, distributions)
}

// RecordDistribution records a payout
// @Summary     Record distribution
// @Tags        distributions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                    true "Investment ID"
// @Param       request body RecordDistributionRequest true "Payout"
// @Success     201 {object} models.Distribution
// @Failure     400 {object} ErrorResponse
// @Failure     404 {object} ErrorResponse
// @Router      /investments/{id}/distributions [post]
func (h *InvestmentHandler) RecordDistribution(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id", apperrors.ErrInvestmentNotFound)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date time.Time
	if req.DistributionDate != nil {
		date = *req.DistributionDate
	}

	distribution, err := h.distributions.RecordDistribution(c.Request.Context(), id, req.Amount, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RECORD_DISTRIBUTION", "investment", id, c.ClientIP(),
		map[string]interface{}{"distributionId": distribution.ID, "amount": distribution.Amount.String()})

	c.JSON(http.StatusCreated, distribution)
}

// changedFields lists the fields an update touched for the audit trail.
func changedFields(req UpdateInvestmentRequest) map[string]interface{} {
	changes := map[string]interface{}{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Type != nil {
		changes["type"] = *req.Type
	}
	if req.Category != nil {
		changes["category"] = *req.Category
	}
	if req.PricePerToken != nil {
		changes["pricePerToken"] = req.PricePerToken.String()
	}
	if req.ExpectedROI != nil {
		changes["expectedRoi"] = req.ExpectedROI.String()
	}
	if req.AvailableTokens != nil {
		changes["availableTokens"] = *req.AvailableTokens
	}
	if req.IsActive != nil {
		changes["isActive"] = *req.IsActive
	}
	return changes
}
