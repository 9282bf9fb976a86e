package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tokenvest/internal/services"
)

// PortfolioHandler serves the authenticated user's holdings.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// GetPortfolio returns every purchase record of the user
// @Summary     Portfolio
// @Description Purchase records of the authenticated user joined with their investment, newest first.
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.Token
// @Failure     401 {object} ErrorResponse
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	records, err := h.portfolioService.PortfolioOf(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetSummary returns the aggregated portfolio
// @Summary     Portfolio summary
// @Description Cost basis, market value, and per-investment holdings.
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.PortfolioSummary
// @Failure     401 {object} ErrorResponse
// @Router      /portfolio/summary [get]
func (h *PortfolioHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.portfolioService.Summary(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
