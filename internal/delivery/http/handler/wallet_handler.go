package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/middleware"
	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/credit"
)

type WalletHandler struct {
	ledgerUseCase *credit.LedgerUseCase
}

func NewWalletHandler(ledgerUseCase *credit.LedgerUseCase) *WalletHandler {
	return &WalletHandler{ledgerUseCase: ledgerUseCase}
}

// WalletResponse represents the caller's wallet with recent transactions
type WalletResponse struct {
	Balance      int                         `json:"balance"`
	Transactions []*domain.CreditTransaction `json:"transactions"`
}

// GetWallet handles GET /wallet
// @Summary Get wallet
// @Description Returns the caller's credit balance and transaction history
// @Tags wallet
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} WalletResponse
// @Router /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	profileID := c.GetInt(middleware.ProfileIDKey)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	wallet, err := h.ledgerUseCase.Balance(c.Request.Context(), profileID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	transactions, err := h.ledgerUseCase.History(c.Request.Context(), profileID, limit, offset)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if transactions == nil {
		transactions = []*domain.CreditTransaction{}
	}

	c.JSON(http.StatusOK, WalletResponse{Balance: wallet.Balance, Transactions: transactions})
}

// TopUpRequest represents a credit purchase
type TopUpRequest struct {
	Amount    int    `json:"amount" binding:"required,min=1"`
	Reference string `json:"reference"`
}

// TopUp handles POST /wallet/topups
// @Summary Top up wallet
// @Description Credits purchased credits to the caller's wallet. Payment capture happens upstream; this endpoint records the grant.
// @Tags wallet
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body TopUpRequest true "Amount and payment reference"
// @Success 200 {object} domain.CreditWallet
// @Failure 400 {object} ErrorResponse
// @Router /wallet/topups [post]
func (h *WalletHandler) TopUp(c *gin.Context) {
	profileID := c.GetInt(middleware.ProfileIDKey)

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	wallet, err := h.ledgerUseCase.Credit(c.Request.Context(), profileID, req.Amount, domain.ReasonPurchase, req.Reference)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, wallet)
}
