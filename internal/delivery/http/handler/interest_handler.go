package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/middleware"
	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/connection"
)

type InterestHandler struct {
	connectionUseCase *connection.ConnectionUseCase
}

func NewInterestHandler(connectionUseCase *connection.ConnectionUseCase) *InterestHandler {
	return &InterestHandler{
		connectionUseCase: connectionUseCase,
	}
}

// SendInterestRequest represents an interest creation request
type SendInterestRequest struct {
	ReceiverID int `json:"receiver_id" binding:"required,min=1"`
}

// SendInterest handles POST /interests
// @Summary Send interest
// @Description Send a connection request to another profile
// @Tags interests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SendInterestRequest true "Receiver profile id"
// @Success 201 {object} domain.Interest
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /interests [post]
func (h *InterestHandler) SendInterest(c *gin.Context) {
	profileID := c.GetInt(middleware.ProfileIDKey)

	var req SendInterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	interest, err := h.connectionUseCase.SendInterest(c.Request.Context(), profileID, req.ReceiverID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interest)
}

// ListInterests handles GET /interests
// @Summary List interests
// @Description List the caller's sent or received interests
// @Tags interests
// @Security BearerAuth
// @Produce json
// @Param box query string false "sent or received" default(sent)
// @Success 200 {array} connection.InterestWithProfiles
// @Router /interests [get]
func (h *InterestHandler) ListInterests(c *gin.Context) {
	profileID := c.GetInt(middleware.ProfileIDKey)

	box := c.DefaultQuery("box", "sent")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	interests, err := h.connectionUseCase.List(c.Request.Context(), profileID, box, limit, offset)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, interests)
}

// AcceptInterest handles POST /interests/:id/accept
// @Summary Accept interest
// @Tags interests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Interest ID"
// @Success 200 {object} domain.Interest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /interests/{id}/accept [post]
func (h *InterestHandler) AcceptInterest(c *gin.Context) {
	h.respond(c, h.connectionUseCase.Accept)
}

// RejectInterest handles POST /interests/:id/reject
// @Summary Reject interest
// @Tags interests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Interest ID"
// @Success 200 {object} domain.Interest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /interests/{id}/reject [post]
func (h *InterestHandler) RejectInterest(c *gin.Context) {
	h.respond(c, h.connectionUseCase.Reject)
}

// CancelInterest handles POST /interests/:id/cancel
// @Summary Cancel interest
// @Tags interests
// @Security BearerAuth
// @Produce json
// @Param id path int true "Interest ID"
// @Success 200 {object} domain.Interest
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /interests/{id}/cancel [post]
func (h *InterestHandler) CancelInterest(c *gin.Context) {
	h.respond(c, h.connectionUseCase.Cancel)
}

func (h *InterestHandler) respond(c *gin.Context, transition func(ctx context.Context, interestID, actorID int) (*domain.Interest, error)) {
	profileID := c.GetInt(middleware.ProfileIDKey)

	interestID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid interest id"})
		return
	}

	interest, err := transition(c.Request.Context(), interestID, profileID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, interest)
}
