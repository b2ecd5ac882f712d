package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/handler"
	"github.com/biyeghor/biyeghor-backend/internal/delivery/http/middleware"
	"github.com/biyeghor/biyeghor-backend/internal/domain"
	"github.com/biyeghor/biyeghor-backend/internal/repository/memory"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/connection"
	"github.com/biyeghor/biyeghor-backend/internal/usecase/credit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asProfile stands in for the auth middleware in tests.
func asProfile(id int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ProfileIDKey, id)
		c.Next()
	}
}

func newInterestRouter(t *testing.T, actorID int, policy connection.Policy) (*gin.Engine, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	store.SeedProfile(&domain.Profile{ID: 1, UserID: 1, Name: "Alice", Gender: "female"})
	store.SeedProfile(&domain.Profile{ID: 2, UserID: 2, Name: "Bob", Gender: "male"})

	ledger := credit.NewLedgerUseCase(store)
	h := handler.NewInterestHandler(connection.NewConnectionUseCase(store, ledger, policy))

	router := gin.New()
	group := router.Group("", asProfile(actorID))
	group.POST("/interests", h.SendInterest)
	group.GET("/interests", h.ListInterests)
	group.POST("/interests/:id/accept", h.AcceptInterest)
	group.POST("/interests/:id/reject", h.RejectInterest)
	group.POST("/interests/:id/cancel", h.CancelInterest)
	return router, store
}

func sendJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSendInterestEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		router, _ := newInterestRouter(t, 1, connection.Policy{})

		rr := sendJSON(router, http.MethodPost, "/interests", handler.SendInterestRequest{ReceiverID: 2})
		assert.Equal(t, http.StatusCreated, rr.Code)

		var interest domain.Interest
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &interest))
		assert.Equal(t, domain.InterestSent, interest.Status)
		assert.Equal(t, 1, interest.SenderID)
	})

	t.Run("invalid body", func(t *testing.T) {
		router, _ := newInterestRouter(t, 1, connection.Policy{})

		rr := sendJSON(router, http.MethodPost, "/interests", map[string]any{"receiver_id": "two"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		router, _ := newInterestRouter(t, 1, connection.Policy{})

		rr := sendJSON(router, http.MethodPost, "/interests", handler.SendInterestRequest{ReceiverID: 2})
		require.Equal(t, http.StatusCreated, rr.Code)

		rr = sendJSON(router, http.MethodPost, "/interests", handler.SendInterestRequest{ReceiverID: 2})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("balance gate", func(t *testing.T) {
		router, _ := newInterestRouter(t, 1, connection.Policy{MinBalanceToSend: 10})

		rr := sendJSON(router, http.MethodPost, "/interests", handler.SendInterestRequest{ReceiverID: 2})
		assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	})

	t.Run("self", func(t *testing.T) {
		router, _ := newInterestRouter(t, 1, connection.Policy{})

		rr := sendJSON(router, http.MethodPost, "/interests", handler.SendInterestRequest{ReceiverID: 1})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestInterestTransitionEndpoints(t *testing.T) {
	seed := func(t *testing.T, store *memory.Store) *domain.Interest {
		t.Helper()
		interest := &domain.Interest{SenderID: 1, ReceiverID: 2}
		require.NoError(t, store.Interests().Create(context.Background(), interest))
		return interest
	}

	t.Run("accept as receiver", func(t *testing.T) {
		router, store := newInterestRouter(t, 2, connection.Policy{})
		seed(t, store)

		rr := sendJSON(router, http.MethodPost, "/interests/1/accept", nil)
		assert.Equal(t, http.StatusOK, rr.Code)

		var interest domain.Interest
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &interest))
		assert.Equal(t, domain.InterestAccepted, interest.Status)
	})

	t.Run("accept as sender is forbidden", func(t *testing.T) {
		router, store := newInterestRouter(t, 1, connection.Policy{})
		seed(t, store)

		rr := sendJSON(router, http.MethodPost, "/interests/1/accept", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("cancel then accept conflicts", func(t *testing.T) {
		router, store := newInterestRouter(t, 1, connection.Policy{})
		seed(t, store)

		rr := sendJSON(router, http.MethodPost, "/interests/1/cancel", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		receiverRouter := gin.New()
		// Same store, different actor.
		ledger := credit.NewLedgerUseCase(store)
		h := handler.NewInterestHandler(connection.NewConnectionUseCase(store, ledger, connection.Policy{}))
		receiverRouter.POST("/interests/:id/accept", asProfile(2), h.AcceptInterest)

		rr = sendJSON(receiverRouter, http.MethodPost, "/interests/1/accept", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		router, _ := newInterestRouter(t, 1, connection.Policy{})

		rr := sendJSON(router, http.MethodPost, "/interests/abc/accept", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing interest", func(t *testing.T) {
		router, _ := newInterestRouter(t, 1, connection.Policy{})

		rr := sendJSON(router, http.MethodPost, "/interests/7/reject", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListInterestsEndpoint(t *testing.T) {
	router, _ := newInterestRouter(t, 1, connection.Policy{})

	rr := sendJSON(router, http.MethodPost, "/interests", handler.SendInterestRequest{ReceiverID: 2})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = sendJSON(router, http.MethodGet, "/interests?box=sent", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var items []connection.InterestWithProfiles
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Bob", items[0].Receiver.Name)

	rr = sendJSON(router, http.MethodGet, "/interests?box=received", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &items))
	assert.Empty(t, items)
}
