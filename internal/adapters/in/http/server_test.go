package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpapi "carveyor/internal/adapters/in/http"
	"carveyor/internal/core/application/usecases/commands"
	"carveyor/internal/core/application/usecases/queries"
	"carveyor/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// newTestServer wires a server with zero-value handlers. Requests in these
// tests are rejected during binding or validation, before any handler runs.
func newTestServer() *echo.Echo {
	server := httpapi.NewServer(
		commands.CreateOrderCommandHandler{},
		commands.AssignActorCommandHandler{},
		commands.StartWorkCommandHandler{},
		commands.RecordEvaluationArtifactCommandHandler{},
		commands.FinishEvaluationCommandHandler{},
		commands.DecidePurchaseCommandHandler{},
		commands.HandoverDeliveryCommandHandler{},
		commands.DepartDeliveryCommandHandler{},
		commands.ArriveDeliveryCommandHandler{},
		commands.ConfirmReceiptCommandHandler{},
		commands.CancelOrderCommandHandler{},
		commands.AddAdHocCostCommandHandler{},
		commands.DepositCommandHandler{},
		commands.RequestWithdrawalCommandHandler{},
		queries.GetWaitingOrdersQueryHandler{},
		queries.GetBalanceQueryHandler{},
		queries.GetLedgerQueryHandler{},
		queries.GetMonthlySettlementsQueryHandler{},
	)

	e := echo.New()
	server.RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer_RejectsMalformedRequests(t *testing.T) {
	e := newTestServer()
	orderID := kernel.NewUUID().String()
	actorID := kernel.NewUUID().String()

	t.Run("malformed body", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders/"+orderID+"/assignment", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing actor id", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders/"+orderID+"/work", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed order id in path", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders/not-a-uuid/assignment",
			`{"actor_id":"`+actorID+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown order kind", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders", `{
			"client_id": "`+actorID+`",
			"kind": "Teleportation",
			"source": {"road": "1 Pickup Rd"},
			"destination": {"road": "2 Dropoff Ave"}
		}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("order without destination", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders", `{
			"client_id": "`+actorID+`",
			"kind": "DeliveryOnly",
			"source": {"road": "1 Pickup Rd"},
			"destination": {"road": ""}
		}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown cost phase", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders/"+orderID+"/costs",
			`{"actor_id":"`+actorID+`","name":"fuel","amount":5000,"phase":"Parking"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-positive deposit", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/actors/"+actorID+"/deposits",
			`{"amount":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("purchase decision without verdict", func(t *testing.T) {
		rec := doJSON(e, http.MethodPost, "/api/v1/orders/"+orderID+"/purchase-decision",
			`{"client_id":"`+actorID+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ledger window without bounds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/actors/"+actorID+"/ledger", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("statement with impossible month", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/actors/"+actorID+"/settlements/2025/13", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
