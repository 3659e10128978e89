package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/order-svc/internal/service/models/order"
	"github.com/greenbasket/order-svc/internal/service/models/orderitem"
)

type fakeOrderService struct {
	orders map[int64]order.Order
	nextID int64
	err    error
}

func newFakeOrderService() *fakeOrderService {
	return &fakeOrderService{orders: map[int64]order.Order{}}
}

func (s *fakeOrderService) List(_ context.Context) ([]order.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make([]order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		result = append(result, o)
	}
	return result, nil
}

func (s *fakeOrderService) Create(_ context.Context, o order.Order) (order.Order, error) {
	if s.err != nil {
		return order.Order{}, s.err
	}
	s.nextID++
	o.ID = s.nextID
	o.Timestamp = time.Now()
	for i := range o.Items {
		o.Items[i].ID = int64(i + 1)
		o.Items[i].OrderID = o.ID
	}
	s.orders[o.ID] = o
	return o, nil
}

func (s *fakeOrderService) Get(_ context.Context, id int64) (*order.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *fakeOrderService) Update(_ context.Context, o order.Order) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if _, ok := s.orders[o.ID]; !ok {
		return 0, nil
	}
	s.orders[o.ID] = o
	return 1, nil
}

func (s *fakeOrderService) Delete(_ context.Context, id int64) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	if _, ok := s.orders[id]; !ok {
		return 0, nil
	}
	delete(s.orders, id)
	return 1, nil
}

type fakePromptService struct {
	hasKey bool
	text   string
	err    error
}

func (s *fakePromptService) Answer(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func (s *fakePromptService) HasAPIKey() bool {
	return s.hasKey
}

func newTestTransport(orderSvc orderService, promptSvc promptService) *HTTPTransport {
	h := NewHTTPTransport(orderSvc, promptSvc)
	h.RegisterRoutes()
	return h
}

func doJSON(t *testing.T, h *HTTPTransport, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateOrderEndpoint(t *testing.T) {
	h := newTestTransport(newFakeOrderService(), &fakePromptService{})

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]any{
		"customerName": "Alice",
		"items": []map[string]any{
			{"itemName": "Mug", "unitPrice": 10, "quantity": 2, "carbonSaved": 1.5},
		},
		"totalPrice":       20,
		"totalCarbonSaved": 1.5,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string      `json:"message"`
		Data    order.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Message)
	assert.Positive(t, resp.Data.ID)
	require.Len(t, resp.Data.Items, 1)
	assert.Equal(t, "Mug", resp.Data.Items[0].ItemName)
}

func TestCreateOrderRejectsMissingCustomerName(t *testing.T) {
	h := newTestTransport(newFakeOrderService(), &fakePromptService{})

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]any{
		"items": []map[string]any{},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "error")
}

func TestCreateOrderRejectsMalformedBody(t *testing.T) {
	h := newTestTransport(newFakeOrderService(), &fakePromptService{})

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderStorageErrorIsClientError(t *testing.T) {
	svc := newFakeOrderService()
	svc.err = errors.New("CHECK constraint failed")
	h := newTestTransport(svc, &fakePromptService{})

	rec := doJSON(t, h, http.MethodPost, "/api/orders", map[string]any{
		"customerName": "Alice",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CHECK constraint failed", resp["error"])
}

func TestListOrdersEndpoint(t *testing.T) {
	svc := newFakeOrderService()
	_, err := svc.Create(context.Background(), order.Order{CustomerName: "Alice"})
	require.NoError(t, err)
	h := newTestTransport(svc, &fakePromptService{})

	rec := doJSON(t, h, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string        `json:"message"`
		Data    []order.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Message)
	require.Len(t, resp.Data, 1)
}

func TestGetOrderEndpoint(t *testing.T) {
	svc := newFakeOrderService()
	created, err := svc.Create(context.Background(), order.Order{
		CustomerName: "Alice",
		Items:        []orderitem.OrderItem{{ItemName: "Mug", Quantity: 1}},
	})
	require.NoError(t, err)
	h := newTestTransport(svc, &fakePromptService{})

	rec := doJSON(t, h, http.MethodGet, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string       `json:"message"`
		Data    *order.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, created.ID, resp.Data.ID)
}

func TestGetMissingOrderReturnsNullData(t *testing.T) {
	h := newTestTransport(newFakeOrderService(), &fakePromptService{})

	rec := doJSON(t, h, http.MethodGet, "/api/orders/999", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.JSONEq(t, `"success"`, string(resp["message"]))
	assert.JSONEq(t, `null`, string(resp["data"]))
}

func TestGetOrderRejectsBadID(t *testing.T) {
	h := newTestTransport(newFakeOrderService(), &fakePromptService{})

	rec := doJSON(t, h, http.MethodGet, "/api/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateOrderEndpoint(t *testing.T) {
	svc := newFakeOrderService()
	_, err := svc.Create(context.Background(), order.Order{CustomerName: "Alice"})
	require.NoError(t, err)
	h := newTestTransport(svc, &fakePromptService{})

	rec := doJSON(t, h, http.MethodPut, "/api/orders/1", map[string]any{
		"customerName": "Alice Smith",
		"items":        []map[string]any{},
		"totalPrice":   0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Changes int64  `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Message)
	assert.Equal(t, int64(1), resp.Changes)
}

func TestDeleteOrderEndpoint(t *testing.T) {
	svc := newFakeOrderService()
	_, err := svc.Create(context.Background(), order.Order{CustomerName: "Alice"})
	require.NoError(t, err)
	h := newTestTransport(svc, &fakePromptService{})

	rec := doJSON(t, h, http.MethodDelete, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Changes int64  `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "deleted", resp.Message)
	assert.Equal(t, int64(1), resp.Changes)

	rec = doJSON(t, h, http.MethodGet, "/api/orders/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var getResp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &getResp))
	assert.JSONEq(t, `null`, string(getResp["data"]))
}

func TestPromptEndpoint(t *testing.T) {
	h := newTestTransport(newFakeOrderService(), &fakePromptService{text: "2.75"})

	rec := doJSON(t, h, http.MethodPost, "/api/prompts", map[string]string{
		"prompt": "Estimate the carbon footprint of a mug",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2.75", resp["response"])
}

func TestPromptEndpointProviderFailureKeepsFallbackText(t *testing.T) {
	h := newTestTransport(newFakeOrderService(), &fakePromptService{
		text: "Sorry, I am unable to answer that right now. Please try again later.",
		err:  errors.New("provider down"),
	})

	rec := doJSON(t, h, http.MethodPost, "/api/prompts", map[string]string{"prompt": "anything"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["response"])
}

func TestPromptEndpointRejectsEmptyPrompt(t *testing.T) {
	h := newTestTransport(newFakeOrderService(), &fakePromptService{})

	rec := doJSON(t, h, http.MethodPost, "/api/prompts", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	for _, hasKey := range []bool{true, false} {
		h := newTestTransport(newFakeOrderService(), &fakePromptService{hasKey: hasKey})

		rec := doJSON(t, h, http.MethodGet, "/api/health", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status    string `json:"status"`
			Timestamp string `json:"timestamp"`
			HasAPIKey bool   `json:"hasApiKey"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Status)
		assert.Equal(t, hasKey, resp.HasAPIKey)

		_, err := time.Parse(time.RFC3339, resp.Timestamp)
		assert.NoError(t, err)
	}
}
