package strapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.ContentAPIConfig{
		BaseURL:  server.URL,
		APIToken: "service-token",
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.ContentAPIConfig{}); err == nil {
		t.Fatal("expected error for missing base url")
	}
}

func TestListOrdersWalksPagination(t *testing.T) {
	pages := map[string]string{
		"1": `{
			"data": [{
				"id": 11,
				"attributes": {
					"date": "2024-03-01T10:00:00Z",
					"deliver_follow": "En cours de validation",
					"total_amount": 42,
					"order_summary": {"purchase": [
						{"quantity": 2, "product": {"id": 7, "title": "Pack Vitamine D", "pricing": "12.50", "stock": 30}}
					]},
					"users_permissions_user": {"data": {"id": 5, "attributes": {"username": "alice", "email": "alice@example.com"}}}
				}
			}],
			"meta": {"pagination": {"page": 1, "pageSize": 100, "pageCount": 2, "total": 2}}
		}`,
		"2": `{
			"data": [{
				"id": 12,
				"attributes": {
					"date": "2024-03-02T10:00:00Z",
					"deliver_follow": "Livré",
					"total_amount": "18",
					"order_summary": {"purchase": []},
					"users_permissions_user": {"data": null}
				}
			}],
			"meta": {"pagination": {"page": 2, "pageSize": 100, "pageCount": 2, "total": 2}}
		}`,
	}

	var gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		page := r.URL.Query().Get("pagination[page]")
		body, ok := pages[page]
		if !ok {
			t.Fatalf("unexpected page %q", page)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))

	orders, err := client.ListOrders(context.Background())
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders across pages, got %d", len(orders))
	}
	if gotAuth != "Bearer service-token" {
		t.Fatalf("expected service token auth, got %q", gotAuth)
	}

	first := orders[0]
	if first.ID != 11 || first.Customer.Username != "alice" {
		t.Fatalf("first order not decoded: %+v", first)
	}
	// total_amount arrives as a bare number on legacy rows.
	if first.TotalAmount != "42" {
		t.Fatalf("expected numeric total_amount coerced to string, got %q", first.TotalAmount)
	}
	if len(first.Purchase) != 1 || first.Purchase[0].Product.Stock != "30" {
		t.Fatalf("purchase line not decoded: %+v", first.Purchase)
	}
	if !first.Purchase[0].Product.Pricing.Equal(decimal.RequireFromString("12.50")) {
		t.Fatalf("unexpected pricing %s", first.Purchase[0].Product.Pricing)
	}
	if orders[1].Customer.ID != 0 {
		t.Fatalf("missing customer relation should decode to zero customer")
	}
}

func TestLoginResolvesRole(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/local":
			var creds map[string]string
			if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
				t.Fatalf("decode credentials: %v", err)
			}
			if creds["identifier"] != "labo@example.com" || creds["password"] != "hunter2" {
				t.Fatalf("credentials not forwarded: %v", creds)
			}
			_, _ = w.Write([]byte(`{"jwt": "upstream-jwt"}`))
		case "/api/users/me":
			if got := r.Header.Get("Authorization"); got != "Bearer upstream-jwt" {
				t.Fatalf("me request must use the fresh jwt, got %q", got)
			}
			if got := r.URL.Query().Get("populate"); got != "role" {
				t.Fatalf("expected role populated, got %q", got)
			}
			_, _ = w.Write([]byte(`{"id": 9, "username": "labo", "email": "labo@example.com", "role": {"id": 3, "name": "Laboratory"}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))

	jwt, user, err := client.Login(context.Background(), "labo@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if jwt != "upstream-jwt" {
		t.Fatalf("unexpected jwt %q", jwt)
	}
	if user.ID != 9 || user.RoleID != 3 {
		t.Fatalf("user not decoded: %+v", user)
	}
}

func TestUpdateOrderUsesUserToken(t *testing.T) {
	var gotAuth, gotBody string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/orders/42" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{}`))
	}))

	status := "Livré"
	err := client.UpdateOrder(context.Background(), "user-jwt", 42, OrderUpdate{Status: &status})
	if err != nil {
		t.Fatalf("update order: %v", err)
	}
	if gotAuth != "Bearer user-jwt" {
		t.Fatalf("user token must win over the service token, got %q", gotAuth)
	}
	if gotBody != `{"data":{"deliver_follow":"Livré"}}` {
		t.Fatalf("unexpected body %s", gotBody)
	}
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		code   pkgerrors.Code
	}{
		{status: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{status: http.StatusUnauthorized, code: pkgerrors.CodeUnauthorized},
		{status: http.StatusForbidden, code: pkgerrors.CodeUnauthorized},
		{status: http.StatusNotFound, code: pkgerrors.CodeNotFound},
		{status: http.StatusBadGateway, code: pkgerrors.CodeDependency},
	}

	for _, tt := range tests {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"error": "nope"}`))
		}))

		_, err := client.ListProducts(context.Background())
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != tt.code {
			t.Fatalf("status %d: expected code %s, got %v", tt.status, tt.code, err)
		}
	}
}
