package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

const (
	defaultTimeout            = 15 * time.Second
	listPageSize              = 100
	errorBodyReadLimit  int64 = 2048
	healthcheckEndpoint       = "/_health"
)

var errBaseURLRequired = errors.New("content api base url is required")

// Client wraps the Strapi-style content API that owns orders, products,
// promotions, and user credentials.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient builds a content API client from configuration.
func NewClient(cfg config.ContentAPIConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := &Client{
		baseURL:    baseURL,
		apiToken:   strings.TrimSpace(cfg.APIToken),
		httpClient: &http.Client{Timeout: timeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// Ping verifies the content API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthcheckEndpoint, nil)
	if err != nil {
		return fmt.Errorf("build healthcheck request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content api healthcheck: %w", err)
	}
	defer drainAndClose(resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("content api healthcheck returned %d", resp.StatusCode)
	}
	return nil
}

// Login authenticates credentials against the content API and returns the
// upstream JWT plus the authenticated user with their role resolved.
func (c *Client) Login(ctx context.Context, identifier, password string) (string, *AuthenticatedUser, error) {
	payload := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/local", "", nil, payload, &out); err != nil {
		return "", nil, err
	}
	if out.JWT == "" {
		return "", nil, pkgerrors.New(pkgerrors.CodeDependency, "content api returned empty jwt")
	}

	var me meResponse
	if err := c.do(ctx, http.MethodGet, "/api/users/me", out.JWT, url.Values{"populate": []string{"role"}}, nil, &me); err != nil {
		return "", nil, err
	}

	user := &AuthenticatedUser{
		ID:       me.ID,
		Username: me.Username,
		Email:    me.Email,
		RoleID:   me.Role.ID,
	}
	return out.JWT, user, nil
}

// ListOrders fetches every order with its purchase lines and customer
// populated, walking the content API's pagination.
func (c *Client) ListOrders(ctx context.Context) ([]types.Order, error) {
	var orders []types.Order
	err := c.listAll(ctx, "/api/orders", func(page int) (int, error) {
		query := listQuery(page)
		query.Set("populate", "deep")

		var envelope listEnvelope[orderAttributes]
		if err := c.do(ctx, http.MethodGet, "/api/orders", "", query, nil, &envelope); err != nil {
			return 0, err
		}
		for _, entry := range envelope.Data {
			order, err := decodeOrder(entry.ID, entry.Attributes)
			if err != nil {
				return 0, err
			}
			orders = append(orders, order)
		}
		return envelope.Meta.Pagination.PageCount, nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]types.Product, error) {
	var products []types.Product
	err := c.listAll(ctx, "/api/products", func(page int) (int, error) {
		var envelope listEnvelope[productAttributes]
		if err := c.do(ctx, http.MethodGet, "/api/products", "", listQuery(page), nil, &envelope); err != nil {
			return 0, err
		}
		for _, entry := range envelope.Data {
			products = append(products, decodeProduct(entry.ID, entry.Attributes))
		}
		return envelope.Meta.Pagination.PageCount, nil
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListPromotions fetches every promotion with its product relations.
func (c *Client) ListPromotions(ctx context.Context) ([]types.Promotion, error) {
	var promotions []types.Promotion
	err := c.listAll(ctx, "/api/promotions", func(page int) (int, error) {
		query := listQuery(page)
		query.Set("populate", "products")

		var envelope listEnvelope[promotionAttributes]
		if err := c.do(ctx, http.MethodGet, "/api/promotions", "", query, nil, &envelope); err != nil {
			return 0, err
		}
		for _, entry := range envelope.Data {
			promotions = append(promotions, decodePromotion(entry.ID, entry.Attributes))
		}
		return envelope.Meta.Pagination.PageCount, nil
	})
	if err != nil {
		return nil, err
	}
	return promotions, nil
}

// OrderUpdate carries the writable order fields.
type OrderUpdate struct {
	Status         *string `json:"deliver_follow,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
	Carrier        *string `json:"carrier,omitempty"`
}

// UpdateOrder writes delivery fields through to the content API on behalf
// of the authenticated user.
func (c *Client) UpdateOrder(ctx context.Context, userToken string, orderID int64, update OrderUpdate) error {
	path := fmt.Sprintf("/api/orders/%d", orderID)
	return c.do(ctx, http.MethodPut, path, userToken, nil, dataEnvelope[OrderUpdate]{Data: update}, nil)
}

// ProductUpdate carries the writable product fields.
type ProductUpdate struct {
	Active *bool   `json:"active,omitempty"`
	Stock  *string `json:"stock,omitempty"`
}

// UpdateProduct writes stock/availability through to the content API.
func (c *Client) UpdateProduct(ctx context.Context, userToken string, productID int64, update ProductUpdate) error {
	path := fmt.Sprintf("/api/products/%d", productID)
	return c.do(ctx, http.MethodPut, path, userToken, nil, dataEnvelope[ProductUpdate]{Data: update}, nil)
}

func listQuery(page int) url.Values {
	query := url.Values{}
	query.Set("pagination[page]", fmt.Sprintf("%d", page))
	query.Set("pagination[pageSize]", fmt.Sprintf("%d", listPageSize))
	return query
}

// listAll walks paged list endpoints until the reported page count is
// exhausted. fetch returns the total page count for the collection.
func (c *Client) listAll(ctx context.Context, path string, fetch func(page int) (int, error)) error {
	for page := 1; ; page++ {
		pageCount, err := fetch(page)
		if err != nil {
			return fmt.Errorf("listing %s page %d: %w", path, page, err)
		}
		if page >= pageCount {
			return nil
		}
	}
}

func (c *Client) do(ctx context.Context, method, path, userToken string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.requestToken(userToken); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "content api unreachable")
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode content api response")
	}
	return nil
}

// requestToken prefers a per-user JWT over the service-level API token.
func (c *Client) requestToken(userToken string) string {
	if trimmed := strings.TrimSpace(userToken); trimmed != "" {
		return trimmed
	}
	return c.apiToken
}

func (c *Client) statusError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	message := fmt.Sprintf("content api returned %d", resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(string(snippet))
	case http.StatusUnauthorized, http.StatusForbidden:
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "content api rejected credentials")
	case http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "content api resource not found")
	default:
		return pkgerrors.New(pkgerrors.CodeDependency, message).WithDetails(string(snippet))
	}
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, errorBodyReadLimit))
	_ = body.Close()
}
