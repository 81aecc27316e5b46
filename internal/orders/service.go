package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/pagination"
	"github.com/lucasmoreno/pharmadash-backend/pkg/strapi"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

type contentOrders interface {
	ListOrders(ctx context.Context) ([]types.Order, error)
	UpdateOrder(ctx context.Context, userToken string, orderID int64, update strapi.OrderUpdate) error
}

// ListInput filters the order table. Search matches the customer's email or
// username, case-insensitively.
type ListInput struct {
	Status string
	Search string
	Params pagination.Params
}

// ListResult is one page of orders, newest first.
type ListResult struct {
	Orders []types.Order   `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

// UpdateInput carries the delivery fields a laboratory operator may change.
type UpdateInput struct {
	Status         *string `json:"status"`
	TrackingNumber *string `json:"tracking_number"`
	Carrier        *string `json:"carrier"`
}

// Service exposes the order management surface.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Update(ctx context.Context, contentToken string, orderID int64, input UpdateInput) error
}

type service struct {
	content contentOrders
}

// NewService builds an order service over the content API.
func NewService(content contentOrders) (Service, error) {
	if content == nil {
		return nil, fmt.Errorf("content client required")
	}
	return &service{content: content}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	status := enums.OrderStatus(strings.TrimSpace(input.Status))
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": input.Status})
	}

	orders, err := s.content.ListOrders(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(input.Search))
	filtered := make([]types.Order, 0, len(orders))
	for _, order := range orders {
		if status != "" && order.Status != status {
			continue
		}
		if search != "" && !matchesCustomer(order.Customer, search) {
			continue
		}
		filtered = append(filtered, order)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	start, end, meta := input.Params.Slice(len(filtered))
	return &ListResult{
		Orders: filtered[start:end],
		Meta:   meta,
	}, nil
}

func (s *service) Update(ctx context.Context, contentToken string, orderID int64, input UpdateInput) error {
	if strings.TrimSpace(contentToken) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing content api token")
	}
	if orderID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	if input.Status == nil && input.TrackingNumber == nil && input.Carrier == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "no order fields to update")
	}
	if input.Status != nil && !enums.OrderStatus(*input.Status).IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": *input.Status})
	}

	update := strapi.OrderUpdate{
		Status:         input.Status,
		TrackingNumber: input.TrackingNumber,
		Carrier:        input.Carrier,
	}
	if err := s.content.UpdateOrder(ctx, contentToken, orderID, update); err != nil {
		return err
	}
	return nil
}

func matchesCustomer(customer types.Customer, search string) bool {
	return strings.Contains(strings.ToLower(customer.Email), search) ||
		strings.Contains(strings.ToLower(customer.Username), search)
}
