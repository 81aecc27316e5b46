package products

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/strapi"
)

type contentProducts interface {
	UpdateProduct(ctx context.Context, userToken string, productID int64, update strapi.ProductUpdate) error
}

// AvailabilityInput carries the stock-management fields a laboratory operator
// may change. Stock stays string-typed end to end because the content API
// stores it that way.
type AvailabilityInput struct {
	Active *bool   `json:"active"`
	Stock  *string `json:"stock"`
}

// Service exposes catalog write operations.
type Service interface {
	UpdateAvailability(ctx context.Context, contentToken string, productID int64, input AvailabilityInput) error
}

type service struct {
	content contentProducts
}

// NewService builds a product service over the content API.
func NewService(content contentProducts) (Service, error) {
	if content == nil {
		return nil, fmt.Errorf("content client required")
	}
	return &service{content: content}, nil
}

func (s *service) UpdateAvailability(ctx context.Context, contentToken string, productID int64, input AvailabilityInput) error {
	if strings.TrimSpace(contentToken) == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing content api token")
	}
	if productID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	if input.Active == nil && input.Stock == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "no product fields to update")
	}
	if input.Stock != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*input.Stock))
		if err != nil || n < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "stock must be a non-negative integer").
				WithDetails(map[string]any{"stock": *input.Stock})
		}
	}

	update := strapi.ProductUpdate{
		Active: input.Active,
		Stock:  input.Stock,
	}
	return s.content.UpdateProduct(ctx, contentToken, productID, update)
}
