package products

import (
	"context"
	"testing"

	pkgerrors "github.com/lucasmoreno/pharmadash-backend/pkg/errors"
	"github.com/lucasmoreno/pharmadash-backend/pkg/strapi"
)

type fakeContentProducts struct {
	gotToken     string
	gotProductID int64
	gotUpdate    strapi.ProductUpdate
	err          error
}

func (f *fakeContentProducts) UpdateProduct(_ context.Context, userToken string, productID int64, update strapi.ProductUpdate) error {
	f.gotToken = userToken
	f.gotProductID = productID
	f.gotUpdate = update
	return f.err
}

func TestUpdateAvailabilityPassesThrough(t *testing.T) {
	t.Parallel()
	content := &fakeContentProducts{}
	svc, err := NewService(content)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	active := false
	stock := "12"
	err = svc.UpdateAvailability(context.Background(), "user-jwt", 10, AvailabilityInput{
		Active: &active,
		Stock:  &stock,
	})
	if err != nil {
		t.Fatalf("UpdateAvailability: %v", err)
	}
	if content.gotToken != "user-jwt" || content.gotProductID != 10 {
		t.Fatalf("wrong passthrough call: token=%q id=%d", content.gotToken, content.gotProductID)
	}
	if content.gotUpdate.Active == nil || *content.gotUpdate.Active {
		t.Fatalf("active not forwarded: %+v", content.gotUpdate)
	}
	if content.gotUpdate.Stock == nil || *content.gotUpdate.Stock != "12" {
		t.Fatalf("stock not forwarded: %+v", content.gotUpdate)
	}
}

func TestUpdateAvailabilityValidation(t *testing.T) {
	t.Parallel()
	svc, err := NewService(&fakeContentProducts{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	if err := svc.UpdateAvailability(ctx, "", 10, AvailabilityInput{}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := svc.UpdateAvailability(ctx, "jwt", 10, AvailabilityInput{}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for empty update, got %v", err)
	}
	bad := "a few"
	if err := svc.UpdateAvailability(ctx, "jwt", 10, AvailabilityInput{Stock: &bad}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for non-numeric stock, got %v", err)
	}
	negative := "-1"
	if err := svc.UpdateAvailability(ctx, "jwt", 10, AvailabilityInput{Stock: &negative}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for negative stock, got %v", err)
	}
}
