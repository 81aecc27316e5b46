package strapi

import (
	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

// decodeOrder maps a content-API order onto the domain type. Unknown status
// strings are carried through verbatim rather than rejected; the core never
// throws on input shape, and status is display data for most consumers.
func decodeOrder(id int64, attrs orderAttributes) (types.Order, error) {
	order := types.Order{
		ID:             id,
		Date:           attrs.Date,
		Status:         enums.OrderStatus(attrs.DeliverFollow),
		TotalAmount:    string(attrs.TotalAmount),
		TrackingNumber: attrs.TrackingNumber,
		Carrier:        attrs.Carrier,
	}

	if attrs.Shipping != nil {
		order.Shipping = &types.ShippingAddress{
			Address: attrs.Shipping.Address,
			Zip:     attrs.Shipping.Zip,
			City:    attrs.Shipping.City,
			Country: attrs.Shipping.Country,
		}
	}

	order.Purchase = make([]types.PurchaseItem, 0, len(attrs.OrderSummary.Purchase))
	for _, line := range attrs.OrderSummary.Purchase {
		order.Purchase = append(order.Purchase, types.PurchaseItem{
			Quantity: line.Quantity,
			Product: types.ProductSnapshot{
				ID:      line.Product.ID,
				Title:   line.Product.Title,
				Pricing: line.Product.Pricing,
				Stock:   string(line.Product.Stock),
			},
		})
	}

	if rel := attrs.User.Data; rel != nil {
		order.Customer = types.Customer{
			ID:        rel.ID,
			Username:  rel.Attributes.Username,
			Email:     rel.Attributes.Email,
			FirstName: rel.Attributes.FirstName,
			LastName:  rel.Attributes.LastName,
		}
	}

	return order, nil
}

func decodeProduct(id int64, attrs productAttributes) types.Product {
	return types.Product{
		ID:            id,
		Title:         attrs.Title,
		Stock:         string(attrs.Stock),
		Pricing:       attrs.Pricing,
		OriginalPrice: attrs.OriginalPrice,
		Active:        attrs.Active,
	}
}

func decodePromotion(id int64, attrs promotionAttributes) types.Promotion {
	productIDs := make([]int64, 0, len(attrs.Products.Data))
	for _, rel := range attrs.Products.Data {
		productIDs = append(productIDs, rel.ID)
	}
	return types.Promotion{
		ID:         id,
		Start:      attrs.Debut,
		End:        attrs.Fin,
		Amount:     attrs.Amount,
		Percentage: attrs.Percentage,
		Active:     attrs.Active,
		ProductIDs: productIDs,
	}
}
