package analytics

import (
	"github.com/sereneleaf/storefront-backend/internal/cart"
	"github.com/sereneleaf/storefront-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// ProductPayload describes a single catalog product in a track event.
type ProductPayload struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	Variant   string          `json:"variant"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	URL       string          `json:"url"`
	ImageURL  string          `json:"image_url"`
	Position  int             `json:"position,omitempty"`
}

// CartProductPayload is a product payload carrying a cart quantity.
type CartProductPayload struct {
	ProductPayload
	Quantity int `json:"quantity"`
}

func ProductPayloadFrom(p *catalog.Product) ProductPayload {
	return ProductPayload{
		ProductID: p.ProductID,
		SKU:       p.SKU,
		Name:      p.Name,
		Brand:     p.Brand,
		Category:  p.Category.String(),
		Variant:   p.Variant,
		Price:     p.Price,
		Currency:  p.Currency,
		URL:       p.URL,
		ImageURL:  p.ImageURL,
	}
}

func CartProductPayloadFrom(item cart.Item, currency string) CartProductPayload {
	return CartProductPayload{
		ProductPayload: ProductPayload{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Name:      item.Name,
			Brand:     item.Brand,
			Category:  item.Category,
			Variant:   item.Variant,
			Price:     item.Price,
			Currency:  currency,
			URL:       item.URL,
			ImageURL:  item.ImageURL,
		},
		Quantity: item.Quantity,
	}
}

func CartProductsFrom(items []cart.Item, currency string) []CartProductPayload {
	products := make([]CartProductPayload, 0, len(items))
	for _, item := range items {
		products = append(products, CartProductPayloadFrom(item, currency))
	}
	return products
}

// ProductListPayload accompanies Product List Viewed and Products Searched.
type ProductListPayload struct {
	ListID   string           `json:"list_id"`
	Category string           `json:"category,omitempty"`
	Products []ProductPayload `json:"products"`
}

type SearchPayload struct {
	Query       string `json:"query"`
	ResultCount int    `json:"result_count"`
}

type CartViewedPayload struct {
	CartID   string               `json:"cart_id"`
	Products []CartProductPayload `json:"products"`
	Subtotal decimal.Decimal      `json:"subtotal"`
	Currency string               `json:"currency"`
}

type CouponPayload struct {
	CartID     string          `json:"cart_id"`
	CouponID   string          `json:"coupon_id"`
	CouponName string          `json:"coupon_name,omitempty"`
	Discount   decimal.Decimal `json:"discount"`
	Reason     string          `json:"reason,omitempty"`
}

type CheckoutStartedPayload struct {
	OrderID  string               `json:"order_id"`
	Value    decimal.Decimal      `json:"value"`
	Currency string               `json:"currency"`
	Products []CartProductPayload `json:"products"`
	Coupon   string               `json:"coupon,omitempty"`
}

type CheckoutStepPayload struct {
	CheckoutID string `json:"checkout_id"`
	Step       int    `json:"step"`
	StepName   string `json:"step_name"`
}

type PaymentInfoPayload struct {
	CheckoutID    string `json:"checkout_id"`
	PaymentMethod string `json:"payment_method"`
}

// OrderCompletedPayload accompanies Order Placed.
type OrderCompletedPayload struct {
	OrderID  string               `json:"order_id"`
	Subtotal decimal.Decimal      `json:"subtotal"`
	Discount decimal.Decimal      `json:"discount"`
	Shipping decimal.Decimal      `json:"shipping"`
	Tax      decimal.Decimal      `json:"tax"`
	Total    decimal.Decimal      `json:"total"`
	Coupon   string               `json:"coupon,omitempty"`
	Currency string               `json:"currency"`
	Products []CartProductPayload `json:"products"`
}

type PromotionPayload struct {
	PromotionID string `json:"promotion_id"`
	Name        string `json:"name"`
	Creative    string `json:"creative"`
	Position    string `json:"position"`
}

// PagePayload accompanies page views.
type PagePayload struct {
	Path     string `json:"path"`
	Title    string `json:"title,omitempty"`
	Referrer string `json:"referrer,omitempty"`
}

// IdentifyTraits are the profile attributes accepted on identify.
type IdentifyTraits struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
