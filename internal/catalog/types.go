package catalog

import (
	"github.com/sereneleaf/storefront-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is an immutable catalog entry, created at load time and never mutated.
type Product struct {
	ProductID              string              `json:"product_id" validate:"required"`
	SKU                    string              `json:"sku" validate:"required"`
	Slug                   string              `json:"slug" validate:"required"`
	Name                   string              `json:"name" validate:"required"`
	Brand                  string              `json:"brand" validate:"required"`
	Category               enums.TeaCategory   `json:"category" validate:"required"`
	Variant                string              `json:"variant" validate:"required"`
	Price                  decimal.Decimal     `json:"price"`
	Currency               string              `json:"currency" validate:"required"`
	Description            string              `json:"description" validate:"required"`
	Origin                 string              `json:"origin" validate:"required"`
	CaffeineLevel          enums.CaffeineLevel `json:"caffeine_level" validate:"required"`
	BrewTemperatureCelsius int                 `json:"brew_temperature_celsius" validate:"required"`
	BrewTimeSeconds        int                 `json:"brew_time_seconds" validate:"required"`
	ImageURL               string              `json:"image_url" validate:"required"`
	URL                    string              `json:"url" validate:"required"`
	InStock                bool                `json:"in_stock"`
	Rating                 float64             `json:"rating" validate:"min=0,max=5"`
	ReviewCount            int                 `json:"review_count" validate:"min=0"`
}

// Coupon is a percentage discount gated by a minimum order amount.
type Coupon struct {
	Code               string          `json:"code" validate:"required"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Description        string          `json:"description" validate:"required"`
	MinOrderAmount     decimal.Decimal `json:"min_order_amount"`
}

// Promotion is a marketing placement rendered by the storefront.
type Promotion struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Creative    string `json:"creative" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Description string `json:"description" validate:"required"`
	CTAText     string `json:"cta_text" validate:"required"`
	CTAURL      string `json:"cta_url" validate:"required"`
}

// PositionHomeHero is the homepage hero slot; its promotion is required at startup.
const PositionHomeHero = "home-hero"
