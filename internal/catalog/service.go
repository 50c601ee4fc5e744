package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sereneleaf/storefront-backend/pkg/enums"
	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

//go:embed data/products.json
var productsJSON []byte

//go:embed data/coupons.json
var couponsJSON []byte

//go:embed data/promotions.json
var promotionsJSON []byte

// Service exposes the static catalog, coupon and promotion collections.
type Service struct {
	products   []Product
	bySlug     map[string]*Product
	byID       map[string]*Product
	coupons    map[string]Coupon
	promotions []Promotion
}

// ListParams filter the product listing.
type ListParams struct {
	Category string
	Query    string
}

// New loads and validates the embedded catalog data.
// A missing homepage hero promotion is a configuration error.
func New() (*Service, error) {
	s := &Service{
		bySlug:  map[string]*Product{},
		byID:    map[string]*Product{},
		coupons: map[string]Coupon{},
	}

	validate := validator.New()

	if err := json.Unmarshal(productsJSON, &s.products); err != nil {
		return nil, fmt.Errorf("parsing product data: %w", err)
	}
	for i := range s.products {
		p := &s.products[i]
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.ProductID, err)
		}
		if !p.Category.IsValid() {
			return nil, fmt.Errorf("product %q: invalid category %q", p.ProductID, p.Category)
		}
		if !p.CaffeineLevel.IsValid() {
			return nil, fmt.Errorf("product %q: invalid caffeine level %q", p.ProductID, p.CaffeineLevel)
		}
		if !p.Price.IsPositive() {
			return nil, fmt.Errorf("product %q: price must be positive", p.ProductID)
		}
		if _, dup := s.byID[p.ProductID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ProductID)
		}
		s.byID[p.ProductID] = p
		s.bySlug[p.Slug] = p
	}

	var coupons []Coupon
	if err := json.Unmarshal(couponsJSON, &coupons); err != nil {
		return nil, fmt.Errorf("parsing coupon data: %w", err)
	}
	hundred := decimal.NewFromInt(100)
	for _, c := range coupons {
		if err := validate.Struct(c); err != nil {
			return nil, fmt.Errorf("coupon %q: %w", c.Code, err)
		}
		if c.DiscountPercentage.IsNegative() || c.DiscountPercentage.GreaterThan(hundred) {
			return nil, fmt.Errorf("coupon %q: discount percentage out of range", c.Code)
		}
		if c.MinOrderAmount.IsNegative() {
			return nil, fmt.Errorf("coupon %q: minimum order amount cannot be negative", c.Code)
		}
		s.coupons[strings.ToUpper(c.Code)] = c
	}

	if err := json.Unmarshal(promotionsJSON, &s.promotions); err != nil {
		return nil, fmt.Errorf("parsing promotion data: %w", err)
	}
	heroFound := false
	for _, p := range s.promotions {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("promotion %q: %w", p.ID, err)
		}
		if p.Position == PositionHomeHero {
			heroFound = true
		}
	}
	if !heroFound {
		return nil, fmt.Errorf("no promotion configured for the %s position", PositionHomeHero)
	}

	return s, nil
}

// List returns in-catalog products matching the optional category and query filters.
func (s *Service) List(params ListParams) ([]Product, error) {
	var category enums.TeaCategory
	if params.Category != "" {
		parsed, err := enums.ParseTeaCategory(strings.ToLower(strings.TrimSpace(params.Category)))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown category")
		}
		category = parsed
	}

	query := strings.ToLower(strings.TrimSpace(params.Query))

	results := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		results = append(results, p)
	}
	return results, nil
}

func matchesQuery(p Product, query string) bool {
	for _, field := range []string{p.Name, p.Description, p.Origin, p.Variant} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// GetBySlug returns the product published under the given slug.
func (s *Service) GetBySlug(slug string) (*Product, error) {
	if p, ok := s.bySlug[slug]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// GetByID returns the product with the given identifier.
func (s *Service) GetByID(id string) (*Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// Featured returns up to limit in-stock products ranked by rating.
func (s *Service) Featured(limit int) []Product {
	featured := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.InStock {
			featured = append(featured, p)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		return featured[i].Rating > featured[j].Rating
	})
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured
}

// CouponByCode looks up a coupon case-insensitively.
func (s *Service) CouponByCode(code string) (*Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if c, ok := s.coupons[normalized]; ok {
		return &c, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "coupon not found")
}

// Promotions returns all promotions, or those pinned to the given position.
func (s *Service) Promotions(position string) []Promotion {
	if position == "" {
		return s.promotions
	}
	matches := make([]Promotion, 0, len(s.promotions))
	for _, p := range s.promotions {
		if p.Position == position {
			matches = append(matches, p)
		}
	}
	return matches
}

// PromotionByID returns the promotion with the given identifier.
func (s *Service) PromotionByID(id string) (*Promotion, error) {
	for _, p := range s.promotions {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "promotion not found")
}
