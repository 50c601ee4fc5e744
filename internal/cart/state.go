package cart

import (
	"github.com/sereneleaf/storefront-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// Item is one cart line. Lines are keyed by product id; adding the same
// product again merges quantities instead of appending a duplicate line.
type Item struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Category  string          `json:"category"`
	Variant   string          `json:"variant"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"image_url"`
	URL       string          `json:"url"`
}

// ItemFromProduct snapshots a catalog product into a cart line.
// Prices are frozen at add time.
func ItemFromProduct(p *catalog.Product, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}
	return Item{
		ProductID: p.ProductID,
		SKU:       p.SKU,
		Name:      p.Name,
		Brand:     p.Brand,
		Category:  p.Category.String(),
		Variant:   p.Variant,
		Price:     p.Price,
		Quantity:  quantity,
		ImageURL:  p.ImageURL,
		URL:       p.URL,
	}
}

// State is the full cart snapshot persisted per session. Totals are never
// stored; they are derived on every read.
type State struct {
	Items  []Item          `json:"items"`
	Coupon *catalog.Coupon `json:"coupon,omitempty"`
}

// Action is a tagged cart mutation. Reduce handles every variant; anything
// else is a programming error and leaves the state unchanged.
type Action interface {
	isAction()
}

type AddItem struct {
	Item Item
}

type RemoveItem struct {
	ProductID string
}

type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

type ApplyCoupon struct {
	Coupon catalog.Coupon
}

type RemoveCoupon struct{}

type Clear struct{}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ApplyCoupon) isAction()    {}
func (RemoveCoupon) isAction()   {}
func (Clear) isAction()          {}

// Reduce applies one action and returns the next state. It never mutates
// its input; the items slice is copied before any write.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		next := cloneItems(state.Items)
		merged := false
		for i := range next {
			if next[i].ProductID == a.Item.ProductID {
				next[i].Quantity += a.Item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			item := a.Item
			if item.Quantity < 1 {
				item.Quantity = 1
			}
			next = append(next, item)
		}
		return State{Items: next, Coupon: state.Coupon}

	case RemoveItem:
		next := make([]Item, 0, len(state.Items))
		for _, item := range state.Items {
			if item.ProductID != a.ProductID {
				next = append(next, item)
			}
		}
		return State{Items: next, Coupon: state.Coupon}

	case UpdateQuantity:
		if a.Quantity <= 0 {
			return Reduce(state, RemoveItem{ProductID: a.ProductID})
		}
		next := cloneItems(state.Items)
		for i := range next {
			if next[i].ProductID == a.ProductID {
				next[i].Quantity = a.Quantity
				break
			}
		}
		return State{Items: next, Coupon: state.Coupon}

	case ApplyCoupon:
		coupon := a.Coupon
		return State{Items: cloneItems(state.Items), Coupon: &coupon}

	case RemoveCoupon:
		return State{Items: cloneItems(state.Items)}

	case Clear:
		return State{Items: []Item{}}
	}

	return state
}

func cloneItems(items []Item) []Item {
	next := make([]Item, len(items))
	copy(next, items)
	return next
}
