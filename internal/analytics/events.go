package analytics

// Track event names follow the e-commerce vocabulary the storefront
// emits. Downstream consumers match on these strings, so they are frozen.
const (
	EventProductsSearched     = "Products Searched"
	EventProductListViewed    = "Product List Viewed"
	EventProductClicked       = "Product Clicked"
	EventProductViewed        = "Product Viewed"
	EventProductAdded         = "Product Added to Cart"
	EventProductRemoved       = "Product Removed from Cart"
	EventProductWishlisted    = "Product Added to Wishlist"
	EventCartViewed           = "Cart Viewed"
	EventCouponApplied        = "Coupon Applied"
	EventCouponDenied         = "Coupon Denied"
	EventCheckoutStarted      = "Checkout Started"
	EventCheckoutStepViewed   = "Checkout Step Viewed"
	EventCheckoutStepComplete = "Checkout Step Completed"
	EventPaymentInfoEntered   = "Payment Info Entered"
	EventOrderPlaced          = "Order Placed"
	EventPromotionViewed      = "Promotion Viewed"
	EventPromotionClicked     = "Promotion Clicked"
)

// Kind distinguishes the three envelope shapes on the wire.
type Kind string

const (
	KindTrack    Kind = "track"
	KindPage     Kind = "page"
	KindIdentify Kind = "identify"
)
