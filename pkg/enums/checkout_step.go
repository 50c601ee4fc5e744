package enums

// CheckoutStep identifies a step in the linear checkout sequence.
type CheckoutStep string

const (
	CheckoutStepShipping CheckoutStep = "shipping"
	CheckoutStepPayment  CheckoutStep = "payment"
	CheckoutStepReview   CheckoutStep = "review"
)

var orderedCheckoutSteps = []CheckoutStep{
	CheckoutStepShipping,
	CheckoutStepPayment,
	CheckoutStepReview,
}

// String implements fmt.Stringer.
func (s CheckoutStep) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CheckoutStep.
func (s CheckoutStep) IsValid() bool {
	for _, candidate := range orderedCheckoutSteps {
		if candidate == s {
			return true
		}
	}
	return false
}

// Number returns the 1-based position of the step in the sequence, 0 when unknown.
func (s CheckoutStep) Number() int {
	for i, candidate := range orderedCheckoutSteps {
		if candidate == s {
			return i + 1
		}
	}
	return 0
}
