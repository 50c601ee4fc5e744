package checkout

import (
	"strings"

	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
)

// ShippingData is the validated shipping form. It is stored as submitted.
type ShippingData struct {
	FirstName    string `json:"first_name" validate:"required"`
	LastName     string `json:"last_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	AddressLine1 string `json:"address_line1" validate:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required"`
	Country      string `json:"country" validate:"required"`
}

// PaymentInput is the raw payment form as submitted by the client.
type PaymentInput struct {
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVC            string `json:"cvc"`
	CardholderName string `json:"cardholder_name"`
}

// PaymentRecord is what survives validation. The card number never leaves
// this function; only the last four digits are retained.
type PaymentRecord struct {
	Method         string `json:"method"`
	CardLast4      string `json:"card_last4"`
	ExpiryDate     string `json:"expiry_date"`
	CardholderName string `json:"cardholder_name"`
}

const methodCard = "card"

// NormalizePayment strips formatting from the card number, validates every
// field and returns the masked record. Spaces and dashes are tolerated in
// card input; after stripping, exactly 16 digits are required.
func NormalizePayment(in PaymentInput) (PaymentRecord, error) {
	fieldErrors := map[string]string{}

	digits := stripCardFormatting(in.CardNumber)
	if len(digits) != 16 || !allDigits(digits) {
		fieldErrors["card_number"] = "card number must be 16 digits"
	}

	expiry := strings.TrimSpace(in.ExpiryDate)
	if !validExpiry(expiry) {
		fieldErrors["expiry_date"] = "expiry must be MM/YY"
	}

	cvc := strings.TrimSpace(in.CVC)
	if len(cvc) < 3 || len(cvc) > 4 || !allDigits(cvc) {
		fieldErrors["cvc"] = "cvc must be 3 or 4 digits"
	}

	holder := strings.TrimSpace(in.CardholderName)
	if holder == "" {
		fieldErrors["cardholder_name"] = "cardholder name is required"
	}

	if len(fieldErrors) > 0 {
		return PaymentRecord{}, pkgerrors.
			New(pkgerrors.CodeValidation, "payment details invalid").
			WithDetails(fieldErrors)
	}

	return PaymentRecord{
		Method:         methodCard,
		CardLast4:      digits[len(digits)-4:],
		ExpiryDate:     expiry,
		CardholderName: holder,
	}, nil
}

func stripCardFormatting(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r == ' ' || r == '-' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func allDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validExpiry(value string) bool {
	if len(value) != 5 || value[2] != '/' {
		return false
	}
	month, year := value[:2], value[3:]
	if !allDigits(month) || !allDigits(year) {
		return false
	}
	return month >= "01" && month <= "12"
}
