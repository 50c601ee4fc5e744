package checkout

import (
	"testing"

	pkgerrors "github.com/sereneleaf/storefront-backend/pkg/errors"
)

func TestNormalizePaymentStripsFormatting(t *testing.T) {
	cases := []struct {
		name   string
		number string
	}{
		{"plain", "4242424242424242"},
		{"spaced", "4242 4242 4242 4242"},
		{"dashed", "4242-4242-4242-4242"},
		{"mixed", "4242-4242 4242 4242"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := NormalizePayment(PaymentInput{
				CardNumber:     tc.number,
				ExpiryDate:     "09/27",
				CVC:            "123",
				CardholderName: "Mei Lin",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if record.CardLast4 != "4242" {
				t.Fatalf("expected last4 4242, got %q", record.CardLast4)
			}
			if record.Method != "card" {
				t.Fatalf("expected card method, got %q", record.Method)
			}
		})
	}
}

func TestNormalizePaymentRejections(t *testing.T) {
	valid := PaymentInput{
		CardNumber:     "4242424242424242",
		ExpiryDate:     "09/27",
		CVC:            "123",
		CardholderName: "Mei Lin",
	}

	cases := []struct {
		name   string
		mutate func(*PaymentInput)
		field  string
	}{
		{"short card", func(in *PaymentInput) { in.CardNumber = "4242" }, "card_number"},
		{"long card", func(in *PaymentInput) { in.CardNumber = "42424242424242421" }, "card_number"},
		{"letters in card", func(in *PaymentInput) { in.CardNumber = "4242abcd42424242" }, "card_number"},
		{"expiry without slash", func(in *PaymentInput) { in.ExpiryDate = "0927" }, "expiry_date"},
		{"expiry month zero", func(in *PaymentInput) { in.ExpiryDate = "00/27" }, "expiry_date"},
		{"expiry month thirteen", func(in *PaymentInput) { in.ExpiryDate = "13/27" }, "expiry_date"},
		{"expiry four digit year", func(in *PaymentInput) { in.ExpiryDate = "09/2027" }, "expiry_date"},
		{"cvc too short", func(in *PaymentInput) { in.CVC = "12" }, "cvc"},
		{"cvc too long", func(in *PaymentInput) { in.CVC = "12345" }, "cvc"},
		{"cvc letters", func(in *PaymentInput) { in.CVC = "12a" }, "cvc"},
		{"blank holder", func(in *PaymentInput) { in.CardholderName = "   " }, "cardholder_name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)
			_, err := NormalizePayment(input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected VALIDATION_ERROR, got %v", err)
			}
			fields, ok := typed.Details().(map[string]string)
			if !ok {
				t.Fatalf("expected field details, got %T", typed.Details())
			}
			if _, present := fields[tc.field]; !present {
				t.Fatalf("expected %s to be flagged, got %v", tc.field, fields)
			}
		})
	}
}

func TestNormalizePaymentAcceptsFourDigitCVC(t *testing.T) {
	record, err := NormalizePayment(PaymentInput{
		CardNumber:     "4242424242424242",
		ExpiryDate:     "01/30",
		CVC:            "1234",
		CardholderName: "Mei Lin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ExpiryDate != "01/30" {
		t.Fatalf("expiry should be stored as submitted, got %q", record.ExpiryDate)
	}
}
