package validator

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutValidator(t *testing.T) {
	valid := usecase.CheckoutInput{
		Address: model.Address{
			Street:     "1-2-3 Shibuya",
			City:       "Tokyo",
			PostalCode: "150-0002",
			Country:    "JP",
		},
		PaymentMethod: "CARD",
	}

	tests := []struct {
		name   string
		mutate func(in *usecase.CheckoutInput)
		want   error
	}{
		{name: "ok", mutate: func(in *usecase.CheckoutInput) {}, want: nil},
		{name: "lower case method", mutate: func(in *usecase.CheckoutInput) { in.PaymentMethod = "paypal" }, want: nil},
		{name: "five digit postal code", mutate: func(in *usecase.CheckoutInput) { in.Address.PostalCode = "75001" }, want: nil},
		{name: "uk postal code", mutate: func(in *usecase.CheckoutInput) { in.Address.PostalCode = "SW1A 1AA" }, want: nil},
		{name: "short street", mutate: func(in *usecase.CheckoutInput) { in.Address.Street = "ab" }, want: ErrInvalidAddress},
		{name: "blank city", mutate: func(in *usecase.CheckoutInput) { in.Address.City = "  " }, want: ErrInvalidAddress},
		{name: "one letter country", mutate: func(in *usecase.CheckoutInput) { in.Address.Country = "J" }, want: ErrInvalidAddress},
		{name: "bad postal code", mutate: func(in *usecase.CheckoutInput) { in.Address.PostalCode = "#1" }, want: ErrInvalidAddress},
		{name: "no method", mutate: func(in *usecase.CheckoutInput) { in.PaymentMethod = "" }, want: ErrInvalidPaymentMethod},
		{name: "unknown method", mutate: func(in *usecase.CheckoutInput) { in.PaymentMethod = "BITCOIN" }, want: ErrInvalidPaymentMethod},
	}

	v := NewCheckoutValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := v.ValidateCheckout(context.Background(), in)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
