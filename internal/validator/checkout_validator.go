package validator

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"unicode/utf8"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

var (
	// 住所が不正
	ErrInvalidAddress = usecase.NewHTTPError(http.StatusBadRequest, "invalid address")

	// 支払い方法が不正
	ErrInvalidPaymentMethod = usecase.NewHTTPError(http.StatusBadRequest, "invalid payment method")
)

// 受け付ける支払い方法
var paymentMethods = map[string]struct{}{
	"CARD":          {},
	"BANK_TRANSFER": {},
	"PAYPAL":        {},
}

var postalCodeRe = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z -]{1,8}[0-9A-Za-z]$`)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// 注文確定の入力を検証
func (v *checkoutValidator) ValidateCheckout(ctx context.Context, in usecase.CheckoutInput) error {
	if !validAddress(in.Address) {
		return ErrInvalidAddress
	}

	if _, ok := paymentMethods[strings.ToUpper(strings.TrimSpace(in.PaymentMethod))]; !ok {
		return ErrInvalidPaymentMethod
	}

	return nil
}

func validAddress(a model.Address) bool {
	// 最低文字数
	if !minLen(a.Street, 3) || !minLen(a.City, 2) || !minLen(a.Country, 2) {
		return false
	}

	// 郵便番号（国ごとの形式までは見ない）
	return postalCodeRe.MatchString(strings.TrimSpace(a.PostalCode))
}

func minLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= n
}
