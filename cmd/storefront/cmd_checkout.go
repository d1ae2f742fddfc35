package main

import (
	"fmt"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	checkoutAddr   model.Address
	checkoutMethod string
	checkoutRef    string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		placed, err := a.checkout.PlaceOrder(ctx, usecase.CheckoutInput{
			Reference:     checkoutRef,
			Address:       checkoutAddr,
			PaymentMethod: checkoutMethod,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "order %s %s\n", placed.OrderID, placed.Status)
		if placed.ClientSecret != "" {
			fmt.Fprintln(cmd.OutOrStdout(), "payment pending: complete card payment in the browser")
		}
		return nil
	},
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutAddr.Street, "street", "", "Street")
	checkoutCmd.Flags().StringVar(&checkoutAddr.City, "city", "", "City")
	checkoutCmd.Flags().StringVar(&checkoutAddr.PostalCode, "postal-code", "", "Postal code")
	checkoutCmd.Flags().StringVar(&checkoutAddr.Country, "country", "", "Country")
	checkoutCmd.Flags().StringVar(&checkoutMethod, "method", "CARD", "Payment method (CARD, BANK_TRANSFER, PAYPAL)")
	checkoutCmd.Flags().StringVar(&checkoutRef, "reference", "", "Order reference")
}
