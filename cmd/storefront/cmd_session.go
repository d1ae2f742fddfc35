package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Register an access token issued by the identity provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		s, err := a.session.Login(ctx, loginToken)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", s.Subject)
		return printCart(cmd, a.cart)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the session and reset the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.session.Logout(ctx); err != nil {
			return err
		}
		a.cart.Reset(ctx)

		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Access token (required)")
	_ = loginCmd.MarkFlagRequired("token")
}
