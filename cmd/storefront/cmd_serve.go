package main

import (
	"storefront/internal/handler"
	"storefront/internal/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve cart and session to local views",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		//Handler生成
		h := server.Handlers{
			Cart:     handler.NewCartHandler(a.cart),
			Session:  handler.NewSessionHandler(a.session, a.cart),
			Checkout: handler.NewCheckoutHandler(a.checkout),
		}

		//Server起動
		e := server.New(h, a.session, logger)
		return server.Start(ctx, e, cfg.Addr(), logger)
	},
}
