package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"storefront/internal/usecase"

	"github.com/spf13/cobra"
)

var addQty int64

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show or change the cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current cart",
	Args:  cobra.NoArgs,
	RunE: withCart(func(cmd *cobra.Command, cart *usecase.CartUsecase, args []string) error {
		return nil
	}),
}

var cartAddCmd = &cobra.Command{
	Use:   "add <bookId>",
	Short: "Add a book from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: withCart(func(cmd *cobra.Command, cart *usecase.CartUsecase, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}
		_, err = cart.AddBook(cmd.Context(), bookID, addQty)
		return err
	}),
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <bookId> <quantity>",
	Short: "Change the quantity of a cart item",
	Args:  cobra.ExactArgs(2),
	RunE: withCart(func(cmd *cobra.Command, cart *usecase.CartUsecase, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}
		qty, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("quantity must be number: %w", err)
		}
		_, err = cart.UpdateQuantity(cmd.Context(), bookID, qty)
		return err
	}),
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <bookId>",
	Short: "Remove a cart item",
	Args:  cobra.ExactArgs(1),
	RunE: withCart(func(cmd *cobra.Command, cart *usecase.CartUsecase, args []string) error {
		bookID, err := parseID(args[0])
		if err != nil {
			return err
		}
		_, err = cart.RemoveItem(cmd.Context(), bookID)
		return err
	}),
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: withCart(func(cmd *cobra.Command, cart *usecase.CartUsecase, args []string) error {
		_, err := cart.ClearCart(cmd.Context())
		return err
	}),
}

// withCart は組み立て→操作→表示
func withCart(fn func(cmd *cobra.Command, cart *usecase.CartUsecase, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := fn(cmd, a.cart, args); err != nil {
			return err
		}
		return printCart(cmd, a.cart)
	}
}

func printCart(cmd *cobra.Command, cart *usecase.CartUsecase) error {
	c := cart.Current()
	out := cmd.OutOrStdout()

	if msg := cart.LastError(); msg != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", msg)
	}

	fmt.Fprintf(out, "cart #%d (%s)\n", c.ID, cart.StoreName())
	if len(c.Items) == 0 {
		fmt.Fprintln(out, "  (empty)")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  ID\tTITLE\tPRICE\tQTY\tSUBTOTAL")
	for _, it := range c.Items {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%d\t%s\n",
			it.Book.ID, it.Book.Title, it.Book.Price.StringFixed(2), it.Quantity, it.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(tw, "  \t\tTOTAL\t%d\t%s\n", c.Count(), c.Total().StringFixed(2))
	return tw.Flush()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid book id %q", s)
	}
	return id, nil
}

func init() {
	cartAddCmd.Flags().Int64Var(&addQty, "qty", 1, "Quantity to add")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
}
