package main

import (
	"context"
	"fmt"
	"io"

	"basket/cmd"
	"basket/internal/core/application/basket"

	"github.com/spf13/cobra"
)

func newOrdersCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "List orders that are not fulfilled yet",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, logger, db, err := bootstrap(*configPath)
			if err != nil {
				return err
			}

			app, err := cmd.NewCompositionRoot(cfg, db, logger)
			if err != nil {
				closeDB(db)
				return err
			}
			defer func() {
				_ = app.Close()
			}()

			return listOpenOrders(c.Context(), app.CreateBasketService(), c.OutOrStdout())
		},
	}
}

func listOpenOrders(ctx context.Context, svc *basket.Service, out io.Writer) error {
	summaries, err := svc.GetOpenOrders(ctx)
	if err != nil {
		return err
	}

	for _, s := range summaries {
		if _, err = fmt.Fprintf(out, "%d\t%s\t%s\t%d\t%s %s\n",
			s.ID, s.ClientCode, s.Status, s.Lines, s.Total.StringFixed(2), s.CurrencyCode); err != nil {
			return err
		}
	}
	return nil
}
