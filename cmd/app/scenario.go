package main

import (
	"context"
	"fmt"
	"io"

	"basket/cmd"
	"basket/internal/core/application/basket"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newScenarioCmd(configPath *string) *cobra.Command {
	var clientCode string

	c := &cobra.Command{
		Use:   "scenario",
		Short: "Run a sample basket against a seeded database and print the total",
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

			return runScenario(c.Context(), app.CreateBasketService(), clientCode, c.OutOrStdout())
		},
	}
	c.Flags().StringVar(&clientCode, "client", "4829", "client code to order for")
	return c
}

// runScenario opens a basket in EUR, adds two products and adjusts one quantity.
func runScenario(ctx context.Context, svc *basket.Service, clientCode string, out io.Writer) error {
	buyer, err := client.NewClient(clientCode, "Sample", "Client", nil, client.Unspecified, nil)
	if err != nil {
		return err
	}
	address, err := kernel.NewAddress("DE", "Berlin", "Berlin", "10115", "Invalidenstraße 1")
	if err != nil {
		return err
	}

	id, err := svc.InitializeSameAddress(ctx, buyer, address, order.WireTransfer, "EUR", decimal.RequireFromString("0.10"))
	if err != nil {
		return err
	}
	if err = svc.Add(ctx, id, "PRODUCT-1", 2); err != nil {
		return err
	}
	if err = svc.Add(ctx, id, "PRODUCT-2", 3); err != nil {
		return err
	}
	if err = svc.SetQuantity(ctx, id, "PRODUCT-2", 2); err != nil {
		return err
	}

	o, err := svc.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "order %d: %d lines, total %s\n", o.ID(), len(o.Lines()), o.Currency().Format(o.Total()))
	return err
}
