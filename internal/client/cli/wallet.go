package cli

import (
	"context"

	"github.com/dmitrijs2005/heavyhire/internal/client/models"
)

func (a *App) Wallet(ctx context.Context) error {
	view, err := a.wallet.Load(ctx)
	if err != nil {
		return a.fail(ctx, "Wallet", err)
	}

	if w := view.Wallet; w != nil {
		a.printf("Balance:   %s\n", models.FormatCents(w.Balance, w.Currency))
		a.printf("Held:      %s\n", models.FormatCents(w.HeldBalance, w.Currency))
		a.printf("Available: %s\n", models.FormatCents(w.Available(), w.Currency))
	} else {
		a.println("No wallet yet")
	}

	if len(view.Transactions) == 0 {
		a.println("No transactions")
		return nil
	}

	currency := ""
	if view.Wallet != nil {
		currency = view.Wallet.Currency
	}
	a.println("Transactions:")
	for _, t := range view.Transactions {
		a.printf("  %s  %-10s %14s  %-9s %s\n",
			t.CreatedAt.Local().Format("2006-01-02"), t.Type, models.FormatCents(t.Amount, currency), t.Status, t.Description)
	}
	return nil
}
