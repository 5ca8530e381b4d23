package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lifedash/internal/engine"
	"lifedash/internal/ui"
)

func newLedgerCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Record income and expenses",
	}
	cmd.AddCommand(
		newLedgerListCmd(flags),
		newLedgerAddCmd(flags),
		newLedgerBalanceCmd(flags),
		newLedgerTaxCmd(flags),
	)
	return cmd
}

func loadLedger(ctx context.Context, a *app) (*engine.Ledger, error) {
	st, err := a.svc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return engine.NewLedger(st.Transactions), nil
}

func newLedgerListCmd(flags *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			l, err := loadLedger(ctx, a)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			txs := l.Transactions()
			fmt.Fprintln(out, ui.Heading(ui.IconWallet, "Ledger"))
			if len(txs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no transactions)"))
				return nil
			}
			shown := 0
			for i := len(txs) - 1; i >= 0; i-- {
				if limit > 0 && shown >= limit {
					break
				}
				tx := txs[i]
				fmt.Fprintf(out, "%s  %-8s %-10s %s\n",
					ui.Muted.Render(tx.Date.In(a.svc.Location()).Format("2006-01-02 15:04")),
					tx.Type, tx.Category,
					ui.Signed(a.money(tx.Signed()), tx.Type == engine.TxExpense))
				shown++
			}
			bal := l.Balance()
			fmt.Fprintln(out, ui.LabelValue("Balance", ui.Signed(a.money(bal), bal.IsNegative())))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most n transactions (0 = all)")
	return cmd
}

func newLedgerAddCmd(flags *globalFlags) *cobra.Command {
	var typ, category string

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, ok := engine.ParseTxType(typ)
			if !ok {
				return fmt.Errorf("unknown type %q (income|expense)", typ)
			}
			c, ok := engine.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q (%s)", category, categoryNames())
			}

			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			tx, bal, err := a.svc.AddTransaction(ctx, args[0], t, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s (%s)\n", ui.IconOK, tx.Type,
				ui.Signed(a.money(tx.Signed()), tx.Type == engine.TxExpense), tx.Category)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Balance", ui.Signed(a.money(bal), bal.IsNegative())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", string(engine.TxIncome), "income|expense")
	cmd.Flags().StringVarP(&category, "category", "c", string(engine.CategoryGeneral), categoryNames())
	return cmd
}

func categoryNames() string {
	names := make([]string, 0, len(engine.Categories))
	for _, c := range engine.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, "|")
}

func newLedgerBalanceCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show balance, totals and per-category sums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			l, err := loadLedger(ctx, a)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			bal := l.Balance()
			income, expense := l.Totals()
			fmt.Fprintln(out, ui.Heading(ui.IconWallet, "Balance ")+ui.Signed(a.money(bal), bal.IsNegative()))
			fmt.Fprintln(out, ui.LabelValue("Income", a.money(income)))
			fmt.Fprintln(out, ui.LabelValue("Expense", a.money(expense)))
			for _, ct := range l.ByCategory() {
				fmt.Fprintf(out, "- %-10s %s %s\n", ct.Category,
					ui.Signed(a.money(ct.Net), ct.Net.IsNegative()),
					ui.Muted.Render(fmt.Sprintf("(%d)", ct.Count)))
			}
			return nil
		},
	}
}

func newLedgerTaxCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tax",
		Short: "Estimate income tax on recorded income",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx, flags)
			if err != nil {
				return err
			}
			defer cleanup()

			l, err := loadLedger(ctx, a)
			if err != nil {
				return err
			}
			income, _ := l.Totals()
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Income", a.money(income)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Estimated tax", ui.Warn.Render(a.money(engine.EstimateTax(income)))))
			return nil
		},
	}
}
