package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andresvaldez/despacho/internal/domain"
)

const exportPageSize = 200

// newExportCmd dumps a table as CSV, for spreadsheets and accountants.
func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:       "export {expenses|bills}",
		Short:     "Write expenses or bills as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"expenses", "bills"},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			var err error
			switch args[0] {
			case "expenses":
				err = exportExpenses(cmd.Context(), app, w)
			case "bills":
				err = exportBills(cmd.Context(), app, w)
			default:
				err = fmt.Errorf("unknown export target %q", args[0])
			}
			if err == nil && out != "" {
				cmd.Printf("Wrote %s\n", out)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func exportExpenses(ctx context.Context, app *App, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "concept", "amount", "supplier_id", "project_id"}); err != nil {
		return err
	}

	f := domain.ExpenseFilters{Page: domain.Page{Page: 1, Limit: exportPageSize}}
	for {
		res, err := app.Expenses.List(ctx, f)
		if err != nil {
			return err
		}
		for _, e := range res.Data {
			rec := []string{
				e.ID,
				e.Date.Format("2006-01-02"),
				e.Concept,
				strconv.FormatFloat(e.Amount, 'f', 2, 64),
				e.SupplierID,
				e.ProjectID,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		if f.Page.Page*f.Limit >= res.Total || len(res.Data) == 0 {
			break
		}
		f.Page.Page++
	}

	cw.Flush()
	return cw.Error()
}

func exportBills(ctx context.Context, app *App, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "folio", "project_id", "amount", "issued_at", "status"}); err != nil {
		return err
	}

	f := domain.BillFilters{Page: domain.Page{Page: 1, Limit: exportPageSize}}
	for {
		res, err := app.Bills.List(ctx, f)
		if err != nil {
			return err
		}
		for _, b := range res.Data {
			rec := []string{
				b.ID,
				b.Folio,
				b.ProjectID,
				strconv.FormatFloat(b.Amount, 'f', 2, 64),
				b.IssuedAt.Format("2006-01-02"),
				string(b.Status),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		if f.Page.Page*f.Limit >= res.Total || len(res.Data) == 0 {
			break
		}
		f.Page.Page++
	}

	cw.Flush()
	return cw.Error()
}
