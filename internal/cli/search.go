package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"stockctl/internal/inventory"
	"stockctl/internal/search"
)

// NewSearchCommand creates the search command, which reports on current
// stock: free-text matching, a low-stock report and file export.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		below      int
		exportPath string
	)

	cmd := &cobra.Command{
		Use:   "search [TERM...]",
		Short: "Search and report on current stock",
		Long: `Search the stock file. With terms, list items matching every term in
any column. With --below, list items whose stock is under the limit.
With --export, write the matching rows to a CSV, XLSX or SQLite file
instead of listing them.`,
		Example: `  stockctl search widget acme
  stockctl search --below 15
  stockctl search --export stock.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			_, cfg, err := buildDeps(rootOpts)
			if err != nil {
				return err
			}

			stock, err := (&inventory.File{Path: cfg.Files.Stock}).Load()
			if err != nil {
				return fail(formatter, err)
			}

			rows := stock.Rows()
			if len(args) > 0 {
				rows = search.Search(stock, strings.Join(args, " "))
			}
			if cmd.Flags().Changed("below") {
				limit := below
				if limit <= 0 {
					limit = cfg.Report.LowStockLimit
				}
				filtered := rows[:0:0]
				for _, row := range rows {
					if row.Stock < limit {
						filtered = append(filtered, row)
					}
				}
				rows = filtered
			}

			if exportPath != "" {
				if err := search.Export(exportPath, rows); err != nil {
					return fail(formatter, err)
				}
				return formatter.Success(map[string]interface{}{
					"exported": exportPath,
					"rows":     len(rows),
				})
			}

			if rootOpts.Format == "json" {
				return formatter.Success(searchPayload(rows))
			}
			cmd.Print(search.RenderText(rows))
			return nil
		},
	}

	cmd.Flags().IntVar(&below, "below", 0, "only items with stock under this limit (0 uses the configured limit)")
	cmd.Flags().StringVar(&exportPath, "export", "", "write results to a .csv, .xlsx or .db file")

	return cmd
}

func searchPayload(rows []*inventory.Row) []map[string]interface{} {
	payload := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		payload = append(payload, map[string]interface{}{
			"item_id":      row.ID,
			"stock":        row.Stock,
			"manufacturer": row.Manufacturer,
			"category":     row.Category,
			"description":  row.Description,
			"price":        row.Price.StringFixed(2),
		})
	}
	return payload
}
