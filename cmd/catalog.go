package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/influencer-matcher/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the product catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products and their keywords",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		formatCatalog(os.Stdout, cat.Products())
		return nil
	},
}

var catalogExtractCmd = &cobra.Command{
	Use:   "extract <text>",
	Short: "Show which products a piece of text mentions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		ids := cat.Extract(strings.Join(args, " "))
		if len(ids) == 0 {
			_, _ = fmt.Fprintln(os.Stderr, "No products found.")
			return nil
		}
		for _, id := range ids {
			_, _ = fmt.Fprintln(os.Stdout, id)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd, catalogExtractCmd)
	rootCmd.AddCommand(catalogCmd)
}

func formatCatalog(out io.Writer, products []catalog.Product) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "PRODUCT\tGROUP\tKEYWORDS")
	_, _ = fmt.Fprintln(w, "-------\t-----\t--------")
	for _, p := range products {
		kws := make([]string, len(p.Keywords))
		for i, k := range p.Keywords {
			kws[i] = fmt.Sprintf("%q", k)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Group, strings.Join(kws, " "))
	}
	_ = w.Flush()
}
