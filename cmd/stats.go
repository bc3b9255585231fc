package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/influencer-matcher/internal/matcher"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the collaboration history contains",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initMatcher(cmd.Context(), cfg, "match")
		if err != nil {
			return err
		}

		st := env.Engine.Stats()
		if statsJSON {
			return writeJSON(os.Stdout, st)
		}
		formatStats(os.Stdout, st)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print stats as JSON")
	rootCmd.AddCommand(statsCmd)
}

func formatStats(out io.Writer, st matcher.Stats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Loaded:\t%t\n", st.Loaded)
	_, _ = fmt.Fprintf(w, "Contacts:\t%d\n", st.TotalContacts)
	_, _ = fmt.Fprintf(w, "Products:\t%d\n", st.TotalProducts)
	if len(st.Products) > 0 {
		_, _ = fmt.Fprintf(w, "\t%s\n", strings.Join(st.Products, ", "))
	}
	_, _ = fmt.Fprintf(w, "Sources:\t%s\n", strings.Join(st.Sources, ", "))
	if !st.BuiltAt.IsZero() {
		_, _ = fmt.Fprintf(w, "Built:\t%s\n", st.BuiltAt.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Min score:\t%d\n", st.MinScore)
	_ = w.Flush()
}
