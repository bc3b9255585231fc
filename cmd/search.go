package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/influencer-matcher/internal/matcher"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Look up an influencer's product history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initMatcher(cmd.Context(), cfg, "match")
		if err != nil {
			return err
		}

		res := env.Engine.Search(strings.Join(args, " "))
		if searchJSON {
			return writeJSON(os.Stdout, res)
		}
		formatSearch(os.Stdout, res)
		return nil
	},
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(searchCmd)
}

func formatSearch(out io.Writer, res matcher.SearchResult) {
	if !res.Found {
		_, _ = fmt.Fprintf(out, "No match found for %q.\n", res.Query)
		if len(res.Candidates) > 0 {
			_, _ = fmt.Fprintln(out, "Closest names:")
			for _, c := range res.Candidates {
				_, _ = fmt.Fprintf(out, "  %s (%d)\n", c.Key, c.Score)
			}
		}
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Matched:\t%s\n", res.MatchedName)
	_, _ = fmt.Fprintf(w, "Key:\t%s\n", res.MatchedKey)
	_, _ = fmt.Fprintf(w, "Score:\t%d\n", res.Score)
	_, _ = fmt.Fprintf(w, "Sources:\t%s\n", strings.Join(res.Sources, ", "))
	products := "(none)"
	if len(res.Products) > 0 {
		products = strings.Join(res.Products, ", ")
	}
	_, _ = fmt.Fprintf(w, "Products:\t%s\n", products)
	_ = w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
