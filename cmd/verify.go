package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/influencer-matcher/internal/model"
)

var verifyJSON bool

var verifyCmd = &cobra.Command{
	Use:   "verify <name> <product>",
	Short: "Check one proposed influencer-product assignment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initMatcher(cmd.Context(), cfg, "match")
		if err != nil {
			return err
		}

		o := env.Engine.Verify(args[0], args[1])
		if verifyJSON {
			return writeJSON(os.Stdout, o)
		}
		formatOutcome(os.Stdout, o)
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "print the outcome as JSON")
	rootCmd.AddCommand(verifyCmd)
}

func formatOutcome(out io.Writer, o model.Outcome) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Status:\t%s\n", o.Status)
	_, _ = fmt.Fprintf(w, "Name:\t%s\n", o.Name)
	_, _ = fmt.Fprintf(w, "Product:\t%s\n", o.Product)
	if o.MatchedName != "" {
		_, _ = fmt.Fprintf(w, "Matched:\t%s (score %d)\n", o.MatchedName, o.Score)
	}
	if len(o.Products) > 0 {
		_, _ = fmt.Fprintf(w, "History:\t%s\n", strings.Join(o.Products, ", "))
	}
	_, _ = fmt.Fprintf(w, "Message:\t%s\n", o.Message)
	_ = w.Flush()
}
