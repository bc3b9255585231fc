package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/influencer-matcher/internal/export"
	"github.com/sells-group/influencer-matcher/internal/source"
	"github.com/sells-group/influencer-matcher/internal/verify"
)

var (
	batchFile   string
	batchOut    string
	batchFormat string
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Verify an assignment list and write a report",
	Long:  "Reads a CSV or XLSX list with name and product columns, verifies every row against the collaboration history, and writes the outcomes in input order.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initMatcher(ctx, cfg, "match")
		if err != nil {
			return err
		}

		pairs, err := source.ReadAssignments(ctx, batchFile)
		if err != nil {
			return eris.Wrap(err, "batch")
		}

		format := cfg.Export.Format
		if batchFormat != "" {
			format = batchFormat
		}
		f, err := export.ParseFormat(format)
		if err != nil {
			return err
		}

		res := env.Engine.VerifyBatch(pairs)

		out := batchOut
		if out == "" {
			out = filepath.Join(cfg.Export.Dir, export.FileName(res.RunID, f))
		}
		if err := export.WriteFile(out, f, res.Outcomes); err != nil {
			return eris.Wrap(err, "batch")
		}

		formatBatchSummary(os.Stdout, res, out)
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "assignment list (.csv or .xlsx)")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "report path (default <export.dir>/verification_<run-id>.<format>)")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "report format: xlsx or csv (default from config)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

func formatBatchSummary(out io.Writer, res verify.BatchResult, path string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Run:\t%s\n", res.RunID)
	_, _ = fmt.Fprintf(w, "Total:\t%d\n", res.Stats.Total)
	_, _ = fmt.Fprintf(w, "Verified:\t%d\n", res.Stats.Verified)
	_, _ = fmt.Fprintf(w, "Mismatches:\t%d\n", res.Stats.Mismatches)
	_, _ = fmt.Fprintf(w, "No products:\t%d\n", res.Stats.NoProducts)
	_, _ = fmt.Fprintf(w, "No data:\t%d\n", res.Stats.NoData)
	_, _ = fmt.Fprintf(w, "Malformed rows:\t%d\n", res.Stats.Malformed)
	_, _ = fmt.Fprintf(w, "Report:\t%s\n", path)
	_ = w.Flush()
}
