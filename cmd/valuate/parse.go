package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carvaluator/internal/export"
	"carvaluator/internal/extract"
	"carvaluator/internal/fragments"
)

var (
	parseMake   string
	parseModel  string
	parseKeyed  bool
	parseOut    string
	parseAll    bool
	parseFormat string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.html>",
	Short: "Extract vehicle records from a saved search page",
	Long:  "Run the extraction pipeline on saved markup without launching a browser.",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseMake, "make", "", "Vehicle make to match in titles (required)")
	parseCmd.Flags().StringVar(&parseModel, "model", "", "Vehicle model to match in titles (required)")
	parseCmd.Flags().BoolVar(&parseKeyed, "keyed", false, "Group fragments per listing instead of by position")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Write records to this path instead of stdout")
	parseCmd.Flags().BoolVar(&parseAll, "unfiltered", false, "Keep records the anomaly filter would drop")
	parseCmd.Flags().StringVar(&parseFormat, "format", "csv", "stdout format: csv or json")
	_ = parseCmd.MarkFlagRequired("make")
	_ = parseCmd.MarkFlagRequired("model")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read markup: %w", err)
	}

	opts := extract.DefaultOptions(parseMake, parseModel)
	if cfg != nil {
		opts.Matcher.YearMin, opts.Matcher.YearMax = cfg.YearMin, cfg.YearMax
		opts.Filter.PriceFloor = cfg.PriceFloor
	}

	extractor := fragments.NewExtractor()
	var result extract.Result
	if parseKeyed || (cfg != nil && cfg.Keyed()) {
		listings, err := extractor.Listings(string(data))
		if err != nil {
			return err
		}
		result, err = extract.RunListings(listings, opts)
		if err != nil {
			return err
		}
	} else {
		frags, err := extractor.Page(string(data))
		if err != nil {
			return err
		}
		result, err = extract.Run(frags, opts)
		if err != nil {
			return err
		}
	}

	for _, s := range result.Skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped #%d %q: %s\n", s.Index, s.Title, s.Reason)
	}

	records := result.Clean
	if parseAll {
		records = result.Records
	}

	if parseOut != "" {
		return export.FileExporter{Path: parseOut, WithLocation: true}.Export(records)
	}
	if parseFormat == "json" {
		return export.WriteJSON(cmd.OutOrStdout(), records)
	}
	return export.WriteCSV(cmd.OutOrStdout(), records, true)
}
