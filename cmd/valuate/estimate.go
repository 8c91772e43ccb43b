package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"carvaluator/internal/app"
	"carvaluator/internal/models"
	"carvaluator/internal/scraper"
	"carvaluator/internal/validation"
)

var (
	estimateQuery    models.SearchQuery
	estimateKeyed    bool
	estimateOut      string
	estimateNoLLM    bool
	estimateInsights bool
	estimateHTML     string
	estimateLocation bool
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Scrape listings and estimate a vehicle's price",
	Long: `Scrape the marketplace for the given make and model, export the filtered records to CSV
and print a price estimate combining a mileage regression with nearby listings.`,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVar(&estimateQuery.City, "city", "", "Marketplace city, e.g. calgary (required)")
	f.StringVar(&estimateQuery.Make, "make", "", "Vehicle make (required)")
	f.StringVar(&estimateQuery.Model, "model", "", "Vehicle model (required)")
	f.IntVar(&estimateQuery.Year, "year", 0, "Model year (required)")
	f.IntVar(&estimateQuery.Mileage, "mileage", 0, "Odometer reading in km")
	f.StringVar(&estimateQuery.Transmission, "transmission", "automatic", "automatic or manual")
	f.IntVar(&estimateQuery.MinPrice, "min-price", 0, "Search filter: minimum price")
	f.IntVar(&estimateQuery.MaxPrice, "max-price", 0, "Search filter: maximum price")
	f.IntVar(&estimateQuery.MinMileage, "min-mileage", 0, "Search filter: minimum mileage")
	f.IntVar(&estimateQuery.MaxMileage, "max-mileage", 0, "Search filter: maximum mileage")
	f.IntVar(&estimateQuery.MinYear, "min-year", 0, "Search filter: minimum year")
	f.IntVar(&estimateQuery.MaxYear, "max-year", 0, "Search filter: maximum year")
	f.IntVar(&estimateQuery.DaysListed, "days-listed", 0, "Search filter: listed within N days")
	f.BoolVar(&estimateKeyed, "keyed", false, "Group fragments per listing instead of by position")
	f.StringVarP(&estimateOut, "out", "o", "", "Export path (.csv or .json), defaults to EXPORT_PATH")
	f.BoolVar(&estimateNoLLM, "no-llm", false, "Skip the generation lookup and use the fallback window")
	f.BoolVar(&estimateInsights, "insights", false, "Ask the language model for a short price analysis")
	f.StringVar(&estimateHTML, "html", "", "Use a saved search page instead of launching a browser")
	f.BoolVar(&estimateLocation, "location", true, "Include the Location column in CSV exports")
	for _, name := range []string{"city", "make", "model", "year"} {
		_ = estimateCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	q := estimateQuery
	if err := validation.ValidateSearchQuery(&q); err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if cfg.ScrapeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ScrapeTimeout)
		defer cancel()
	}

	o := app.Overrides{
		Keyed:        estimateKeyed,
		DisableLLM:   estimateNoLLM,
		Insights:     estimateInsights,
		ExportPath:   estimateOut,
		WithLocation: estimateLocation,
	}
	if estimateHTML != "" {
		o.Source = scraper.FileSource{Path: estimateHTML}
	}
	application := app.New(cfg, o)
	defer application.Close()

	est, err := application.Service.Estimate(ctx, q)
	if err != nil {
		return err
	}

	printEstimate(cmd, est)
	return nil
}

func printEstimate(cmd *cobra.Command, est *models.Estimate) {
	out := cmd.OutOrStdout()
	q := est.Query
	fmt.Fprintf(out, "%d %s %s, %d km (%s)\n", q.Year, q.Make, q.Model, q.Mileage, q.City)
	fmt.Fprintf(out, "Generation:        %d-%d (%s)\n", est.Generation.Start, est.Generation.End, est.GenerationSource)
	fmt.Fprintf(out, "Vehicles found:    %d\n", est.VehiclesFound)
	fmt.Fprintf(out, "Comparables:       %d (%d within 20,000 km)\n", est.Comparables, est.WindowCount)
	if est.RegressionPrice != nil {
		fmt.Fprintf(out, "Regression price:  %.2f\n", *est.RegressionPrice)
	} else {
		fmt.Fprintln(out, "Regression price:  n/a")
	}
	if est.AveragePrice != nil {
		fmt.Fprintf(out, "Average price:     %.2f\n", *est.AveragePrice)
	} else {
		fmt.Fprintln(out, "Average price:     n/a")
	}
	fmt.Fprintf(out, "Estimated price:   %.2f\n", est.FinalPrice)
	if est.Insights != "" {
		fmt.Fprintf(out, "\n%s\n", est.Insights)
	}
}
