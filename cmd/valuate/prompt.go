package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"carvaluator/internal/llm"
)

var (
	promptVars    llm.Vars
	promptContext bool
)

var promptCmd = &cobra.Command{
	Use:   "prompt [kind]",
	Short: "Render a language model prompt",
	Long:  "Print the rendered prompt for a kind. Without a kind, list the available kinds.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPrompt,
}

func init() {
	f := promptCmd.Flags()
	f.IntVar(&promptVars.Year, "year", 0, "Model year")
	f.StringVar(&promptVars.Make, "make", "", "Vehicle make")
	f.StringVar(&promptVars.Model, "model", "", "Vehicle model")
	f.IntVar(&promptVars.Mileage, "mileage", 0, "Mileage in km")
	f.StringVar(&promptVars.City, "city", "", "City")
	f.BoolVar(&promptContext, "context", false, "Render the extended context variant")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, k := range llm.Kinds() {
			fmt.Fprintln(out, k)
		}
		return nil
	}

	includeContext := promptContext || (cfg != nil && cfg.LLMIncludeContext)
	p, err := llm.Build(llm.Kind(args[0]), promptVars, llm.BuildOptions{IncludeContext: includeContext})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# %s (temperature %.1f, max tokens %d)\n\n", p.Kind, p.Temperature, p.MaxTokens)
	fmt.Fprintf(out, "[system]\n%s\n", p.System)
	for _, m := range p.Messages {
		fmt.Fprintf(out, "\n[%s]\n%s\n", m.Role, m.Content)
	}
	return nil
}
