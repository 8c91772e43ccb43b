package llm

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"text/template"
)

// ErrUnknownKind is returned for a kind missing from the prompt table
var ErrUnknownKind = errors.New("unknown prompt kind")

// Kind names one prompt template
type Kind string

const (
	KindGeneration     Kind = "vehicle_generation"
	KindPriceAnalysis  Kind = "price_analysis"
	KindMarketInsights Kind = "market_insights"
)

// Example is a static user/assistant pair sent ahead of the real question
type Example struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Template is one entry of the prompt table
type Template struct {
	System      string    `json:"system"`
	User        string    `json:"user"`
	Examples    []Example `json:"examples"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"maxTokens"`

	// Context is appended to the system prompt when extra context is requested, and
	// swaps in the context budget below
	Context            string  `json:"context"`
	ContextTemperature float64 `json:"contextTemperature"`
	ContextMaxTokens   int     `json:"contextMaxTokens"`
}

// Vars fills a template's user message
type Vars struct {
	Year    int
	Make    string
	Model   string
	Mileage int
	City    string
}

// Message is one turn of a prompt
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Prompt is a fully rendered request
type Prompt struct {
	Kind        Kind      `json:"kind"`
	System      string    `json:"system"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"maxTokens"`
}

// BuildOptions changes how a template is rendered
type BuildOptions struct {
	IncludeContext bool
	Temperature    *float64 // overrides the template temperature
}

var templates = map[Kind]Template{
	KindGeneration: {
		System: "You are an automotive historian. You know the production generations of every " +
			"mainstream passenger vehicle sold in North America. You answer with a model year range only.",
		User: "Which model years make up the generation of the {{.Year}} {{.Make}} {{.Model}}? " +
			"Answer only with the range in the format YYYY-YYYY.",
		Examples: []Example{
			{User: "Which model years make up the generation of the 2005 toyota corolla? Answer only with the range in the format YYYY-YYYY.", Assistant: "2003-2008"},
			{User: "Which model years make up the generation of the 2010 honda civic? Answer only with the range in the format YYYY-YYYY.", Assistant: "2006-2011"},
			{User: "Which model years make up the generation of the 2017 ford f-150? Answer only with the range in the format YYYY-YYYY.", Assistant: "2015-2020"},
		},
		Temperature: 0.1,
		MaxTokens:   20,
		Context: "Use the model years of the North American market. When a mid-cycle refresh " +
			"did not change the platform, treat it as the same generation.",
		ContextTemperature: 0.0,
		ContextMaxTokens:   40,
	},
	KindPriceAnalysis: {
		System: "You are a used vehicle pricing analyst for private-sale marketplaces. " +
			"You explain what drives the price of a specific vehicle in plain language.",
		User: "Give a short price analysis for a {{.Year}} {{.Make}} {{.Model}} with {{.Mileage}} km " +
			"listed in {{.City}}. Mention depreciation, mileage and anything typical of this model.",
		Examples: []Example{
			{
				User:      "Give a short price analysis for a 2010 honda civic with 150000 km listed in toronto. Mention depreciation, mileage and anything typical of this model.",
				Assistant: "At 150,000 km a 2010 Civic is past its steepest depreciation. Prices are driven mostly by condition and maintenance records; the 1.8L engine is durable, so well kept examples hold value better than most compacts of the same age.",
			},
		},
		Temperature: 0.3,
		MaxTokens:   300,
		Context: "Consider seasonal demand, regional road salt exposure, and the share of " +
			"private-sale versus dealer listings in the city.",
		ContextTemperature: 0.2,
		ContextMaxTokens:   500,
	},
	KindMarketInsights: {
		System: "You are a market analyst covering used vehicle supply and demand in Canadian cities.",
		User:   "Describe the current used market for the {{.Make}} {{.Model}} in {{.City}}.",
		Examples: []Example{
			{
				User:      "Describe the current used market for the ford f-150 in edmonton.",
				Assistant: "Supply is deep and turnover is fast. Trucks with the 3.5L EcoBoost and 4x4 command a premium, and winter months see the strongest demand.",
			},
		},
		Temperature: 0.5,
		MaxTokens:   400,
		Context: "Cover typical listing volume, trims that sell fastest, and how local " +
			"climate and industry affect demand.",
		ContextTemperature: 0.4,
		ContextMaxTokens:   700,
	},
}

// Kinds lists the available templates in a stable order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(templates))
	for k := range templates {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Lookup returns the template for kind
func Lookup(kind Kind) (Template, error) {
	t, ok := templates[kind]
	if !ok {
		return Template{}, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return t, nil
}

// Build renders the template for kind with vars
func Build(kind Kind, vars Vars, opts BuildOptions) (Prompt, error) {
	t, err := Lookup(kind)
	if err != nil {
		return Prompt{}, err
	}

	tmpl, err := template.New(string(kind)).Parse(t.User)
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to parse %s template: %w", kind, err)
	}
	var user bytes.Buffer
	if err := tmpl.Execute(&user, vars); err != nil {
		return Prompt{}, fmt.Errorf("failed to render %s template: %w", kind, err)
	}

	p := Prompt{
		Kind:        kind,
		System:      t.System,
		Temperature: t.Temperature,
		MaxTokens:   t.MaxTokens,
	}
	if opts.IncludeContext {
		p.System += "\n\n" + t.Context
		p.Temperature = t.ContextTemperature
		p.MaxTokens = t.ContextMaxTokens
	}
	if opts.Temperature != nil {
		p.Temperature = *opts.Temperature
	}

	for _, ex := range t.Examples {
		p.Messages = append(p.Messages,
			Message{Role: "user", Content: ex.User},
			Message{Role: "assistant", Content: ex.Assistant},
		)
	}
	p.Messages = append(p.Messages, Message{Role: "user", Content: user.String()})

	return p, nil
}
