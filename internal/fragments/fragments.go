// Package fragments turns rendered marketplace markup into ordered text fragment sequences.
package fragments

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"carvaluator/internal/models"
)

// Selectors locate the fragment classes on a search results page. The class selectors match the
// full class attribute so that title spans do not also pick up the location/mileage spans, which
// carry the same classes plus a few more.
type Selectors struct {
	Card  string `json:"card"`
	Title string `json:"title"`
	Price string `json:"price"`
	Mixed string `json:"mixed"`
}

// DefaultSelectors returns the selectors for the marketplace search results layout
func DefaultSelectors() Selectors {
	return Selectors{
		Card:  `a[href*="/marketplace/item/"]`,
		Title: `span[class="x1lliihq x6ikm8r x10wlt62 x1n2onr6"]`,
		Price: `span[class="x193iq5w xeuugli x13faqbe x1vvkbs x1xmvt09 x1lliihq x1s928wv xhkezso x1gmr53x x1cpjm7i x1fgarty x1943h6x xudqn12 x676frb x1lkfr7t x1lbecb7 x1s688f xzsf02u"]`,
		Mixed: `span[class="x1lliihq x6ikm8r x10wlt62 x1n2onr6 xlyipyv xuxw1ft x1j85h84"]`,
	}
}

// Validate compiles every selector and reports the first invalid one
func (s Selectors) Validate() error {
	named := []struct{ name, sel string }{
		{"card", s.Card},
		{"title", s.Title},
		{"price", s.Price},
		{"mixed", s.Mixed},
	}
	for _, n := range named {
		name, sel := n.name, n.sel
		if sel == "" {
			return fmt.Errorf("%s selector is empty", name)
		}
		if _, err := cascadia.Compile(sel); err != nil {
			return fmt.Errorf("invalid %s selector %q: %w", name, sel, err)
		}
	}
	return nil
}

var itemIDPattern = regexp.MustCompile(`/marketplace/item/(\d+)`)

func parse(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse markup: %w", err)
	}
	return doc, nil
}

func texts(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

// Extract returns the trimmed text of every element matching selector, in document order
func Extract(markup, selector string) ([]string, error) {
	if _, err := cascadia.Compile(selector); err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	doc, err := parse(markup)
	if err != nil {
		return nil, err
	}
	return texts(doc.Find(selector)), nil
}

// ExtractPage returns the three page-wide fragment sequences
func ExtractPage(markup string, sels Selectors) (models.Fragments, error) {
	if err := sels.Validate(); err != nil {
		return models.Fragments{}, err
	}
	doc, err := parse(markup)
	if err != nil {
		return models.Fragments{}, err
	}

	return models.Fragments{
		Titles: texts(doc.Find(sels.Title)),
		Prices: texts(doc.Find(sels.Price)),
		Mixed:  texts(doc.Find(sels.Mixed)),
	}, nil
}

// ExtractListings groups fragments by listing card, keyed by the card's position on the page
func ExtractListings(markup string, sels Selectors) ([]models.Listing, error) {
	if err := sels.Validate(); err != nil {
		return nil, err
	}
	doc, err := parse(markup)
	if err != nil {
		return nil, err
	}

	var listings []models.Listing
	doc.Find(sels.Card).Each(func(i int, card *goquery.Selection) {
		l := models.Listing{
			Index: i,
			Title: strings.TrimSpace(card.Find(sels.Title).First().Text()),
			Price: strings.TrimSpace(card.Find(sels.Price).First().Text()),
			Mixed: texts(card.Find(sels.Mixed)),
		}
		if href, ok := card.Attr("href"); ok {
			if m := itemIDPattern.FindStringSubmatch(href); len(m) > 1 {
				l.ItemID = m[1]
			}
		}
		listings = append(listings, l)
	})

	return listings, nil
}

// Extractor binds a selector set for callers that take an interface
type Extractor struct {
	Selectors Selectors
}

// NewExtractor returns an Extractor with the default selectors
func NewExtractor() *Extractor {
	return &Extractor{Selectors: DefaultSelectors()}
}

// Page returns page-wide fragment sequences
func (e *Extractor) Page(markup string) (models.Fragments, error) {
	return ExtractPage(markup, e.Selectors)
}

// Listings returns per-card fragments
func (e *Extractor) Listings(markup string) ([]models.Listing, error) {
	return ExtractListings(markup, e.Selectors)
}
