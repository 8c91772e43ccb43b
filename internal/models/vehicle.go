package models

import "strconv"

// SentinelMileage marks a listing whose mileage fragment was missing from the page.
// It is not the same thing as a car with zero mileage.
const SentinelMileage = "0K km"

// Fragments holds the three fragment sequences scraped from one search page, in document order.
// Order is the only correlation key between them.
type Fragments struct {
	Titles []string `json:"titles"`
	Prices []string `json:"prices"`
	Mixed  []string `json:"mixed"`
}

// Listing groups the fragments belonging to one listing card on the page.
// Index is the card's position in document order.
type Listing struct {
	Index  int      `json:"index"`
	Title  string   `json:"title"`
	Price  string   `json:"price"`
	Mixed  []string `json:"mixed"`
	ItemID string   `json:"itemId,omitempty"`
}

// AlignedPair is one location with the mileage token that followed it in the stream
type AlignedPair struct {
	Location     string `json:"location"`
	MileageToken string `json:"mileageToken"`
}

// IsSentinel reports whether the pair carries the placeholder mileage token
func (p AlignedPair) IsSentinel() bool {
	return p.MileageToken == SentinelMileage
}

// VehicleRecord is one extracted listing. Price is in whole currency units, Mileage in km.
type VehicleRecord struct {
	Year     int    `json:"year"`
	Make     string `json:"make"`
	Model    string `json:"model"`
	Price    int    `json:"price"`
	Mileage  int    `json:"mileage"`
	Location string `json:"location,omitempty"`
}

// CSVHeader returns the export column names
func CSVHeader(withLocation bool) []string {
	header := []string{"Year", "Make", "Model", "Price", "Mileage"}
	if withLocation {
		header = append(header, "Location")
	}
	return header
}

// CSVRow returns the record as export columns matching CSVHeader
func (v VehicleRecord) CSVRow(withLocation bool) []string {
	row := []string{
		strconv.Itoa(v.Year),
		v.Make,
		v.Model,
		strconv.Itoa(v.Price),
		strconv.Itoa(v.Mileage),
	}
	if withLocation {
		row = append(row, v.Location)
	}
	return row
}
