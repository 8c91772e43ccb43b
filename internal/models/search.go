package models

// SearchQuery describes the vehicle being valued and the marketplace search around it
type SearchQuery struct {
	City         string `json:"city" binding:"required"`
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"required"`
	Transmission string `json:"transmission"`
	Mileage      int    `json:"mileage" binding:"min=0"`

	// Marketplace search filters
	MinPrice   int `json:"minPrice,omitempty"`
	MaxPrice   int `json:"maxPrice,omitempty"`
	MinMileage int `json:"minMileage,omitempty"`
	MaxMileage int `json:"maxMileage,omitempty"`
	MinYear    int `json:"minYear,omitempty"`
	MaxYear    int `json:"maxYear,omitempty"`
	DaysListed int `json:"daysListed,omitempty"`
}

// GenerationRange is an inclusive model-year range sharing one platform
type GenerationRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether year falls inside the range, bounds included
func (g GenerationRange) Contains(year int) bool {
	return year >= g.Start && year <= g.End
}

// Estimate is the result of one valuation run
type Estimate struct {
	Query            SearchQuery     `json:"query"`
	Generation       GenerationRange `json:"generation"`
	GenerationSource string          `json:"generationSource"` // "llm" or "fallback"

	// Signals are nil when they could not be computed
	RegressionPrice *float64 `json:"regressionPrice,omitempty"`
	AveragePrice    *float64 `json:"averagePrice,omitempty"`
	FinalPrice      float64  `json:"finalPrice"`

	VehiclesFound int    `json:"vehiclesFound"`
	Comparables   int    `json:"comparables"`
	WindowCount   int    `json:"windowCount"`
	Insights      string `json:"insights,omitempty"`

	Records []VehicleRecord `json:"records"`
}
