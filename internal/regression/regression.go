// Package regression fits a one-variable ordinary least squares line (price against mileage).
package regression

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientData = errors.New("regression needs at least 2 points")
	ErrLengthMismatch   = errors.New("x and y must have the same length")
	ErrDegenerate       = errors.New("all x values are equal")
)

// Model is a fitted line y = Intercept + Slope*x
type Model struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	Points    int     `json:"points"`
}

// Fit computes the least squares line through (x[i], y[i])
func Fit(x, y []float64) (*Model, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientData, len(x))
	}

	n := float64(len(x))
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, sxy float64
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}
	if sxx == 0 {
		return nil, ErrDegenerate
	}

	slope := sxy / sxx
	return &Model{
		Intercept: meanY - slope*meanX,
		Slope:     slope,
		Points:    len(x),
	}, nil
}

// Predict evaluates the line at x
func (m *Model) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}

// Regressor is the fit-then-predict collaborator the valuation service depends on
type Regressor interface {
	FitPredict(x, y []float64, at float64) (float64, error)
}

// OLS implements Regressor with Fit
type OLS struct{}

// FitPredict fits x/y and predicts at the given x
func (OLS) FitPredict(x, y []float64, at float64) (float64, error) {
	m, err := Fit(x, y)
	if err != nil {
		return 0, err
	}
	return m.Predict(at), nil
}
