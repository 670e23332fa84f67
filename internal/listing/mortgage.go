package listing

import (
	"errors"
	"math"
)

// MortgageInput holds the calculator inputs shown on property pages.
type MortgageInput struct {
	Price         float64
	DownPayment   float64 // absolute amount
	AnnualRatePct float64 // e.g. 6.5 for 6.5%
	Years         int
}

// MortgageQuote is the result of an amortization calculation.
type MortgageQuote struct {
	Principal      float64
	MonthlyPayment float64
	TotalPaid      float64
	TotalInterest  float64
}

// DefaultMortgageInput seeds the calculator from a listing price:
// 20% down, 6.5% over 30 years.
func DefaultMortgageInput(price float64) MortgageInput {
	return MortgageInput{
		Price:         price,
		DownPayment:   price * 0.2,
		AnnualRatePct: 6.5,
		Years:         30,
	}
}

// Quote computes a fixed-rate monthly payment with the standard amortization
// formula. A zero rate divides the principal evenly.
func (in MortgageInput) Quote() (MortgageQuote, error) {
	if in.Price <= 0 {
		return MortgageQuote{}, errors.New("price must be positive")
	}
	if in.DownPayment < 0 || in.DownPayment > in.Price {
		return MortgageQuote{}, errors.New("down payment must be between 0 and the price")
	}
	if in.Years <= 0 {
		return MortgageQuote{}, errors.New("term must be at least one year")
	}
	if in.AnnualRatePct < 0 {
		return MortgageQuote{}, errors.New("rate cannot be negative")
	}

	principal := in.Price - in.DownPayment
	n := float64(in.Years * 12)
	r := in.AnnualRatePct / 100 / 12

	var monthly float64
	if r == 0 {
		monthly = principal / n
	} else {
		growth := math.Pow(1+r, n)
		monthly = principal * r * growth / (growth - 1)
	}

	total := monthly * n
	return MortgageQuote{
		Principal:      principal,
		MonthlyPayment: monthly,
		TotalPaid:      total,
		TotalInterest:  total - principal,
	}, nil
}
