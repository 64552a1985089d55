package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type AdditionFrequency string

const (
	AdditionFrequency_None     AdditionFrequency = "none"
	AdditionFrequency_Monthly  AdditionFrequency = "monthly"
	AdditionFrequency_Annually AdditionFrequency = "annually"
)

// NewAdditionFrequency parses the frequency from user input. an empty
// string means no periodic contributions
func NewAdditionFrequency(s string) (AdditionFrequency, error) {
	if strings.TrimSpace(s) == "" {
		return AdditionFrequency_None, nil
	}
	m := map[string]AdditionFrequency{
		"NONE":     AdditionFrequency_None,
		"MONTHLY":  AdditionFrequency_Monthly,
		"ANNUALLY": AdditionFrequency_Annually,
		"YEARLY":   AdditionFrequency_Annually,
	}
	for k, v := range m {
		if strings.EqualFold(k, strings.TrimSpace(s)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: could not convert '%s' to known addition frequency", ErrInvalidParameters, s)
}

// earliest year the price source reliably has data for
const MinStartYear = 1970

type InvestmentParameters struct {
	InitialInvestment  float64
	StartYear          int
	EndYear            int // exclusive
	AdditionAmount     float64
	AdditionFrequency  AdditionFrequency
	AdjustForInflation bool
}

// Validate rejects malformed parameters before they reach the engine.
// the engine itself assumes a valid range and never calls this
func (p InvestmentParameters) Validate() error {
	return p.validate(time.Now().UTC().Year())
}

func (p InvestmentParameters) validate(currentYear int) error {
	problems := []string{}
	if p.InitialInvestment < 0 {
		problems = append(problems, "initial investment cannot be negative")
	}
	if p.AdditionAmount < 0 {
		problems = append(problems, "additional investment amount cannot be negative")
	}
	if p.EndYear <= p.StartYear {
		problems = append(problems, "end year must be greater than start year")
	}
	if p.StartYear < MinStartYear {
		problems = append(problems, fmt.Sprintf("start year must be %d or later", MinStartYear))
	}
	if p.EndYear > currentYear+1 {
		problems = append(problems, fmt.Sprintf("end year cannot be more than %d", currentYear+1))
	}
	switch p.AdditionFrequency {
	case AdditionFrequency_None, AdditionFrequency_Monthly, AdditionFrequency_Annually:
	default:
		problems = append(problems, fmt.Sprintf("unknown addition frequency '%s'", p.AdditionFrequency))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidParameters, strings.Join(problems, "; "))
	}
	return nil
}

// InflationTable maps a year label ("2020") to that year's inflation
// rate as a fraction
type InflationTable map[string]float64

// Rate returns the inflation rate for a year. a missing year is
// reported as not found, which callers treat as 0%
func (t InflationTable) Rate(year int) (float64, bool) {
	if t == nil {
		return 0, false
	}
	rate, ok := t[strconv.Itoa(year)]
	return rate, ok
}

func (t InflationTable) Validate() error {
	for year, rate := range t {
		if _, err := strconv.Atoi(year); err != nil {
			return fmt.Errorf("invalid inflation year label '%s': %w", year, err)
		}
		if rate < 0 {
			return fmt.Errorf("inflation rate for %s cannot be negative, got %f", year, rate)
		}
	}
	return nil
}

type MonthlyDataPoint struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	Date             string  `json:"date"`
	Invested         float64 `json:"invested"`
	Total            float64 `json:"total"`
	Gains            float64 `json:"gains"`
	ReturnPercentage float64 `json:"returnPercentage"`
}

type StockResult struct {
	Symbol      string             `json:"symbol"`
	MonthlyData []MonthlyDataPoint `json:"monthlyData"`
	Summary     *Summary           `json:"summary,omitempty"`
}

func (r StockResult) Last() (MonthlyDataPoint, bool) {
	if len(r.MonthlyData) == 0 {
		return MonthlyDataPoint{}, false
	}
	return r.MonthlyData[len(r.MonthlyData)-1], true
}

type Summary struct {
	MonthsCovered        int     `json:"monthsCovered"`
	FinalInvested        float64 `json:"finalInvested"`
	FinalTotal           float64 `json:"finalTotal"`
	FinalGains           float64 `json:"finalGains"`
	ReturnPercentage     float64 `json:"returnPercentage"`
	AnnualizedVolatility float64 `json:"annualizedVolatility"`
	MaxDrawdown          float64 `json:"maxDrawdown"`
}

type ExclusionReason string

const (
	ExclusionReason_NoData         ExclusionReason = "no_data"
	ExclusionReason_NoUsableMonths ExclusionReason = "no_usable_months"
)

// SymbolOutcome is what the engine produces for a single symbol: either
// a result or the reason the symbol was left out
type SymbolOutcome struct {
	Symbol   string
	Result   *StockResult
	Excluded ExclusionReason
}
