package domain

import (
	"sort"
	"time"
)

type AssetPrice struct {
	Symbol string
	Price  float64
	Date   time.Time
}

// PricePoint is a single daily close. a nil price is a gap
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price *float64  `json:"price"`
}

type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// NewPriceSeries converts stored prices for one symbol into a series,
// ordered by date with later duplicates winning
func NewPriceSeries(symbol string, prices []AssetPrice) PriceSeries {
	byDate := map[string]AssetPrice{}
	for _, p := range prices {
		byDate[p.Date.Format(time.DateOnly)] = p
	}

	points := make([]PricePoint, 0, len(byDate))
	for _, p := range byDate {
		price := p.Price
		points = append(points, PricePoint{
			Date:  p.Date,
			Price: &price,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return PriceSeries{
		Symbol: symbol,
		Points: points,
	}
}

func (s PriceSeries) IsEmpty() bool {
	for _, p := range s.Points {
		if p.Price != nil {
			return false
		}
	}
	return true
}
