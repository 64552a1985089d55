package calculator

import (
	"growthprojection/internal/domain"
	"math"
	"sort"
	"time"
)

type observation struct {
	date  time.Time
	price float64
}

type monthKey struct {
	year  int
	month time.Month
}

// monthlyPrice is the close of the last trading day seen in a month
type monthlyPrice struct {
	key   monthKey
	date  time.Time
	price float64
}

func isUsablePrice(p *float64) bool {
	return p != nil && !math.IsNaN(*p) && !math.IsInf(*p, 0) && *p > 0
}

// usableObservations drops gaps and prices that can't anchor a return,
// then sorts by date. input order isn't trusted
func usableObservations(series domain.PriceSeries) []observation {
	out := make([]observation, 0, len(series.Points))
	for _, p := range series.Points {
		if !isUsablePrice(p.Price) {
			continue
		}
		out = append(out, observation{
			date:  p.Date,
			price: *p.Price,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].date.Before(out[j].date)
	})
	return out
}

// resampleMonthly keeps the last observation of every calendar month.
// months without observations are simply absent
func resampleMonthly(obs []observation) []monthlyPrice {
	out := []monthlyPrice{}
	for _, o := range obs {
		key := monthKey{year: o.date.Year(), month: o.date.Month()}
		if len(out) > 0 && out[len(out)-1].key == key {
			out[len(out)-1].date = o.date
			out[len(out)-1].price = o.price
			continue
		}
		out = append(out, monthlyPrice{
			key:   key,
			date:  o.date,
			price: o.price,
		})
	}
	return out
}
