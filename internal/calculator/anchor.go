package calculator

// returnAnchor pins cumulative returns to the first usable daily price.
// returns are always recomputed from raw closes against this price so
// missing months can't introduce drift
type returnAnchor struct {
	startPrice float64
}

func newReturnAnchor(obs []observation) (returnAnchor, bool) {
	if len(obs) == 0 {
		return returnAnchor{}, false
	}
	return returnAnchor{startPrice: obs[0].price}, true
}

func (a returnAnchor) cumulativeReturn(price float64) float64 {
	return price/a.startPrice - 1
}
