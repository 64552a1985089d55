package repository

import (
	"encoding/json"
	"fmt"
	"growthprojection/internal/domain"
	"os"
	"strings"
)

type TickerRepository interface {
	List() ([]domain.Ticker, error)
	Search(query string) ([]domain.Ticker, error)
}

type tickerRepositoryHandler struct {
	Tickers []domain.Ticker
}

type stockListFile struct {
	Stocks []domain.Ticker `json:"stocks"`
}

// NewTickerRepository loads a {"stocks": [...]} catalog once
func NewTickerRepository(path string) (TickerRepository, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock list: %w", err)
	}

	catalog := stockListFile{}
	if err := json.Unmarshal(b, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode stock list %s: %w", path, err)
	}

	return tickerRepositoryHandler{Tickers: catalog.Stocks}, nil
}

func (h tickerRepositoryHandler) List() ([]domain.Ticker, error) {
	out := make([]domain.Ticker, len(h.Tickers))
	copy(out, h.Tickers)
	return out, nil
}

// Search matches query case-insensitively against symbol or name. an
// empty query matches nothing
func (h tickerRepositoryHandler) Search(query string) ([]domain.Ticker, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	out := []domain.Ticker{}
	if query == "" {
		return out, nil
	}

	for _, t := range h.Tickers {
		if strings.Contains(strings.ToLower(t.Symbol), query) || strings.Contains(strings.ToLower(t.Name), query) {
			out = append(out, t)
		}
	}
	return out, nil
}
