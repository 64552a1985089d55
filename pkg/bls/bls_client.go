package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	DefaultBaseURL = "https://api.bls.gov/publicAPI/v2/timeseries/data/"
	// CPI-U, US city average, all items, not seasonally adjusted
	CpiUSeriesID = "CUUR0000SA0"

	// api v2 serves at most 20 years per request with a key, 10 without
	maxYearsPerRequest   = 20
	maxYearsWithoutKey   = 10
	requestSucceeded     = "REQUEST_SUCCEEDED"
	decemberPeriod       = "M12"
	defaultClientTimeout = 15 * time.Second
)

type Client struct {
	HttpClient *http.Client
	BaseURL    string
	ApiKey     string
}

func NewClient(apiKey string) Client {
	return Client{
		HttpClient: &http.Client{Timeout: defaultClientTimeout},
		BaseURL:    DefaultBaseURL,
		ApiKey:     apiKey,
	}
}

type seriesRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type seriesResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message"`
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year   string `json:"year"`
				Period string `json:"period"`
				Value  string `json:"value"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

func (c Client) post(ctx context.Context, body seriesRequest) (*seriesResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
	}

	out := seriesResponse{}
	if err := json.Unmarshal(responseBytes, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bls response: %w", err)
	}
	if out.Status != requestSucceeded {
		return nil, fmt.Errorf("bls request failed with status %s: %v", out.Status, out.Message)
	}

	return &out, nil
}

// GetDecemberCpi returns the December index level for each year in
// [startYear, endYear] that has one published
func (c Client) GetDecemberCpi(ctx context.Context, seriesID string, startYear, endYear int) (map[int]float64, error) {
	step := maxYearsPerRequest
	if c.ApiKey == "" {
		step = maxYearsWithoutKey
	}

	out := map[int]float64{}
	for from := startYear; from <= endYear; from += step {
		to := from + step - 1
		if to > endYear {
			to = endYear
		}

		response, err := c.post(ctx, seriesRequest{
			SeriesID:        []string{seriesID},
			StartYear:       strconv.Itoa(from),
			EndYear:         strconv.Itoa(to),
			RegistrationKey: c.ApiKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get %s for %d-%d: %w", seriesID, from, to, err)
		}

		for _, series := range response.Results.Series {
			for _, d := range series.Data {
				if d.Period != decemberPeriod {
					continue
				}
				year, err := strconv.Atoi(d.Year)
				if err != nil {
					return nil, fmt.Errorf("invalid year %q in bls response: %w", d.Year, err)
				}
				value, err := strconv.ParseFloat(d.Value, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid value %q for %d in bls response: %w", d.Value, year, err)
				}
				out[year] = value
			}
		}
	}

	return out, nil
}

// GetAnnualInflation computes December-over-December CPI-U inflation for
// every year in [startYear, endYear] where both Decembers are published
func (c Client) GetAnnualInflation(ctx context.Context, startYear, endYear int) (map[int]float64, error) {
	levels, err := c.GetDecemberCpi(ctx, CpiUSeriesID, startYear-1, endYear)
	if err != nil {
		return nil, err
	}

	out := map[int]float64{}
	for year := startYear; year <= endYear; year++ {
		prev, ok := levels[year-1]
		if !ok || prev == 0 {
			continue
		}
		current, ok := levels[year]
		if !ok {
			continue
		}
		out[year] = current/prev - 1
	}

	return out, nil
}
