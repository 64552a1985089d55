package domain

type DataIssueStatus string

const (
	DataIssueStatus_PartialData DataIssueStatus = "partial_data"
	DataIssueStatus_NoValidData DataIssueStatus = "no_valid_data"
	DataIssueStatus_NoData      DataIssueStatus = "no_data"
	DataIssueStatus_Error       DataIssueStatus = "error"
)

// DataIssue describes the quality of the price data fetched for a symbol
type DataIssue struct {
	Symbol         string          `json:"symbol"`
	Status         DataIssueStatus `json:"status"`
	TotalPoints    int             `json:"totalPoints,omitempty"`
	ValidPoints    int             `json:"validPoints,omitempty"`
	NullPoints     int             `json:"nullPoints,omitempty"`
	NullPercentage float64         `json:"nullPercentage,omitempty"`
	FirstValidDate string          `json:"firstValidDate,omitempty"`
	LastValidDate  string          `json:"lastValidDate,omitempty"`
	Error          string          `json:"error,omitempty"`
}

type Ticker struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
}

// Warnings accompany a successful calculation when some of the requested
// symbols were dropped or had gaps
type Warnings struct {
	InvalidSymbols  []string          `json:"invalidSymbols"`
	DataIssues      []DataIssue       `json:"dataIssues"`
	ExcludedSymbols []SymbolExclusion `json:"excludedSymbols,omitempty"`
	Message         string            `json:"message"`
}

type SymbolExclusion struct {
	Symbol string          `json:"symbol"`
	Reason ExclusionReason `json:"reason"`
}
