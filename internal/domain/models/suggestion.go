package models

// SuggestionItem is a single ticker match returned by GET /search/{query}.
type SuggestionItem struct {
	Symbol string `json:"symbol" example:"AAPL"`
	Name   string `json:"name" example:"Apple Inc."`
}

// SearchResponse is the body of GET /search/{query}.
type SearchResponse struct {
	Results []SuggestionItem `json:"results"`
}
