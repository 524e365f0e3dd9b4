package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// CashFlowPoint is one period of the free-cash-flow series.
type CashFlowPoint struct {
	Period string          `json:"period" example:"2023-09-30"`
	Amount decimal.Decimal `json:"amount"`
}

// CashFlowSeries is the body of GET /fcf/{ticker}.
//
// On the wire free_cash_flow is a JSON object keyed by period. The order in
// which the backend wrote the keys is the display order, so the object is
// decoded into a slice instead of a map.
type CashFlowSeries struct {
	Ticker       string
	FreeCashFlow []CashFlowPoint
}

type cashFlowWire struct {
	Ticker       string          `json:"ticker"`
	FreeCashFlow json.RawMessage `json:"free_cash_flow"`
}

// UnmarshalJSON decodes the series keeping free_cash_flow key order.
func (s *CashFlowSeries) UnmarshalJSON(b []byte) error {
	var w cashFlowWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	points, err := decodeOrderedAmounts(w.FreeCashFlow)
	if err != nil {
		return fmt.Errorf("free_cash_flow: %w", err)
	}
	s.Ticker = w.Ticker
	s.FreeCashFlow = points
	return nil
}

// MarshalJSON writes free_cash_flow back as an object in series order.
func (s CashFlowSeries) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"ticker":`)
	t, err := json.Marshal(s.Ticker)
	if err != nil {
		return nil, err
	}
	buf.Write(t)
	buf.WriteString(`,"free_cash_flow":{`)
	for i, p := range s.FreeCashFlow {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Period)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.WriteString(p.Amount.String())
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

func decodeOrderedAmounts(raw json.RawMessage) ([]CashFlowPoint, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var points []CashFlowPoint
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %v", tok)
		}
		var amount decimal.Decimal
		if err := dec.Decode(&amount); err != nil {
			return nil, fmt.Errorf("period %q: %w", key, err)
		}
		points = append(points, CashFlowPoint{Period: key, Amount: amount})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return points, nil
}
