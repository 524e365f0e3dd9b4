package valuation

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/guttosm/valuelens/internal/backend"
	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/shopspring/decimal"
)

type staticInput string

func (s staticInput) Value() string { return string(s) }

type recordingView struct {
	loading   []bool
	alert     string
	errMsg    string
	dashboard *Dashboard
}

func (v *recordingView) SetLoading(b bool)         { v.loading = append(v.loading, b) }
func (v *recordingView) Alert(msg string)          { v.alert = msg }
func (v *recordingView) ShowError(msg string)      { v.errMsg = msg }
func (v *recordingView) ShowDashboard(d Dashboard) { v.dashboard = &d }

type stubSource struct {
	series   *models.CashFlowSeries
	val      *models.ValuationResult
	fcfErr   error
	valErr   error
	fcfDelay time.Duration
	valDelay time.Duration
	calls    atomic.Int32
	settled  atomic.Int32
}

func (s *stubSource) CashFlow(ctx context.Context, _ string) (*models.CashFlowSeries, error) {
	s.calls.Add(1)
	defer s.settled.Add(1)
	time.Sleep(s.fcfDelay)
	return s.series, s.fcfErr
}

func (s *stubSource) Valuation(ctx context.Context, _ string) (*models.ValuationResult, error) {
	s.calls.Add(1)
	defer s.settled.Add(1)
	time.Sleep(s.valDelay)
	return s.val, s.valErr
}

func aaplSeries() *models.CashFlowSeries {
	return &models.CashFlowSeries{Ticker: "AAPL", FreeCashFlow: []models.CashFlowPoint{
		{Period: "2023", Amount: decimal.NewFromInt(1000000)},
	}}
}

func aaplValuation(price, intrinsic int64) *models.ValuationResult {
	return &models.ValuationResult{
		Ticker:         "AAPL",
		CurrentPrice:   decimal.NewFromInt(price),
		IntrinsicValue: decimal.NewFromInt(intrinsic),
		Assumptions: models.Assumptions{
			ProjectedGrowthRate: decimal.RequireFromString("0.08"),
			WACC:                decimal.RequireFromString("0.09"),
			PerpetualGrowth:     decimal.RequireFromString("0.025"),
		},
	}
}

func TestRun_EmptyTickerAlertsWithoutRequests(t *testing.T) {
	for _, in := range []string{"", "   "} {
		src := &stubSource{}
		view := &recordingView{}
		err := NewFetcher(src, staticInput(in), view).Run(context.Background())

		if !errors.Is(err, ErrEmptyTicker) {
			t.Fatalf("want ErrEmptyTicker, got %v", err)
		}
		if view.alert != MsgEmptyTicker {
			t.Fatalf("alert=%q", view.alert)
		}
		if src.calls.Load() != 0 {
			t.Fatalf("expected no backend calls, got %d", src.calls.Load())
		}
		if len(view.loading) != 0 || view.dashboard != nil || view.errMsg != "" {
			t.Fatalf("unexpected view state: %+v", view)
		}
	}
}

func TestRun_SuccessRendersBuyDashboard(t *testing.T) {
	src := &stubSource{series: aaplSeries(), val: aaplValuation(150, 200)}
	view := &recordingView{}

	if err := NewFetcher(src, staticInput(" AAPL "), view).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(view.loading) != 2 || !view.loading[0] || view.loading[1] {
		t.Fatalf("loading transitions=%v, want [true false]", view.loading)
	}
	d := view.dashboard
	if d == nil {
		t.Fatalf("dashboard not rendered")
	}
	if d.Verdict.Label != "UNDERVALUED (BUY)" || d.Verdict.Color != "#4caf50" {
		t.Fatalf("unexpected verdict %+v", d.Verdict)
	}
	if d.Upside == nil || d.Upside.StringFixed(2) != "33.33" {
		t.Fatalf("unexpected upside %v", d.Upside)
	}
	if len(d.CashFlow) != 1 || d.CashFlow[0].Period != "2023" {
		t.Fatalf("unexpected cash flow %+v", d.CashFlow)
	}
}

func TestRun_VerdictBoundary(t *testing.T) {
	cases := []struct {
		name             string
		price, intrinsic int64
		want             Verdict
	}{
		{"undervalued", 150, 200, VerdictBuy},
		{"overvalued", 200, 150, VerdictSell},
		{"equal is sell", 150, 150, VerdictSell},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := &recordingView{}
			src := &stubSource{series: aaplSeries(), val: aaplValuation(tc.price, tc.intrinsic)}
			if err := NewFetcher(src, staticInput("AAPL"), view).Run(context.Background()); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if view.dashboard.Verdict != tc.want {
				t.Fatalf("verdict=%+v, want %+v", view.dashboard.Verdict, tc.want)
			}
		})
	}
}

func TestRun_FailureRendersOnlyError(t *testing.T) {
	notFound := &backend.APIError{Endpoint: backend.EndpointFCF, StatusCode: 404, Detail: "No cash flow data found for this ticker."}
	valDown := &backend.APIError{Endpoint: backend.EndpointValuation, StatusCode: 500, Detail: "model failed"}

	cases := []struct {
		name string
		src  *stubSource
		want string
	}{
		{
			name: "fcf api error",
			src:  &stubSource{fcfErr: notFound, val: aaplValuation(1, 2)},
			want: "Error: No cash flow data found for this ticker.",
		},
		{
			name: "valuation api error",
			src:  &stubSource{series: aaplSeries(), valErr: valDown},
			want: "Error: model failed",
		},
		{
			name: "both fail, cash flow reported even if it settles last",
			src:  &stubSource{fcfErr: notFound, valErr: valDown, fcfDelay: 30 * time.Millisecond},
			want: "Error: No cash flow data found for this ticker.",
		},
		{
			name: "transport failure",
			src:  &stubSource{series: aaplSeries(), valErr: errors.New("dial tcp: connection refused")},
			want: MsgConnectFailed,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view := &recordingView{}
			err := NewFetcher(tc.src, staticInput("AAPL"), view).Run(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			if view.dashboard != nil {
				t.Fatalf("partial dashboard rendered")
			}
			if view.errMsg != tc.want {
				t.Fatalf("error message=%q, want %q", view.errMsg, tc.want)
			}
			if len(view.loading) != 2 || view.loading[1] {
				t.Fatalf("loading not cleared: %v", view.loading)
			}
		})
	}
}

func TestRun_JoinsBothRequests(t *testing.T) {
	src := &stubSource{
		fcfErr:   errors.New("boom"),
		val:      aaplValuation(1, 2),
		valDelay: 40 * time.Millisecond,
	}
	view := &recordingView{}
	_ = NewFetcher(src, staticInput("AAPL"), view).Run(context.Background())

	if got := src.settled.Load(); got != 2 {
		t.Fatalf("Run returned before both requests settled (%d settled)", got)
	}
}

func TestNewDashboard_FallsBackToRequestedTicker(t *testing.T) {
	val := aaplValuation(0, 10)
	val.Ticker = ""
	d := NewDashboard("msft", *aaplSeries(), *val)
	if d.Ticker != "msft" {
		t.Fatalf("ticker=%q", d.Ticker)
	}
	if d.Upside != nil {
		t.Fatalf("upside must be nil for a zero price")
	}
}
