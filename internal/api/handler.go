package api

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/valuelens/internal/backend"
	"github.com/guttosm/valuelens/internal/domain/dto"
	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/guttosm/valuelens/internal/logger"
	"github.com/guttosm/valuelens/internal/middleware"
	"github.com/guttosm/valuelens/internal/render"
	"github.com/guttosm/valuelens/internal/suggest"
	"github.com/guttosm/valuelens/internal/valuation"
)

// Backend is everything the handlers need from the valuation backend.
// *backend.Client satisfies it.
type Backend interface {
	valuation.Source
	suggest.Searcher
}

// Handler provides the HTTP handlers of the dashboard.
//
// Responsibilities:
//   - Adapt query parameters to the valuation and suggestion flows
//   - Render the outcome as HTML, JSON or a chart page
//   - Map backend failures onto HTTP status codes
type Handler struct {
	backend  Backend
	html     *render.HTML
	minChars int
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - be (Backend): the valuation backend.
//   - html (*render.HTML): parsed page templates.
//   - minChars (int): shortest query that triggers a search.
func NewHandler(be Backend, html *render.HTML, minChars int) *Handler {
	if minChars < 1 {
		minChars = suggest.DefaultMinChars
	}
	return &Handler{backend: be, html: html, minChars: minChars}
}

// Index handles GET /.
//
// Without a ticker parameter it renders the empty dashboard page. With one
// (even empty) it runs a lookup first and renders the alert, the error message
// or the dashboard into the page.
func (h *Handler) Index(c *gin.Context) {
	ticker, present := c.GetQuery("ticker")
	view := &render.PageView{}
	if present {
		_ = valuation.NewFetcher(h.backend, render.TextInput(ticker), view).Run(c.Request.Context())
	}

	var buf bytes.Buffer
	if err := h.html.Page(&buf, render.PageData{Ticker: strings.TrimSpace(ticker), MinChars: h.minChars, View: view}); err != nil {
		logger.L().Error().Err(err).Msg("render index failed")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to render page", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GetValuation handles GET /api/v1/valuation requests.
//
// Query Parameters:
//   - ticker (string, required): Stock ticker symbol (e.g., "AAPL").
//
// Responses:
//   - 200 OK: DashboardResponse with verdict and cash-flow history.
//   - 400 Bad Request: Missing ticker.
//   - 502 Bad Gateway: The backend rejected the lookup or could not be reached.
//
// GetValuation godoc
// @Summary      Get valuation dashboard by ticker
// @Description  Fetches free cash flow and valuation from the backend in parallel and returns the merged dashboard
// @Tags         valuation
// @Produce      json
// @Param        ticker  query     string  true  "Stock ticker" example(AAPL)
// @Success      200     {object}  dto.DashboardResponse  "Success"
// @Failure      400     {object}  dto.ErrorResponse      "Bad Request"
// @Failure      502     {object}  dto.ErrorResponse      "Backend failure"
// @Router       /api/v1/valuation [get]
func (h *Handler) GetValuation(c *gin.Context) {
	view := &render.PageView{}
	err := valuation.NewFetcher(h.backend, render.TextInput(c.Query("ticker")), view).Run(c.Request.Context())

	switch {
	case errors.Is(err, valuation.ErrEmptyTicker):
		middleware.AbortWithError(c, http.StatusBadRequest, view.AlertMsg, err)
	case err != nil:
		middleware.AbortWithError(c, http.StatusBadGateway, view.ErrorMsg, err)
	default:
		c.JSON(http.StatusOK, dto.NewDashboardResponse(*view.Dashboard))
	}
}

// Search handles GET /api/v1/search requests.
//
// Short queries and backend failures both answer an empty list, exactly as the
// dropdown would simply stay hidden.
//
// Search godoc
// @Summary      Ticker type-ahead
// @Description  Returns ticker matches for a prefix; fewer than the minimum characters yields no results
// @Tags         search
// @Produce      json
// @Param        q    query     string  true  "Typed text" example(AP)
// @Success      200  {object}  dto.SearchResponse  "Success"
// @Router       /api/v1/search [get]
func (h *Handler) Search(c *gin.Context) {
	q := c.Query("q")
	col := &collectView{}
	suggest.NewFetcher(h.backend, col, col, h.minChars).OnInput(c.Request.Context(), q)

	results := make([]models.SuggestionItem, 0, len(col.rows))
	for _, r := range col.rows {
		results = append(results, r.Item)
	}
	c.JSON(http.StatusOK, dto.SearchResponse{Query: q, Results: results})
}

// FCFChart handles GET /chart/fcf and renders the free-cash-flow bar chart.
//
// FCFChart godoc
// @Summary      Free cash flow chart
// @Tags         valuation
// @Produce      html
// @Param        ticker  query     string  true  "Stock ticker" example(AAPL)
// @Success      200     {string}  string             "HTML page"
// @Failure      400     {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404     {object}  dto.ErrorResponse  "No cash flow data"
// @Failure      502     {object}  dto.ErrorResponse  "Backend failure"
// @Router       /chart/fcf [get]
func (h *Handler) FCFChart(c *gin.Context) {
	ticker := strings.TrimSpace(c.Query("ticker"))
	if ticker == "" {
		middleware.AbortWithError(c, http.StatusBadRequest, valuation.MsgEmptyTicker, valuation.ErrEmptyTicker)
		return
	}

	series, err := h.backend.CashFlow(c.Request.Context(), ticker)
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
		}
		middleware.AbortWithError(c, status, valuation.Message(err), err)
		return
	}

	var buf bytes.Buffer
	if err := render.FCFChart(&buf, *series); err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to render chart", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// collectView keeps the last rows shown; it is both the View and the Input of
// a one-shot suggestion run.
type collectView struct {
	rows []suggest.Row
}

func (v *collectView) Show(rows []suggest.Row) { v.rows = rows }
func (v *collectView) Hide()                   { v.rows = nil }
func (v *collectView) SetValue(string)         {}
