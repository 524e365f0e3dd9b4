package api

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/guttosm/valuelens/internal/domain/models"
	"github.com/guttosm/valuelens/internal/logger"
	"github.com/guttosm/valuelens/internal/suggest"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client → server messages. A select names the list it was clicked in by
// Version and the row by Index; Value, when set, must equal that row's symbol.
type clientMessage struct {
	Type    string `json:"type"` // "input" | "select" | "dismiss"
	Value   string `json:"value,omitempty"`
	Index   int    `json:"index,omitempty"`
	Version uint64 `json:"version,omitempty"`
}

// Server → client messages. Every "suggestions" list carries a new Version.
type serverMessage struct {
	Type    string                  `json:"type"` // "suggestions" | "hide" | "value"
	Items   []models.SuggestionItem `json:"items,omitempty"`
	Value   string                  `json:"value,omitempty"`
	Version uint64                  `json:"version,omitempty"`
}

// suggestSession adapts one websocket to the suggestion ports: the browser's
// input box (suggest.Input) and its dropdown (suggest.View).
type suggestSession struct {
	conn *websocket.Conn

	mu      sync.Mutex
	rows    []suggest.Row
	version uint64
}

func (s *suggestSession) write(msg serverMessage) {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(msg); err != nil {
		logger.L().Debug().Err(err).Str("type", msg.Type).Msg("suggest socket write failed")
	}
}

func (s *suggestSession) Show(rows []suggest.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.version++
	items := make([]models.SuggestionItem, len(rows))
	for i, r := range rows {
		items[i] = r.Item
	}
	s.write(serverMessage{Type: "suggestions", Items: items, Version: s.version})
}

func (s *suggestSession) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = nil
	s.write(serverMessage{Type: "hide"})
}

func (s *suggestSession) SetValue(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.write(serverMessage{Type: "value", Value: v})
}

// selectRow activates row i of the list sent as version. A click on a list the
// server has since replaced or hidden is ignored, as is one whose symbol does
// not match the row.
func (s *suggestSession) selectRow(version uint64, i int, symbol string) {
	s.mu.Lock()
	var sel func()
	if version == s.version && i >= 0 && i < len(s.rows) &&
		(symbol == "" || symbol == s.rows[i].Item.Symbol) {
		sel = s.rows[i].Select
	}
	s.mu.Unlock()
	if sel == nil {
		logger.L().Debug().Uint64("version", version).Int("index", i).Msg("stale suggestion select ignored")
		return
	}
	sel()
}

// SuggestSocket handles GET /ws/suggest.
//
// Each "input" message is searched concurrently; the fetcher drops responses
// that a later keystroke superseded, so the client only ever sees the list for
// its latest text.
func (h *Handler) SuggestSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L().Warn().Err(err).Msg("suggest socket upgrade failed")
		return
	}
	defer conn.Close()

	sess := &suggestSession{conn: conn}
	f := suggest.NewFetcher(h.backend, sess, sess, h.minChars)

	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.L().Debug().Err(err).Msg("suggest socket closed")
			}
			return
		}
		switch msg.Type {
		case "input":
			wg.Add(1)
			go func(text string) {
				defer wg.Done()
				f.OnInput(ctx, text)
			}(msg.Value)
		case "select":
			sess.selectRow(msg.Version, msg.Index, msg.Value)
		case "dismiss":
			f.Dismiss()
		default:
			logger.L().Debug().Str("type", msg.Type).Msg("unknown suggest message")
		}
	}
}
