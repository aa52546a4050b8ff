// Package stream serves plot computations over websockets. A client sends
// one JSON plot.Request and receives one message per finished row.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"mad-fractals/internal/core"
	"mad-fractals/internal/plot"
)

// Message types.
const (
	TypeRow   = "row"
	TypeDone  = "done"
	TypeError = "error"
)

// Message is the envelope of every server-to-client frame.
type Message struct {
	Type    string `json:"type"`
	Row     int    `json:"row"`
	Classes []int  `json:"classes,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrRemote wraps an error reported by the server.
var ErrRemote = errors.New("remote computation failed")

// Options configure the websocket handler.
type Options struct {
	// OriginPatterns lists the cross-origin hosts allowed to connect.
	OriginPatterns []string
}

type handler struct {
	opts Options
}

// NewHandler returns the websocket endpoint.
func NewHandler(opts Options) http.Handler {
	return &handler{opts: opts}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.opts.OriginPatterns})
	if err != nil {
		log.Printf("stream: accept: %v", err)
		return
	}
	defer c.CloseNow()

	if err := serve(r.Context(), c); err != nil {
		log.Printf("stream: %s: %v", r.RemoteAddr, err)
		return
	}
	c.Close(websocket.StatusNormalClosure, "")
}

func serve(ctx context.Context, c *websocket.Conn) error {
	var req plot.Request
	if err := wsjson.Read(ctx, c, &req); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	if err := req.Validate(); err != nil {
		return wsjson.Write(ctx, c, Message{Type: TypeError, Error: err.Error()})
	}
	log.Printf("stream: computing %s %dx%d", req.Kind, req.Width, req.Height)

	// The client never sends again; a closed connection cancels the work.
	ctx = c.CloseRead(ctx)
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	sink := &rowWriter{
		width:  req.Width,
		cancel: cancel,
		send:   func(m Message) error { return wsjson.Write(ctx, c, m) },
	}
	err := plot.Compute(ctx, req, sink)
	switch {
	case sink.err != nil:
		return sink.err
	case ctx.Err() != nil:
		return context.Cause(ctx)
	case err != nil:
		return wsjson.Write(ctx, c, Message{Type: TypeError, Error: err.Error()})
	}
	return wsjson.Write(ctx, c, Message{Type: TypeDone, Row: req.Height})
}

// rowWriter forwards rows to the client and cancels the computation on the
// first failed write. Single-cell events are gathered into a row that is sent
// once its last column arrives; cells must come in row order.
type rowWriter struct {
	width   int
	cancel  context.CancelCauseFunc
	send    func(Message) error
	pending []int
	err     error
}

func (w *rowWriter) Plot(row, col, class int) {
	if col < 0 || col >= w.width {
		return
	}
	if w.pending == nil {
		w.pending = make([]int, w.width)
	}
	w.pending[col] = class
	if col == w.width-1 {
		w.PlotRow(row, w.pending)
	}
}

func (w *rowWriter) PlotRow(row int, classes []int) {
	if w.err != nil {
		return
	}
	if err := w.send(Message{Type: TypeRow, Row: row, Classes: classes}); err != nil {
		w.err = fmt.Errorf("write row %d: %w", row, err)
		w.cancel(w.err)
	}
}

var _ core.RowPlotter = (*rowWriter)(nil)

// Fetch runs req on the server at url and collects the streamed rows.
func Fetch(ctx context.Context, url string, req plot.Request) (*core.Grid, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	defer c.CloseNow()
	c.SetReadLimit(1 << 24)

	if err := wsjson.Write(ctx, c, req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	grid := core.NewGrid(req.Width, req.Height)
	for {
		var msg Message
		if err := wsjson.Read(ctx, c, &msg); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		switch msg.Type {
		case TypeRow:
			grid.PlotRow(msg.Row, msg.Classes)
		case TypeDone:
			c.Close(websocket.StatusNormalClosure, "")
			return grid, nil
		case TypeError:
			return nil, fmt.Errorf("%w: %s", ErrRemote, msg.Error)
		default:
			return nil, fmt.Errorf("unexpected message type %q", msg.Type)
		}
	}
}
