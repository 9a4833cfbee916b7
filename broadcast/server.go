// Package broadcast fans a ring buffer's stream out to remote WebSocket
// subscribers, each holding an independent ring.ReaderState.
package broadcast

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/alephtx/seqring/feed"
	"github.com/alephtx/seqring/ring"
)

// Server serves a ring buffer's stream over WebSocket. Each accepted
// connection clones a reader from base, so every subscriber sees an
// independent view of the stream starting at base's position, including
// ticks published before it connected that are still admissible there.
type Server struct {
	buf      *ring.Buffer[feed.Tick]
	base     *ring.ReaderState[feed.Tick]
	pollWait time.Duration
}

// NewServer builds a Server over buf. base is the reader cursor new
// connections clone from; pass buf.Reader() to have every new subscriber
// start reading at slot 0. base itself is never advanced by the Server.
func NewServer(buf *ring.Buffer[feed.Tick], base *ring.ReaderState[feed.Tick]) *Server {
	return &Server{buf: buf, base: base, pollWait: 20 * time.Millisecond}
}

// frame is the wire shape of one tick sent to subscribers.
type frame struct {
	Symbol      feed.Symbol `json:"symbol"`
	BidPrice    float64     `json:"bid_price"`
	BidSize     float64     `json:"bid_size"`
	AskPrice    float64     `json:"ask_price"`
	AskSize     float64     `json:"ask_size"`
	TimestampNs uint64      `json:"ts_ns"`
}

func toFrame(t feed.Tick) frame {
	return frame{
		Symbol:      t.Symbol,
		BidPrice:    t.BidPrice,
		BidSize:     t.BidSize,
		AskPrice:    t.AskPrice,
		AskSize:     t.AskSize,
		TimestampNs: t.TimestampNs,
	}
}

// ServeHTTP accepts a WebSocket connection and streams ticks to it until
// the connection closes or the request context is cancelled.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("broadcast: accept: %v", err)
		return
	}
	defer c.CloseNow()

	reader := s.base.Clone()
	ctx := r.Context()

	for {
		tick, ok := reader.Pop()
		if !ok {
			select {
			case <-ctx.Done():
				_ = c.Close(websocket.StatusNormalClosure, "")
				return
			case <-time.After(s.pollWait):
				continue
			}
		}

		if err := s.write(ctx, c, tick); err != nil {
			return
		}
	}
}

func (s *Server) write(ctx context.Context, c *websocket.Conn, tick feed.Tick) error {
	b, err := json.Marshal(toFrame(tick))
	if err != nil {
		return err
	}
	if err := c.Write(ctx, websocket.MessageText, b); err != nil {
		// A disconnected subscriber just stops receiving; the caller
		// tears down this connection's loop rather than the whole server.
		return err
	}
	return nil
}
