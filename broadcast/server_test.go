package broadcast

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/stretchr/testify/require"

	"github.com/alephtx/seqring/feed"
	"github.com/alephtx/seqring/ring"
)

func TestServer_StreamsPublishedTicks(t *testing.T) {
	buf := ring.NewBuffer[feed.Tick](64)
	handle, err := buf.TryAcquireWriter()
	require.NoError(t, err)

	srv := NewServer(buf, buf.Reader())
	httpSrv := httptest.NewServer(srv)
	defer httpSrv.Close()

	want := feed.Tick{
		Symbol:      feed.SymbolBTCPERP,
		BidPrice:    100,
		BidSize:     1,
		AskPrice:    101,
		AskSize:     1,
		TimestampNs: 42,
	}
	handle.Publish(want)
	handle.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	c, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer c.CloseNow()

	_, data, err := c.Read(ctx)
	require.NoError(t, err)

	var got frame
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, toFrame(want), got)
}

func TestServer_IndependentSubscribersDoNotInterfere(t *testing.T) {
	buf := ring.NewBuffer[feed.Tick](64)
	handle, err := buf.TryAcquireWriter()
	require.NoError(t, err)

	srv := NewServer(buf, buf.Reader())
	httpSrv := httptest.NewServer(srv)
	defer httpSrv.Close()
	url := "ws" + strings.TrimPrefix(httpSrv.URL, "http")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c1, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer c1.CloseNow()

	tick := feed.Tick{Symbol: feed.SymbolETHPERP, BidPrice: 10, AskPrice: 11, TimestampNs: 1}
	handle.Publish(tick)

	_, data1, err := c1.Read(ctx)
	require.NoError(t, err)
	var got1 frame
	require.NoError(t, json.Unmarshal(data1, &got1))
	require.Equal(t, toFrame(tick), got1)

	// c2 connects after the publish and clones its own reader from the
	// same base; it must still see the tick, independently of c1.
	c2, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer c2.CloseNow()

	_, data2, err := c2.Read(ctx)
	require.NoError(t, err)
	var got2 frame
	require.NoError(t, json.Unmarshal(data2, &got2))
	require.Equal(t, toFrame(tick), got2)

	handle.Release()
}
