package preview

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/specialistvlad/querygrid/internal/compiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	server "github.com/zishang520/socket.io/v2/socket"
)

func TestOptions_WithDefaults(t *testing.T) {
	t.Parallel()

	opts, parsed, err := Options{URL: "http://localhost:3000/socket.io/"}.withDefaults()
	require.NoError(t, err)
	assert.Equal(t, "/", opts.Namespace)
	assert.Equal(t, DefaultEvent, opts.Event)
	assert.Equal(t, DefaultTimeout, opts.Timeout)
	assert.Equal(t, "localhost:3000", parsed.Host)
	assert.Equal(t, "/socket.io/", parsed.Path)

	opts, _, err = Options{URL: "wss://preview.example", Namespace: "/editor", Event: "q", Timeout: time.Second}.withDefaults()
	require.NoError(t, err)
	assert.Equal(t, "/editor", opts.Namespace)
	assert.Equal(t, "q", opts.Event)
	assert.Equal(t, time.Second, opts.Timeout)
}

func TestOptions_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "empty", url: "", wantErr: "preview URL is required"},
		{name: "bad scheme", url: "ftp://host", wantErr: `unsupported preview URL scheme "ftp"`},
		{name: "no host", url: "http:///path", wantErr: "has no host"},
		{name: "unparseable", url: "http://[::1", wantErr: "failed to parse preview URL"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := Options{URL: tc.url}.withDefaults()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDial_RejectsInvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := Dial(context.Background(), Options{URL: "mailto:someone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported preview URL scheme")
}

// newPreviewServer starts an in-process socket.io server and returns its URL
// together with a channel receiving every argument list sent as event.
func newPreviewServer(t *testing.T, event string) (string, <-chan []any) {
	t.Helper()
	return startPreviewServer(t, event, httptest.NewServer)
}

func startPreviewServer(t *testing.T, event string, start func(http.Handler) *httptest.Server) (string, <-chan []any) {
	t.Helper()

	received := make(chan []any, 4)
	io := server.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*server.Socket)
		client.On(event, func(args ...any) {
			received <- args
		})
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", io.ServeHandler(nil))
	srv := start(mux)
	t.Cleanup(func() {
		io.Close(nil)
		srv.Close()
	})
	return srv.URL + "/socket.io/", received
}

func TestPublisher_PublishesToServer(t *testing.T) {
	url, received := newPreviewServer(t, DefaultEvent)

	pub, err := Dial(context.Background(), Options{URL: url, Timeout: 5 * time.Second})
	require.NoError(t, err)

	res := &compiler.Result{Text: "MATCH (n1)\nRETURN DISTINCT n1", Errors: []string{}, Warnings: []string{"w"}}
	require.NoError(t, pub.Publish(context.Background(), "graph.hcl", res))

	select {
	case args := <-received:
		require.Len(t, args, 1)
		payload, ok := args[0].(map[string]any)
		require.True(t, ok, "payload is %T", args[0])
		assert.Equal(t, "graph.hcl", payload["source"])
		result, ok := payload["result"].(map[string]any)
		require.True(t, ok, "result is %T", payload["result"])
		assert.Equal(t, res.Text, result["text"])
		assert.Equal(t, []any{"w"}, result["warnings"])
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive the compiled query")
	}

	assert.NoError(t, pub.Close())
}

func TestPublisher_PublishHonoursCancelledContext(t *testing.T) {
	url, received := newPreviewServer(t, DefaultEvent)

	pub, err := Dial(context.Background(), Options{URL: url, Timeout: 5 * time.Second})
	require.NoError(t, err)
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.Publish(ctx, "graph.hcl", &compiler.Result{}), context.Canceled)

	select {
	case <-received:
		t.Fatal("nothing should be published after cancellation")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestDial_SelfSignedTLS(t *testing.T) {
	url, received := startPreviewServer(t, "tls:event", httptest.NewTLSServer)

	pub, err := Dial(context.Background(), Options{URL: url, Event: "tls:event", Timeout: 5 * time.Second, InsecureSkipVerify: true})
	require.NoError(t, err)
	defer pub.Close()

	require.NoError(t, pub.Publish(context.Background(), "tls.hcl", &compiler.Result{Text: "RETURN DISTINCT n"}))
	select {
	case args := <-received:
		require.NotEmpty(t, args)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not receive the compiled query over TLS")
	}
}

func TestDial_UnreachableServer(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = Dial(context.Background(), Options{URL: "http://" + addr, Timeout: 2 * time.Second})
	require.Error(t, err)
	assert.Regexp(t, "preview connection failed|timed out after 2s", err.Error())
}

func TestConnectError(t *testing.T) {
	t.Parallel()

	assert.EqualError(t, connectError(nil), "connect_error without details")
	assert.EqualError(t, connectError([]any{nil}), "connect_error without details")
	assert.EqualError(t, connectError([]any{errors.New("refused")}), "refused")
	assert.EqualError(t, connectError([]any{map[string]any{"message": "nope"}}), "map[message:nope]")
}
