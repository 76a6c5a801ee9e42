package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/micro/pkg/component"
	"github.com/vango-dev/micro/pkg/dom"
	"github.com/vango-dev/micro/pkg/markup"
	"github.com/vango-dev/micro/pkg/reactive"
	"github.com/vango-dev/micro/pkg/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// counterApp renders <div id="app"><div id=uuid><button id="inc">N</button></div></div>.
func counterApp(s *Session) error {
	doc := s.Document()
	app := doc.CreateElement("div")
	app.SetID("app")
	if err := doc.Body().AppendChild(app); err != nil {
		return err
	}

	count := reactive.NewSignal(0)
	c := component.New(doc, func() string {
		return markup.HTML(`<button id="inc">`, count.Get(), `</button>`)
	})
	c.AddEvent(func(*dom.Element) component.Binding {
		return component.Binding{
			Type:     "click",
			TargetID: "inc",
			Handler: func(*dom.Event) {
				count.Update(func(n int) int { return n + 1 })
			},
		}
	})
	_, err := c.Track().Render()
	return err
}

func newTestServer(t *testing.T, mount MountFunc, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	srv := New(mount, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, header http.Header) (*websocket.Conn, *http.Response) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, resp
}

func readFrame(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg ServerMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func sendFrame(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	msg.Type = FrameEvent
	require.NoError(t, conn.WriteJSON(msg))
}

func TestSessionRoundTrip(t *testing.T) {
	srv, ts := newTestServer(t, counterApp, Config{})
	conn, resp := dial(t, ts, nil)

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == ClientCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "upgrade response sets the client cookie")

	first := readFrame(t, conn)
	assert.Equal(t, FrameRender, first.Type)
	assert.Contains(t, first.HTML, `<button id="inc">0</button>`)
	assert.Equal(t, []string{"click"}, first.Events)
	assert.Equal(t, 1, srv.SessionCount())

	sendFrame(t, conn, ClientMessage{Event: "click", Path: []int{0, 0, 0}})
	next := readFrame(t, conn)
	assert.Equal(t, FrameRender, next.Type)
	assert.Contains(t, next.HTML, `<button id="inc">1</button>`)

	// Clicks on the container itself are filtered out by the binding.
	sendFrame(t, conn, ClientMessage{Event: "click", Path: []int{0, 0}})
	assert.Contains(t, readFrame(t, conn).HTML, `<button id="inc">1</button>`)
}

func TestSessionProtocolErrors(t *testing.T) {
	_, ts := newTestServer(t, counterApp, Config{})
	conn, _ := dial(t, ts, nil)
	readFrame(t, conn)

	sendFrame(t, conn, ClientMessage{Event: "click", Path: []int{4, 2}})
	frame := readFrame(t, conn)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "M009", frame.Code)
	assert.Equal(t, FrameRender, readFrame(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":`)))
	frame = readFrame(t, conn)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "M009", frame.Code)

	// Window events without listeners are accepted.
	sendFrame(t, conn, ClientMessage{Event: "keydown", Window: true, Detail: map[string]string{"key": "Escape"}})
	assert.Equal(t, FrameRender, readFrame(t, conn).Type)
}

func TestSessionInputsAndFocus(t *testing.T) {
	mount := func(s *Session) error {
		doc := s.Document()
		if err := doc.Body().SetInnerHTML(`<form id="f"><input id="name"></form><p id="out"></p>`); err != nil {
			return err
		}
		doc.GetElementByID("f").AddEventListener("submit", func(ev *dom.Event) {
			ev.PreventDefault()
			input := doc.GetElementByID("name")
			_ = doc.GetElementByID("out").SetInnerHTML(markup.Escape(input.Value()))
			input.Select()
		})
		doc.Window().AddEventListener("keydown", func(ev *dom.Event) {
			if ev.Detail["key"] == "Escape" {
				if active := doc.ActiveElement(); active != nil {
					active.Blur()
				}
			}
		})
		return nil
	}
	_, ts := newTestServer(t, mount, Config{})
	conn, _ := dial(t, ts, nil)

	first := readFrame(t, conn)
	assert.Equal(t, []string{"submit"}, first.Events)
	assert.Equal(t, []string{"keydown"}, first.WindowEvents)

	sendFrame(t, conn, ClientMessage{
		Event:  "submit",
		Path:   []int{0},
		Inputs: []InputValue{{Path: []int{0, 0}, Value: "Ada <3"}},
	})
	frame := readFrame(t, conn)
	assert.Contains(t, frame.HTML, `<p id="out">Ada &lt;3</p>`)
	assert.Contains(t, frame.HTML, `value="Ada &lt;3"`)
	assert.Equal(t, []int{0, 0}, frame.Focus)
	assert.True(t, frame.Select)

	sendFrame(t, conn, ClientMessage{Event: "keydown", Window: true, Focus: []int{0, 0}, Detail: map[string]string{"key": "Escape"}})
	frame = readFrame(t, conn)
	assert.Empty(t, frame.Focus)
	assert.False(t, frame.Select)
}

func TestSessionCycleReportsError(t *testing.T) {
	mount := func(s *Session) error {
		doc := s.Document()
		if err := doc.Body().SetInnerHTML(`<button id="b">go</button>`); err != nil {
			return err
		}
		n := reactive.NewSignal(0)
		reactive.Track(func() {
			if v := n.Get(); v > 0 {
				n.Set(v + 1)
			}
		})
		doc.GetElementByID("b").AddEventListener("click", func(*dom.Event) { n.Set(1) })
		return nil
	}
	_, ts := newTestServer(t, mount, Config{})
	conn, _ := dial(t, ts, nil)
	readFrame(t, conn)

	sendFrame(t, conn, ClientMessage{Event: "click", Path: []int{0}})
	frame := readFrame(t, conn)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "M005", frame.Code)
	assert.Equal(t, FrameRender, readFrame(t, conn).Type)
}

func TestSessionMountFailure(t *testing.T) {
	mount := func(*Session) error { return errors.New("boom") }
	_, ts := newTestServer(t, mount, Config{})
	conn, _ := dial(t, ts, nil)

	frame := readFrame(t, conn)
	assert.Equal(t, FrameError, frame.Type)
	assert.Equal(t, "boom", frame.Message)

	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestSessionStorageNamespace(t *testing.T) {
	backend := storage.NewMemoryBackend()
	mount := func(s *Session) error {
		if err := s.Storage().Register("todo"); err != nil {
			return err
		}
		return s.Storage().SetItem(s.Context(), "todo", `[]`)
	}
	_, ts := newTestServer(t, mount, Config{Backend: backend})

	header := http.Header{}
	header.Set("Cookie", ClientCookie+"=6f1c1f5e-8d3f-4b0c-9d61-0f6f6a3f2b10")
	conn, resp := dial(t, ts, header)
	assert.Empty(t, resp.Cookies(), "known client ids are kept")
	readFrame(t, conn)

	v, ok, err := backend.GetItem(context.Background(), "6f1c1f5e-8d3f-4b0c-9d61-0f6f6a3f2b10/todo")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)
}

func TestShutdownClosesSessions(t *testing.T) {
	srv, ts := newTestServer(t, counterApp, Config{})
	conn, _ := dial(t, ts, nil)
	readFrame(t, conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
	assert.Equal(t, 0, srv.SessionCount())

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "err = %v", err)

	resp, err := http.Get(ts.URL + "/ws")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestTrackAfterShutdown(t *testing.T) {
	srv, _ := newTestServer(t, counterApp, Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	sess := newSession(srv, nil, "late-client")
	assert.False(t, srv.track(sess), "no session is tracked once shutdown started")
	assert.Equal(t, 0, srv.SessionCount())
	assert.True(t, srv.shuttingDown())
}

func TestCrossOriginRejected(t *testing.T) {
	_, ts := newTestServer(t, counterApp, Config{})
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"http://example.com", true},
		{"https://example.com", true},
		{"http://example.com:8080", false},
		{"http://evil.com", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "http://example.com/ws", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := SameOriginCheck(r); got != tt.want {
			t.Errorf("SameOriginCheck(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

func TestPage(t *testing.T) {
	_, ts := newTestServer(t, counterApp, Config{
		Title: "Todos & more",
		Head:  "<style>body{margin:0}</style>",
	})

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	page := string(body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, `<div id="micro-root"></div>`)
	assert.Contains(t, page, "<title>Todos &amp; more</title>")
	assert.Contains(t, page, "<style>body{margin:0}</style>")
	assert.Contains(t, page, `<script src="/client.js" defer></script>`)
	assert.NotContains(t, page, `id="inc"`, "the shell carries no application markup")

	var found bool
	for _, c := range resp.Cookies() {
		found = found || c.Name == ClientCookie
	}
	assert.True(t, found)
}

func TestClientScript(t *testing.T) {
	_, ts := newTestServer(t, counterApp, Config{})

	resp, err := http.Get(ts.URL + "/client.js")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, clientETag, resp.Header.Get("ETag"))
	assert.Equal(t, "public, max-age=0, must-revalidate", resp.Header.Get("Cache-Control"))
	assert.Contains(t, string(body), "micro-root")

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/client.js", nil)
	req.Header.Set("If-None-Match", "W/"+clientETag)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestClientScriptDevMode(t *testing.T) {
	_, ts := newTestServer(t, counterApp, Config{DevMode: true})
	resp, err := http.Head(ts.URL + "/client.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestEtagMatches(t *testing.T) {
	etag := `"abc"`
	assert.False(t, etagMatches("", etag))
	assert.True(t, etagMatches(`"abc"`, etag))
	assert.True(t, etagMatches(`"x", W/"abc"`, etag))
	assert.True(t, etagMatches("*", etag))
	assert.False(t, etagMatches(`"abd"`, etag))
}

func TestHealthAndMetrics(t *testing.T) {
	_, ts := newTestServer(t, counterApp, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	conn, _ := dial(t, ts, nil)
	readFrame(t, conn)
	sendFrame(t, conn, ClientMessage{Event: "click", Path: []int{0, 0, 0}})
	readFrame(t, conn)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	text := string(body)
	assert.Contains(t, text, "micro_sessions_total 1")
	assert.Contains(t, text, `micro_events_total{event="click",status="ok"} 1`)
	assert.Contains(t, text, `micro_frames_sent_total{type="render"} 2`)
	assert.Contains(t, text, "go_goroutines")
}

func TestEventLabelsAreBounded(t *testing.T) {
	_, ts := newTestServer(t, counterApp, Config{})
	conn, _ := dial(t, ts, nil)
	readFrame(t, conn)

	const unknown = 25
	for i := 0; i < unknown; i++ {
		sendFrame(t, conn, ClientMessage{Event: fmt.Sprintf("made-up-%d", i), Path: []int{0, 0, 0}})
		require.Equal(t, FrameRender, readFrame(t, conn).Type)
	}
	sendFrame(t, conn, ClientMessage{Event: "made-up-window", Window: true})
	require.Equal(t, FrameRender, readFrame(t, conn).Type)
	sendFrame(t, conn, ClientMessage{Event: "click", Path: []int{0, 0, 0}})
	require.Equal(t, FrameRender, readFrame(t, conn).Type)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	text := string(body)

	var labels []string
	for _, m := range regexp.MustCompile(`micro_event[a-z_]*\{event="([^"]+)"`).FindAllStringSubmatch(text, -1) {
		if !slices.Contains(labels, m[1]) {
			labels = append(labels, m[1])
		}
	}
	slices.Sort(labels)
	assert.Equal(t, []string{"click", "other"}, labels)
	assert.Contains(t, text, fmt.Sprintf(`micro_events_total{event="other",status="ok"} %d`, unknown+1))
	assert.Contains(t, text, `micro_events_total{event="click",status="ok"} 1`)
	assert.NotContains(t, text, "made-up")
}
