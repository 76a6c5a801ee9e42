package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/micro/pkg/dom"
	"github.com/vango-dev/micro/pkg/reactive"
	"github.com/vango-dev/micro/pkg/storage"
)

// Session is one browser connection and the document it mirrors.
//
// Everything that touches the document runs on the session goroutine:
// the MountFunc, every event listener and every render. Signals created
// there are owned by the session.
type Session struct {
	id       string
	clientID string
	srv      *Server
	conn     *websocket.Conn
	doc      *dom.Document
	storage  *storage.Registry
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func newSession(srv *Server, conn *websocket.Conn, clientID string) *Session {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(srv.ctx)
	logger := srv.logger.With("session_id", id, "client_id", clientID)
	return &Session{
		id:       id,
		clientID: clientID,
		srv:      srv,
		conn:     conn,
		doc:      dom.New(),
		storage:  storage.NewRegistry(srv.config.Backend, storage.WithNamespace(clientID), storage.WithLogger(logger)),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// ClientID returns the browser's persistent client id.
func (s *Session) ClientID() string { return s.clientID }

// Document returns the session's document.
func (s *Session) Document() *dom.Document { return s.doc }

// Storage returns the session's storage registry. Keys are namespaced by
// client id, so reloads of the same browser see the same items.
func (s *Session) Storage() *storage.Registry { return s.storage }

// Context is cancelled when the session ends or the server shuts down.
func (s *Session) Context() context.Context { return s.ctx }

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger { return s.logger }

// run mounts the application and serves events until the connection or
// the server closes.
func (s *Session) run() {
	defer reactive.Release()
	defer s.cancel()

	s.logger.Info("session started")
	defer s.logger.Info("session ended")

	frames := make(chan []byte)
	readErr := make(chan error, 1)
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		s.readLoop(frames, readErr)
	}()
	defer func() {
		s.cancel()
		_ = s.conn.Close()
		<-readerDone
	}()

	if err := s.mountApp(); err != nil {
		s.logger.Error("mount failed", "error", err)
		s.sendError(err)
		return
	}
	if err := s.sendRender(); err != nil {
		return
	}

	ticker := time.NewTicker(s.srv.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-frames:
			s.handleFrame(data)

		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return

		case <-ticker.C:
			deadline := time.Now().Add(s.srv.config.WriteTimeout)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.logger.Debug("ping failed", "error", err)
				return
			}

		case <-s.ctx.Done():
			deadline := time.Now().Add(s.srv.config.WriteTimeout)
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = s.conn.WriteControl(websocket.CloseMessage, msg, deadline)
			return
		}
	}
}

// readLoop forwards text frames to the session goroutine.
func (s *Session) readLoop(frames chan<- []byte, readErr chan<- error) {
	wait := 2 * s.srv.config.PingInterval
	s.conn.SetReadLimit(s.srv.config.ReadLimit)
	_ = s.conn.SetReadDeadline(time.Now().Add(wait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(wait))
	})

	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			readErr <- err
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(wait))
		if kind != websocket.TextMessage {
			continue
		}
		select {
		case frames <- data:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Session) mountApp() (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("mount panic", "panic", r, "stack", string(debug.Stack()))
			err = errors.New("server: mount panicked")
		}
	}()
	if s.srv.mount == nil {
		return nil
	}
	return s.srv.mount(s)
}

// handleFrame decodes one browser frame, dispatches it and answers with a
// render.
func (s *Session) handleFrame(data []byte) {
	msg, err := DecodeClientMessage(data)
	if err != nil {
		s.srv.metrics.protocolErrors.Inc()
		s.logger.Warn("frame decode error", "error", err)
		s.sendError(err)
		return
	}

	label := s.eventLabel(msg.Event)
	start := time.Now()
	err = s.dispatch(msg, label)
	status := "ok"
	if err != nil {
		status = "error"
		s.logger.Warn("event failed", "event", msg.Event, "error", err)
		s.sendError(err)
	}
	_ = s.sendRender()

	s.srv.metrics.eventsTotal.WithLabelValues(label, status).Inc()
	s.srv.metrics.eventDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
}

// dispatch applies the browser state carried by msg and fires the event.
func (s *Session) dispatch(msg ClientMessage, label string) (err error) {
	_, span := s.startEventSpan(msg, label)
	defer func() { endEventSpan(span, err) }()

	for _, in := range msg.Inputs {
		if el := s.doc.ElementAtPath(in.Path); el != nil {
			el.SetValue(in.Value)
		}
	}

	if len(msg.Focus) > 0 {
		if el := s.doc.ElementAtPath(msg.Focus); el != nil {
			el.Focus()
		}
	} else if active := s.doc.ActiveElement(); active != nil {
		active.Blur()
	}

	var target *dom.Element
	if !msg.Window {
		target = s.doc.ElementAtPath(msg.Path)
		if target == nil {
			return protocolError("no element at path %v", msg.Path)
		}
	}

	ev := dom.NewEvent(msg.Event)
	ev.Detail = msg.Detail
	return s.doc.Dispatch(target, ev)
}

// render builds the frame describing the current document.
func (s *Session) render() ServerMessage {
	msg := ServerMessage{
		Type:         FrameRender,
		HTML:         s.doc.BodyHTML(),
		Events:       s.doc.ListenerTypes(),
		WindowEvents: s.doc.Window().ListenerTypes(),
	}
	if active := s.doc.ActiveElement(); active != nil {
		msg.Focus = s.doc.Path(active)
		msg.Select = s.doc.SelectionActive()
	}
	return msg
}

func (s *Session) sendRender() error {
	return s.send(s.render())
}

func (s *Session) sendError(err error) {
	_ = s.send(ServerMessage{
		Type:    FrameError,
		Code:    frameCode(err),
		Message: err.Error(),
	})
}

// send writes one frame. Only the session goroutine writes data frames.
func (s *Session) send(msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("frame encode error", "error", err)
		return err
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.srv.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Debug("write failed", "type", msg.Type, "error", err)
		return err
	}
	s.srv.metrics.framesSent.WithLabelValues(msg.Type).Inc()
	return nil
}
