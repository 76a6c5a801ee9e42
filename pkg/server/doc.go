// Package server mirrors headless micro documents into browsers.
//
// Every WebSocket connection gets its own session: one goroutine that owns a
// fresh dom.Document, mounts the application into it and then serves the
// browser's events one at a time. The browser runs a small script that
// forwards events, input values and focus, and replaces its view with the
// document markup sent back after each event.
//
//	srv := server.New(func(s *server.Session) error {
//	    return app.Mount(s.Context(), s.Document(), s.Storage())
//	}, server.Config{Addr: ":8080", Backend: storage.NewMemoryBackend()})
//	err := srv.ListenAndServe(ctx)
//
// The page served at / is an empty shell. All markup reaches the browser
// through the WebSocket, so there is nothing to hydrate.
//
// # Routes
//
//	GET /           page shell
//	GET /client.js  browser script (ETag cached)
//	GET /ws         WebSocket endpoint
//	GET /metrics    Prometheus metrics
//	GET /healthz    liveness probe
//
// # Protocol
//
// Frames are JSON text messages. The browser sends
//
//	{"type":"event","event":"click","path":[0,1,2],"focus":[0,0],
//	 "inputs":[{"path":[0,0],"value":"Buy milk"}]}
//
// where paths are element-child indexes below the document body. The server
// answers every event with
//
//	{"type":"render","html":"...","focus":[0,0],"select":false,
//	 "events":["click","submit"],"windowEvents":[]}
//
// or, when a handler failed, an error frame followed by a render:
//
//	{"type":"error","code":"M005","message":"..."}
package server
