// Package preview serves the demo applications live over WebSocket.
//
// Every connection gets its own application instance mounted on an in-memory
// surface wrapped in a surface.Recorder. The server never sends markup after
// the page shell: it streams the recorded surface writes as frames, and the
// browser client replays them against the real DOM.
//
// # Wire protocol
//
// Server to client, one Frame per batch of writes:
//
//	{seq, root?, ops: [{kind, node, parent?, ref?, name?, value?}, ...]}
//
// The first frame carries root, the id of the node the client should treat
// as its mount point. Client to server, one ClientEvent per DOM event on a
// node that has a listener:
//
//	{node, type, value?}
//
// Frames are msgpack encoded binary messages by default. Passing
// ?format=json, or enabling Pretty, switches to JSON text messages.
//
// # Routes
//
//	GET /                       redirect to the default demo
//	GET /healthz                liveness
//	GET /metrics                Prometheus metrics
//	GET /client.js              browser client
//	GET /demos                  demo list (JSON)
//	GET /demos/{name}           live page
//	GET /demos/{name}/snapshot  static HTML render
//	GET /demos/{name}/ws        WebSocket endpoint
package preview
