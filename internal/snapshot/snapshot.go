package snapshot

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/memdom"
	"github.com/vango-dev/krow/pkg/surface"
)

// Factory builds an unmounted application on a surface.
type Factory func(s surface.Surface, opts ...krow.Option) krow.Application

// Snapshot is the rendered state of an application right after mount.
type Snapshot struct {
	Name    string       `msgpack:"name"`
	HTML    string       `msgpack:"html"`
	Ops     []surface.Op `msgpack:"ops"`
	Created time.Time    `msgpack:"created"`
}

// Render mounts the application built by build, captures its markup and the
// writes that produced it, and unmounts it again.
func Render(ctx context.Context, name string, build Factory, opts ...krow.Option) (*Snapshot, error) {
	dom := memdom.New()
	rec := surface.NewRecorder(dom, dom.Identify)
	app := build(rec, opts...)

	if err := app.Mount(ctx, dom.Body()); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	snap := &Snapshot{
		Name:    name,
		HTML:    dom.InnerHTML(dom.Body()),
		Ops:     rec.Ops(),
		Created: time.Now().UTC(),
	}
	if err := app.Unmount(ctx); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return snap, nil
}

// Document wraps the snapshot body into a standalone HTML page.
func (s *Snapshot) Document() []byte {
	return []byte(fmt.Sprintf(documentTemplate, html.EscapeString(s.Name), s.HTML))
}

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="generator" content="krow">
<title>%s</title>
</head>
<body>%s</body>
</html>
`

// EncodeOps serializes the journaled writes.
func (s *Snapshot) EncodeOps() ([]byte, error) {
	return msgpack.Marshal(s.Ops)
}

// DecodeOps parses ops written by EncodeOps.
func DecodeOps(data []byte) ([]surface.Op, error) {
	var ops []surface.Op
	if err := msgpack.Unmarshal(data, &ops); err != nil {
		return nil, fmt.Errorf("decode ops: %w", err)
	}
	return ops, nil
}
