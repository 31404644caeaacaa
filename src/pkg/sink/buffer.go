package sink

import (
	"sync"

	"github.com/tuumbleweed/xerr"

	"donation-report/src/pkg/report"
)

var (
	_ report.Sink = (*Buffer)(nil)
	_ report.Sink = Fanout(nil)
)

// Buffer keeps the delivered document in memory, e.g. to stream it back over HTTP.
type Buffer struct {
	mu       sync.Mutex
	name     string
	document []byte
}

func (b *Buffer) Deliver(name string, document []byte) (e *xerr.Error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.name = name
	b.document = append([]byte(nil), document...)
	return nil
}

func (b *Buffer) Document() (name string, document []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.name, b.document
}

// Fanout delivers to every sink in order and stops at the first failure.
type Fanout []report.Sink

func (f Fanout) Deliver(name string, document []byte) (e *xerr.Error) {
	for _, target := range f {
		e = target.Deliver(name, document)
		if e != nil {
			return e
		}
	}
	return nil
}
