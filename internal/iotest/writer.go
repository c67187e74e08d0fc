package iotest

import (
	"bytes"
	"io"
	"sync"
	"testing"
)

// Writer builds an io.Writer that writes to the given testing.TB,
// logging one entry per line of input.
//
// Partial lines are buffered until a newline arrives,
// or until the end of the test, whichever comes first.
func Writer(t testing.TB) io.Writer {
	w := &writer{t: t}
	t.Cleanup(w.flush)
	return w
}

type writer struct {
	t testing.TB

	// Holds text that hasn't seen its newline yet.
	buff bytes.Buffer
	mu   sync.Mutex // guards buff
}

func (w *writer) Write(bs []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// t.Logf adds a newline of its own,
	// so log one line at a time rather than writing bs as-is.
	total := len(bs)
	for len(bs) > 0 {
		idx := bytes.IndexByte(bs, '\n')
		if idx < 0 {
			// No newline. Buffer it for later.
			w.buff.Write(bs)
			break
		}

		var line []byte
		line, bs = bs[:idx], bs[idx+1:]

		if w.buff.Len() == 0 {
			// Nothing buffered from a prior partial write.
			// This is the majority case.
			w.t.Logf("%s", line)
			continue
		}

		// There's a prior partial write. Join and log.
		w.buff.Write(line)
		w.t.Logf("%s", w.buff.Bytes())
		w.buff.Reset()
	}
	return total, nil
}

// flush logs buffered text, even though it didn't end with a newline.
func (w *writer) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buff.Len() > 0 {
		w.t.Logf("%s", w.buff.Bytes())
		w.buff.Reset()
	}
}
