package k8s

import (
	"bytes"
	"io"
	"sync"
)

// prefixWriter writes every complete line it receives to out with a fixed
// prefix. Writers sharing mu never interleave within a line.
type prefixWriter struct {
	mu     *sync.Mutex
	out    io.Writer
	prefix []byte
	buf    []byte
}

func newPrefixWriter(out io.Writer, prefix string, mu *sync.Mutex) *prefixWriter {
	return &prefixWriter{
		mu:     mu,
		out:    out,
		prefix: []byte(prefix),
	}
}

func (w *prefixWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		if err := w.writeLine(w.buf[:i+1]); err != nil {
			return 0, err
		}
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

// Flush writes any trailing partial line, terminated with a newline.
func (w *prefixWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.buf) == 0 {
		return nil
	}
	line := append(w.buf, '\n')
	w.buf = nil
	return w.writeLine(line)
}

func (w *prefixWriter) writeLine(line []byte) error {
	out := make([]byte, 0, len(w.prefix)+len(line))
	out = append(out, w.prefix...)
	out = append(out, line...)
	_, err := w.out.Write(out)
	return err
}
