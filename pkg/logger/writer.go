package logger

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
)

// Writer logs every complete line written to it as one record. Partial lines
// are buffered until a newline arrives or Flush is called.
type Writer struct {
	log   *slog.Logger
	level slog.Level
	msg   string
	attrs []slog.Attr

	mu  sync.Mutex
	buf bytes.Buffer
}

// NewWriter returns a Writer that logs lines at level with msg as the record
// message and the line under "line".
func NewWriter(log *slog.Logger, level slog.Level, msg string, attrs ...slog.Attr) *Writer {
	if log == nil {
		log = Discard()
	}
	return &Writer{log: log, level: level, msg: msg, attrs: attrs}
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadBytes('\n')
		if err != nil {
			// No newline yet: keep the fragment for the next write.
			w.buf.Reset()
			w.buf.Write(line)
			break
		}
		w.emit(line[:len(line)-1])
	}
	return len(p), nil
}

// Flush logs any buffered partial line.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(w.buf.Bytes())
		w.buf.Reset()
	}
}

func (w *Writer) emit(line []byte) {
	line = bytes.TrimRight(line, "\r")
	if len(line) == 0 {
		return
	}
	attrs := append([]slog.Attr{slog.String("line", string(line))}, w.attrs...)
	w.log.LogAttrs(context.Background(), w.level, w.msg, attrs...)
}
