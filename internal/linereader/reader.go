// Package linereader implements the read loop: block for a newline-terminated
// line, decode it, trim surrounding whitespace and hand it to a Handler.
package linereader

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"unicode"
)

// Reader reads newline-terminated lines and returns them decoded and trimmed.
type Reader struct {
	br  *bufio.Reader
	dec Decoder
}

// NewReader wraps r. A nil dec means strict UTF-8.
func NewReader(r io.Reader, dec Decoder) *Reader {
	if dec == nil {
		dec = UTF8()
	}
	return &Reader{br: bufio.NewReader(r), dec: dec}
}

// ReadLine blocks until a full line up to and including '\n' is available.
//
// Bytes left over when the source fails or ends without a final newline are
// not a line and are dropped; the source's error is returned instead.
func (r *Reader) ReadLine() (string, error) {
	raw, err := r.br.ReadBytes('\n')
	if err != nil {
		return "", err
	}

	text, err := r.dec.Decode(raw)
	if err != nil {
		return "", err
	}

	return strings.TrimFunc(text, isSpace), nil
}

// isSpace reports Unicode white space plus the file, group, record and unit
// separators U+001C..U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Handler receives each line in arrival order.
type Handler func(line string) error

// WriterHandler writes each line followed by a newline to w.
func WriterHandler(w io.Writer) Handler {
	return func(line string) error {
		_, err := io.WriteString(w, line+"\n")
		return err
	}
}

// Option configures Run.
type Option func(*options)

type options struct {
	decoder Decoder
	logger  *slog.Logger
}

// WithDecoder sets the line decoder. The default is strict UTF-8.
func WithDecoder(dec Decoder) Option {
	return func(o *options) {
		if dec != nil {
			o.decoder = dec
		}
	}
}

// WithLogger sets the logger for loop diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Run reads lines from src and passes each to handle until ctx is cancelled
// or a read, decode or handler error occurs.
//
// Run owns src and closes it before returning, whatever the reason.
// Cancelling ctx closes src to wake the pending read, and Run returns nil.
// Otherwise the error that ended the loop is returned.
func Run(ctx context.Context, src io.ReadCloser, handle Handler, opts ...Option) error {
	o := options{
		decoder: UTF8(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var once sync.Once
	closeSrc := func() {
		once.Do(func() {
			if err := src.Close(); err != nil {
				o.logger.Debug("close source", "error", err)
			}
		})
	}
	defer closeSrc()

	stop := context.AfterFunc(ctx, closeSrc)
	defer stop()

	r := NewReader(src, o.decoder)
	lines := 0
	for {
		if ctx.Err() != nil {
			o.logger.Debug("read loop cancelled", "lines", lines)
			return nil
		}

		line, err := r.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				o.logger.Debug("read loop cancelled", "lines", lines)
				return nil
			}
			return err
		}

		if err := handle(line); err != nil {
			return fmt.Errorf("emit line: %w", err)
		}
		lines++
	}
}
