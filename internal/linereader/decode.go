package linereader

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrDecode is returned when a line's bytes are not valid in the configured encoding.
var ErrDecode = errors.New("line is not valid text")

// Decoder turns the raw bytes of one line into text.
type Decoder interface {
	Decode(raw []byte) (string, error)
}

// NewDecoder resolves a WHATWG encoding label such as "utf-8", "latin1" or
// "shift_jis". UTF-8 is decoded strictly: invalid sequences are an error
// rather than being replaced.
func NewDecoder(label string) (Decoder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return UTF8(), nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", label, err)
	}

	name, err := htmlindex.Name(enc)
	if err == nil && name == "utf-8" {
		return UTF8(), nil
	}

	return &textDecoder{name: name, enc: enc}, nil
}

// UTF8 returns the strict UTF-8 decoder.
func UTF8() Decoder {
	return utf8Decoder{}
}

type utf8Decoder struct{}

func (utf8Decoder) Decode(raw []byte) (string, error) {
	if _, _, err := transform.Bytes(encoding.UTF8Validator, raw); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return string(raw), nil
}

type textDecoder struct {
	name string
	enc  encoding.Encoding
}

func (d *textDecoder) Decode(raw []byte) (string, error) {
	out, err := d.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrDecode, d.name, err)
	}
	return string(out), nil
}
