// Package importer reads bibliographic items from reference manager exports.
package importer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/epfl-sisb/infomarc/internal/item"
)

// MaxLineCapacity is the maximum buffer size for one JSONL item (1MB per line).
const MaxLineCapacity = 1024 * 1024

// ErrMalformedItem is returned when an entry of the export cannot be decoded.
var ErrMalformedItem = errors.New("malformed item")

// Reader yields items from a Zotero JSON export one at a time. Both the JSON
// array produced by the Zotero API and JSONL (one item per line) are accepted.
type Reader struct {
	dec     *json.Decoder  // array form
	scanner *bufio.Scanner // JSONL form
	closer  io.Closer
	index   int
	done    bool
}

// NewReader detects the export form from the first non-blank byte of r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return &Reader{done: true}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading export: %w", err)
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return nil, err
		}
		if b == '[' {
			dec := json.NewDecoder(br)
			dec.UseNumber()
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformedItem, err)
			}
			return &Reader{dec: dec}, nil
		}
		scanner := bufio.NewScanner(br)
		buf := make([]byte, MaxLineCapacity)
		scanner.Buffer(buf, MaxLineCapacity)
		return &Reader{scanner: scanner}, nil
	}
}

// Open opens an export file. The caller must Close the reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Next returns the next item, or io.EOF once the export is exhausted.
func (r *Reader) Next() (item.Item, error) {
	if r.done {
		return item.Item{}, io.EOF
	}
	raw, err := r.nextRaw()
	if err == io.EOF {
		r.done = true
		return item.Item{}, io.EOF
	}
	r.index++
	if err != nil {
		return item.Item{}, fmt.Errorf("%w %d: %v", ErrMalformedItem, r.index, err)
	}
	it, err := DecodeItem(raw)
	if err != nil {
		return item.Item{}, fmt.Errorf("%w %d: %v", ErrMalformedItem, r.index, err)
	}
	return it, nil
}

func (r *Reader) nextRaw() (map[string]any, error) {
	var raw map[string]any
	if r.dec != nil {
		if !r.dec.More() {
			return nil, io.EOF
		}
		if err := r.dec.Decode(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	}

	for r.scanner.Scan() {
		line := bytes.TrimSpace(r.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(line))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// DecodeItem converts one decoded JSON object into an Item. Numbers where
// strings are expected (volume, pages, ISBN) are accepted.
func DecodeItem(raw map[string]any) (item.Item, error) {
	var it item.Item
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &it,
	})
	if err != nil {
		return item.Item{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return item.Item{}, err
	}
	return it, nil
}

// Items is an in-memory item sequence with the same Next contract as Reader.
type Items struct {
	items []item.Item
	pos   int
}

// FromItems wraps items as a sequence.
func FromItems(items ...item.Item) *Items {
	return &Items{items: items}
}

// Next returns the next item, or io.EOF at the end.
func (s *Items) Next() (item.Item, error) {
	if s.pos >= len(s.items) {
		return item.Item{}, io.EOF
	}
	it := s.items[s.pos]
	s.pos++
	return it, nil
}
