package marc

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Namespace is the MARCXML slim schema namespace.
const Namespace = "http://www.loc.gov/MARC21/slim"

// XMLDeclaration precedes the collection in serialised output.
const XMLDeclaration = `<?xml version="1.0"?>` + "\n"

// prettyReplacer inserts line breaks and tabs before record-level markup.
// It runs over the serialised text and assumes none of these substrings
// occur inside field values; etree escapes '<' in text, so they cannot.
var prettyReplacer = strings.NewReplacer(
	"<record", "\n<record",
	"<leader", "\n\t<leader",
	"<controlfield", "\n\t<controlfield",
	"<datafield", "\n\t<datafield",
	"</datafield", "\n\t</datafield",
	"<subfield", "\n\t\t<subfield",
	"</record", "\n</record",
	"</collection", "\n</collection",
)

// Document is a MARCXML collection under construction.
type Document struct {
	doc     *etree.Document
	root    *etree.Element
	records int
	log     *zap.Logger
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used by the document and its records.
func WithLogger(log *zap.Logger) Option {
	return func(d *Document) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDocument creates an empty collection.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		doc: etree.NewDocument(),
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.root = d.doc.CreateElement("collection")
	d.root.CreateAttr("xmlns", Namespace)
	return d
}

// NewRecord opens a new record at the end of the collection with zeroed
// counters.
func (d *Document) NewRecord() *Record {
	d.records++
	return &Record{
		node: d.root.CreateElement("record"),
		log:  d.log.With(zap.Int("record", d.records)),
	}
}

// Len returns the number of records in the collection.
func (d *Document) Len() int {
	return d.records
}

// Serialize renders the collection compactly, without the XML declaration.
func (d *Document) Serialize() (string, error) {
	s, err := d.doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serializing collection: %w", err)
	}
	return s, nil
}

// Prettify applies the cosmetic line-break substitutions to serialised
// MARCXML.
func Prettify(xml string) string {
	return prettyReplacer.Replace(xml)
}

// WriteTo writes the XML declaration followed by the pretty-printed
// collection.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	body, err := d.Serialize()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, XMLDeclaration+Prettify(body))
	if err != nil {
		return int64(n), fmt.Errorf("writing collection: %w", err)
	}
	return int64(n), nil
}

// String returns the full output text.
func (d *Document) String() string {
	var b strings.Builder
	if _, err := d.WriteTo(&b); err != nil {
		d.log.Error("serializing document", zap.Error(err))
	}
	return b.String()
}
