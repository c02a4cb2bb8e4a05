package marc

import (
	"unicode/utf8"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Record is the working context for one MARC record: its XML node and the
// running counts the leader is computed from. Each record owns its counters,
// so nothing leaks from one record into the next.
type Record struct {
	node   *etree.Element
	counts Counts
	leader string
	log    *zap.Logger
}

// Counts returns the running totals emitted so far.
func (r *Record) Counts() Counts {
	return r.counts
}

// Sealed reports whether the leader has been computed.
func (r *Record) Sealed() bool {
	return r.leader != ""
}

// ControlField appends a control field. Empty text emits nothing.
func (r *Record) ControlField(tag, text string) {
	if !r.writable(tag) {
		return
	}
	if !ValidControlTag(tag) {
		r.log.Warn("invalid control field tag, field skipped", zap.String("tag", tag))
		return
	}
	if text == "" {
		return
	}

	field := r.node.CreateElement("controlfield")
	field.CreateAttr("tag", tag)
	field.SetText(text)

	r.counts.ControlFields++
	r.counts.ContentLength += utf8.RuneCountInString(text)
}

// DataField validates desc and appends one data field for a Single payload,
// or one per occurrence for a Repeated payload. Invalid descriptors, nil or
// empty payloads are logged and skipped.
func (r *Record) DataField(desc string, p Payload) {
	if !r.writable(desc) {
		return
	}
	tag, err := ParseTag(desc)
	if err != nil {
		r.log.Warn("field skipped", zap.Error(err))
		return
	}

	switch v := p.(type) {
	case nil:
		r.log.Debug("no payload, field skipped", zap.String("tag", desc))
		return
	case Single, Repeated:
	default:
		r.log.Warn("unsupported payload type, field skipped", zap.String("tag", desc), zap.Any("payload", v))
		return
	}
	if Empty(p) {
		r.log.Debug("empty payload, field skipped", zap.String("tag", desc))
		return
	}

	switch v := p.(type) {
	case Single:
		r.appendDataField(tag, Subfields(v))
	case Repeated:
		for _, sfs := range v {
			r.appendDataField(tag, sfs)
		}
	}
}

// appendDataField writes one datafield element holding the non-empty,
// well-coded subfields of sfs. It writes nothing if none qualify.
func (r *Record) appendDataField(tag Tag, sfs Subfields) {
	keep := make(Subfields, 0, len(sfs))
	for _, sf := range sfs {
		if sf.Value == "" {
			continue
		}
		if !ValidSubfieldCode(sf.Code) {
			r.log.Warn("invalid subfield code, subfield skipped",
				zap.String("tag", tag.String()), zap.String("code", sf.Code))
			continue
		}
		keep = append(keep, sf)
	}
	if len(keep) == 0 {
		return
	}

	field := r.node.CreateElement("datafield")
	field.CreateAttr("tag", tag.Code)
	field.CreateAttr("ind1", tag.Ind1)
	field.CreateAttr("ind2", tag.Ind2)
	r.counts.DataFields++

	for _, sf := range keep {
		sub := field.CreateElement("subfield")
		sub.CreateAttr("code", sf.Code)
		sub.SetText(sf.Value)
		r.counts.Subfields++
		r.counts.ContentLength += utf8.RuneCountInString(sf.Value)
	}
}

// Seal computes the leader from the accumulated counts and inserts it as the
// first child of the record. A sealed record accepts no further fields.
func (r *Record) Seal(typeOfRecord, bibLevel string) string {
	if r.Sealed() {
		return r.leader
	}
	r.leader = Leader(r.counts, typeOfRecord, bibLevel)

	el := etree.NewElement("leader")
	el.SetText(r.leader)
	r.node.InsertChildAt(0, el)
	return r.leader
}

func (r *Record) writable(tag string) bool {
	if r.Sealed() {
		r.log.Warn("record already sealed, field skipped", zap.String("tag", tag))
		return false
	}
	return true
}
