package marc

// Subfield is one coded value inside a data field.
type Subfield struct {
	Code  string
	Value string
}

// Subfields is an ordered list of subfields; emission keeps insertion order.
type Subfields []Subfield

// Add appends a subfield and returns the extended list. Empty values are kept
// here and dropped by the emitter.
func (s Subfields) Add(code, value string) Subfields {
	return append(s, Subfield{Code: code, Value: value})
}

// Get returns the first value stored under code.
func (s Subfields) Get(code string) (string, bool) {
	for _, sf := range s {
		if sf.Code == code {
			return sf.Value, true
		}
	}
	return "", false
}

// Payload is the data carried by one field descriptor: either a Single
// occurrence or a Repeated sequence of occurrences.
type Payload interface {
	isPayload()
}

// Single emits one data field.
type Single Subfields

// Repeated emits one data field per element, for repeatable tags.
type Repeated []Subfields

func (Single) isPayload()   {}
func (Repeated) isPayload() {}

// Empty reports whether p would emit nothing: nil, or no non-empty value.
func Empty(p Payload) bool {
	switch v := p.(type) {
	case Single:
		return !hasValue(Subfields(v))
	case Repeated:
		for _, sfs := range v {
			if hasValue(sfs) {
				return false
			}
		}
	}
	return true
}

func hasValue(sfs Subfields) bool {
	for _, sf := range sfs {
		if sf.Value != "" {
			return true
		}
	}
	return false
}
