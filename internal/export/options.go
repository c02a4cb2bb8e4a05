package export

import "github.com/epfl-sisb/infomarc/internal/item"

// 981__a validation codes.
const (
	ValidationPending   = "S2"
	ValidationValidated = "overwrite"
)

// DefaultExcludedTypes are item types never exported as records.
var DefaultExcludedTypes = []string{item.TypeThesis, item.TypePresentation, item.TypePatent}

// Options are the export switches.
type Options struct {
	IncludeAbstract bool // emit 520__
	BatchID         bool // emit 970__
	Validated       bool // 981__ literal and 961__
	ExportNotes     bool // accepted, notes are never emitted
	ExcludedTypes   []string
}

// DefaultOptions returns the options of a plain export.
func DefaultOptions() Options {
	return Options{
		IncludeAbstract: true,
		BatchID:         true,
		ExportNotes:     true,
		ExcludedTypes:   append([]string(nil), DefaultExcludedTypes...),
	}
}

func (o Options) validationCode() string {
	if o.Validated {
		return ValidationValidated
	}
	return ValidationPending
}

func (o Options) excluded() map[string]bool {
	set := make(map[string]bool, len(o.ExcludedTypes))
	for _, t := range o.ExcludedTypes {
		set[t] = true
	}
	return set
}
