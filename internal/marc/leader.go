package marc

import (
	"fmt"
	"strings"
)

// Leader layout and the byte costs a MARCXML record would have once
// serialised to binary MARC21.
const (
	LeaderLength = 24

	// leader + record terminator + field terminator after the directory
	recordOverhead = LeaderLength + 2

	directoryEntryLength = 12
	controlFieldCost     = directoryEntryLength + 1     // entry + field terminator
	dataFieldCost        = directoryEntryLength + 2 + 1 // entry + indicators + field terminator
	subfieldCost         = 2                            // delimiter + code

	lengthWidth = 5
)

// Fixed leader positions around the computed parts.
const (
	recordStatus   = "n"
	leaderCoding   = " a22"    // 08 control, 09 unicode, 10-11 indicator/subfield counts
	leaderEntryMap = "zu 4500" // 17-23
)

// Default record type and bibliographic level codes (leader/06 and /07).
const (
	DefaultTypeOfRecord = "a"
	LevelMonograph      = "m"
	LevelComponentPart  = "a"
)

// Counts accumulates what the leader needs while a record is emitted.
type Counts struct {
	ControlFields int
	DataFields    int
	Subfields     int
	ContentLength int // characters of all emitted text
}

// RecordLength returns the binary record length implied by c.
func RecordLength(c Counts) int {
	return recordOverhead + c.ContentLength +
		c.ControlFields*controlFieldCost +
		c.DataFields*dataFieldCost +
		c.Subfields*subfieldCost
}

// BaseAddress returns the offset of the first field in the binary record.
func BaseAddress(c Counts) int {
	return LeaderLength + (c.ControlFields+c.DataFields)*directoryEntryLength + 1
}

// Leader builds the 24-character leader for a record with the given counts.
func Leader(c Counts, typeOfRecord, bibLevel string) string {
	var b strings.Builder
	b.Grow(LeaderLength)
	b.WriteString(ZeroPad(RecordLength(c), lengthWidth))
	b.WriteString(recordStatus)
	b.WriteString(typeOfRecord)
	b.WriteString(bibLevel)
	b.WriteString(leaderCoding)
	b.WriteString(ZeroPad(BaseAddress(c), lengthWidth))
	b.WriteString(leaderEntryMap)
	return b.String()
}

// ZeroPad left-pads n with zeros to width. Values wider than width are
// returned in full, so a record over 99999 bytes yields a 25-character leader.
func ZeroPad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
