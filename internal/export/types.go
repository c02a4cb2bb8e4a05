// Package export converts bibliographic items into a MARCXML collection for
// Infoscience ingestion.
package export

import (
	"github.com/epfl-sisb/infomarc/internal/item"
	"github.com/epfl-sisb/infomarc/internal/marc"
)

// Codes are the Infoscience classification values for an item type:
// publication type (037__a), subtype (336__a) and doctype (980__a).
type Codes struct {
	Pubtype string
	Subtype string
	Doctype string
}

var publicationCodes = map[string]Codes{
	item.TypeBook:                {"BOOK", "Books", "BOOK"},
	item.TypeBookSection:         {"BOOK_CHAP", "Book Chapters", "CHAPTER"},
	item.TypeConferencePaper:     {"CONF", "Conference Papers", "CONF"},
	item.TypeConferencePaperProc: {"PROC", "Conference Proceedings", "PROC"},
	item.TypeJournalArticle:      {"ARTICLE", "Journal Articles", "ARTICLE"},
	item.TypeReport:              {"REP_WORK", "Reports", "REPORT"},
	item.TypePresentation:        {"POST_TALK", "Talks", "POST_TALK"},
	item.TypePatent:              {"PATENT", "Patents", "PATENT"},
}

// PublicationCodes returns the classification codes for itemType. Types
// outside the table have none and their 037/336/980 fields are omitted.
func PublicationCodes(itemType string) (Codes, bool) {
	c, ok := publicationCodes[itemType]
	return c, ok
}

// leader/06
var typesOfRecord = map[string]string{
	"artwork":         "k",
	"audioRecording":  "j",
	"computerProgram": "m",
	"film":            "g",
	"manuscript":      "t",
	"map":             "e",
	"podcast":         "i",
	"presentation":    "a",
	"radioBroadcast":  "i",
	"tvBroadcast":     "g",
	"videoRecording":  "g",
}

// TypeOfRecord returns the leader type-of-record code for itemType.
func TypeOfRecord(itemType string) string {
	if t, ok := typesOfRecord[itemType]; ok {
		return t
	}
	return marc.DefaultTypeOfRecord
}

// BibliographicLevel returns the leader bibliographic level: component part
// for article-like items, monograph otherwise.
func BibliographicLevel(it item.Item) string {
	if it.IsArticleLike() {
		return marc.LevelComponentPart
	}
	return marc.LevelMonograph
}
