package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/epfl-sisb/infomarc/internal/item"
	"github.com/epfl-sisb/infomarc/internal/registry"
)

func TestPublicationCodes(t *testing.T) {
	tests := []struct {
		itemType string
		want     Codes
	}{
		{item.TypeBook, Codes{"BOOK", "Books", "BOOK"}},
		{item.TypeBookSection, Codes{"BOOK_CHAP", "Book Chapters", "CHAPTER"}},
		{item.TypeConferencePaper, Codes{"CONF", "Conference Papers", "CONF"}},
		{item.TypeConferencePaperProc, Codes{"PROC", "Conference Proceedings", "PROC"}},
		{item.TypeJournalArticle, Codes{"ARTICLE", "Journal Articles", "ARTICLE"}},
		{item.TypeReport, Codes{"REP_WORK", "Reports", "REPORT"}},
		{item.TypePresentation, Codes{"POST_TALK", "Talks", "POST_TALK"}},
		{item.TypePatent, Codes{"PATENT", "Patents", "PATENT"}},
	}
	for _, tt := range tests {
		got, ok := PublicationCodes(tt.itemType)
		assert.True(t, ok, tt.itemType)
		assert.Equal(t, tt.want, got, tt.itemType)
	}

	_, ok := PublicationCodes("webpage")
	assert.False(t, ok)
}

func TestTypeOfRecord(t *testing.T) {
	assert.Equal(t, "k", TypeOfRecord("artwork"))
	assert.Equal(t, "j", TypeOfRecord("audioRecording"))
	assert.Equal(t, "m", TypeOfRecord("computerProgram"))
	assert.Equal(t, "g", TypeOfRecord("videoRecording"))
	assert.Equal(t, "e", TypeOfRecord("map"))
	assert.Equal(t, "a", TypeOfRecord(item.TypeJournalArticle))
	assert.Equal(t, "a", TypeOfRecord(""))
}

func TestBibliographicLevel(t *testing.T) {
	for _, typ := range []string{
		item.TypeBookSection, item.TypeConferencePaper, item.TypeDictionaryEntry,
		item.TypeEncyclopediaArticle, item.TypeJournalArticle, item.TypeMagazineArticle,
		item.TypeNewspaperArticle,
	} {
		assert.Equal(t, "a", BibliographicLevel(item.Item{ItemType: typ}), typ)
	}
	for _, typ := range []string{item.TypeBook, item.TypeReport, item.TypeConferencePaperProc, "webpage"} {
		assert.Equal(t, "m", BibliographicLevel(item.Item{ItemType: typ}), typ)
	}
}

func TestNewOrganizationUnit(t *testing.T) {
	labs := registry.Labs{"LPI": {RecID: "123", Manager: "m@epfl.ch", UID: "U1", Liaison: "l@epfl.ch"}}

	unit, known := NewOrganizationUnit(configItem("LPI", "me@epfl.ch"), labs)
	assert.True(t, known)
	assert.Equal(t, OrganizationUnit{
		Acronym:        "LPI",
		LabAuthorityID: "123",
		ManagerEmail:   "m@epfl.ch",
		ShortCode:      "U1",
		Liaison:        "l@epfl.ch",
		CreatorEmail:   "me@epfl.ch",
	}, unit)

	// older exports store the acronym in legislativeBody
	legacy := item.Item{ItemType: item.ConfigurationType, Title: item.ConfigurationTitle, LegislativeBody: "LPI"}
	unit, known = NewOrganizationUnit(legacy, labs)
	assert.True(t, known)
	assert.Equal(t, "123", unit.LabAuthorityID)

	unit, known = NewOrganizationUnit(configItem("", "me@epfl.ch"), labs)
	assert.False(t, known)
	assert.Equal(t, OrganizationUnit{CreatorEmail: "me@epfl.ch"}, unit)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.IncludeAbstract)
	assert.True(t, opts.BatchID)
	assert.False(t, opts.Validated)
	assert.Equal(t, ValidationPending, opts.validationCode())
	assert.True(t, opts.excluded()[item.TypeThesis])
	assert.False(t, opts.excluded()[item.TypeBook])

	opts.Validated = true
	assert.Equal(t, ValidationValidated, opts.validationCode())
}
