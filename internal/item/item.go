// Package item defines the bibliographic item data model read from a
// reference manager export.
package item

// Item types that the exporter treats specially.
const (
	TypeBook                = "book"
	TypeBookSection         = "bookSection"
	TypeConferencePaper     = "conferencePaper"
	TypeConferencePaperProc = "conferencePaperProc"
	TypeJournalArticle      = "journalArticle"
	TypeReport              = "report"
	TypeThesis              = "thesis"
	TypePresentation        = "presentation"
	TypePatent              = "patent"
	TypeDictionaryEntry     = "dictionaryEntry"
	TypeEncyclopediaArticle = "encyclopediaArticle"
	TypeMagazineArticle     = "magazineArticle"
	TypeNewspaperArticle    = "newspaperArticle"
)

// Configuration item sentinels. The organisation metadata travels through the
// export as a "bill" item titled "Infoscience".
const (
	ConfigurationType  = "bill"
	ConfigurationTitle = "Infoscience"
)

// Item is a single bibliographic record as exported by the reference manager.
// Every field is optional; an empty string means absent.
type Item struct {
	Key          string `json:"key,omitempty" mapstructure:"key"`
	ItemType     string `json:"itemType" mapstructure:"itemType"`
	Title        string `json:"title,omitempty" mapstructure:"title"`
	Date         string `json:"date,omitempty" mapstructure:"date"`
	DateModified string `json:"dateModified,omitempty" mapstructure:"dateModified"`

	// Identifiers
	ISBN  string `json:"ISBN,omitempty" mapstructure:"ISBN"`
	ISSN  string `json:"ISSN,omitempty" mapstructure:"ISSN"`
	DOI   string `json:"DOI,omitempty" mapstructure:"DOI"`
	URL   string `json:"url,omitempty" mapstructure:"url"`
	Extra string `json:"extra,omitempty" mapstructure:"extra"` // newline-delimited "key: value" lines

	AbstractNote string    `json:"abstractNote,omitempty" mapstructure:"abstractNote"`
	Creators     []Creator `json:"creators,omitempty" mapstructure:"creators"`

	// Container and extent
	PublicationTitle string `json:"publicationTitle,omitempty" mapstructure:"publicationTitle"`
	Volume           string `json:"volume,omitempty" mapstructure:"volume"`
	Issue            string `json:"issue,omitempty" mapstructure:"issue"`
	Pages            string `json:"pages,omitempty" mapstructure:"pages"`
	NumPages         string `json:"numPages,omitempty" mapstructure:"numPages"`
	SeriesTitle      string `json:"seriesTitle,omitempty" mapstructure:"seriesTitle"`
	SeriesNumber     string `json:"seriesNumber,omitempty" mapstructure:"seriesNumber"`
	Medium           string `json:"medium,omitempty" mapstructure:"medium"`

	// Imprint and meeting
	Place          string `json:"place,omitempty" mapstructure:"place"`
	Publisher      string `json:"publisher,omitempty" mapstructure:"publisher"`
	ConferenceName string `json:"conferenceName,omitempty" mapstructure:"conferenceName"`
	MeetingName    string `json:"meetingName,omitempty" mapstructure:"meetingName"`

	// Only meaningful on the configuration item.
	Section         string `json:"section,omitempty" mapstructure:"section"`
	LegislativeBody string `json:"legislativeBody,omitempty" mapstructure:"legislativeBody"`
	Rights          string `json:"rights,omitempty" mapstructure:"rights"`
}

// IsConfiguration reports whether the item carries organisation metadata
// rather than a publication.
func (it Item) IsConfiguration() bool {
	return it.ItemType == ConfigurationType && it.Title == ConfigurationTitle
}

// LabAcronym returns the lab acronym stored on a configuration item.
// Older exports kept it in legislativeBody.
func (it Item) LabAcronym() string {
	if it.Section != "" {
		return it.Section
	}
	return it.LegislativeBody
}

// IsArticleLike reports whether the item is a component part (chapter,
// paper, article) rather than a monograph.
func (it Item) IsArticleLike() bool {
	switch it.ItemType {
	case TypeBookSection, TypeConferencePaper, TypeDictionaryEntry, TypeEncyclopediaArticle,
		TypeJournalArticle, TypeMagazineArticle, TypeNewspaperArticle:
		return true
	}
	return false
}
