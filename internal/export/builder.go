package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/epfl-sisb/infomarc/internal/clean"
	"github.com/epfl-sisb/infomarc/internal/item"
	"github.com/epfl-sisb/infomarc/internal/marc"
	"github.com/epfl-sisb/infomarc/internal/registry"
)

// 973__ status values.
const (
	affiliationOther = "OTHER"
	reviewed         = "REVIEWED"
	notReviewed      = "NON-REVIEWED"
	published        = "PUBLISHED"
)

// Source yields items in order and returns io.EOF once exhausted.
type Source interface {
	Next() (item.Item, error)
}

// Stats summarises the last Build.
type Stats struct {
	Read        int  // items consumed, configuration item included
	Emitted     int  // records written
	Excluded    int  // items dropped by type
	ConfigFound bool // a configuration item was seen
	LabKnown    bool // its acronym resolved in the lab registry
}

// Builder assembles one MARCXML record per exported item.
type Builder struct {
	labs    registry.Labs
	authors clean.AuthorDirectory
	opts    Options
	log     *zap.Logger
	stats   Stats
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the builder logger.
func WithLogger(log *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// WithOptions sets the export switches.
func WithOptions(opts Options) BuilderOption {
	return func(b *Builder) {
		b.opts = opts
	}
}

// NewBuilder creates a builder over loaded registries. A nil reg exports
// without lab or author enrichment.
func NewBuilder(reg *registry.Registries, opts ...BuilderOption) *Builder {
	b := &Builder{
		opts: DefaultOptions(),
		log:  zap.NewNop(),
	}
	if reg != nil {
		b.labs = reg.Labs
		if reg.Authors != nil {
			b.authors = reg.Authors
		}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Stats returns the counters of the last Build.
func (b *Builder) Stats() Stats {
	return b.stats
}

// Build reads src to the end, then emits the collection. The configuration
// item is consumed to resolve the organisation unit and never becomes a
// record; excluded types are dropped; everything else keeps its input order.
// Only a failing source is an error.
func (b *Builder) Build(src Source) (*marc.Document, error) {
	b.stats = Stats{}

	unit, work, err := b.collect(src)
	if err != nil {
		return nil, err
	}

	doc := marc.NewDocument(marc.WithLogger(b.log))
	digits := len(strconv.Itoa(len(work)))
	for i, it := range work {
		b.emit(doc.NewRecord(), it, unit, marc.ZeroPad(i, digits))
		b.stats.Emitted++
	}

	b.log.Debug("collection built",
		zap.Int("read", b.stats.Read),
		zap.Int("emitted", b.stats.Emitted),
		zap.Int("excluded", b.stats.Excluded))
	return doc, nil
}

func (b *Builder) collect(src Source) (OrganizationUnit, []item.Item, error) {
	var unit OrganizationUnit
	var work []item.Item
	excluded := b.opts.excluded()

	for {
		it, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return unit, nil, fmt.Errorf("reading item %d: %w", b.stats.Read+1, err)
		}
		b.stats.Read++

		if it.IsConfiguration() {
			if b.stats.ConfigFound {
				b.log.Warn("extra configuration item ignored", zap.String("acronym", it.LabAcronym()))
				continue
			}
			b.stats.ConfigFound = true
			unit, b.stats.LabKnown = NewOrganizationUnit(it, b.labs)
			if !b.stats.LabKnown {
				b.log.Warn("lab not in registry, lab fields omitted", zap.String("acronym", unit.Acronym))
			}
			continue
		}

		if excluded[it.ItemType] {
			b.stats.Excluded++
			b.log.Info("item excluded",
				zap.String("key", it.Key), zap.String("itemType", it.ItemType), zap.String("title", it.Title))
			continue
		}
		work = append(work, it)
	}

	if !b.stats.ConfigFound {
		b.log.Warn("no configuration item, lab and creator fields omitted")
	}
	return unit, work, nil
}

// emit writes the fields of one record in catalogue order and seals it.
func (b *Builder) emit(rec *marc.Record, it item.Item, unit OrganizationUnit, seq string) {
	codes, _ := PublicationCodes(it.ItemType)
	level := BibliographicLevel(it)
	date, hasDate := clean.Date(it.Date)
	if it.Date != "" && !hasDate {
		b.log.Debug("unparseable date omitted", zap.String("key", it.Key), zap.String("date", it.Date))
	}

	rec.ControlField("005", digitsOnly(it.DateModified)+".0")

	rec.DataField("020__", clean.Identifiers(it.ISBN))
	rec.DataField("022__", clean.Identifiers(it.ISSN))
	if it.DOI != "" {
		rec.DataField("0247_", marc.Single{{Code: "a", Value: it.DOI}, {Code: "2", Value: clean.DOISource}})
	}
	if it.Extra != "" {
		ids, err := clean.ExtraIdentifiers(it.Extra, it.DOI != "")
		if err != nil {
			b.log.Debug("extra identifiers skipped", zap.String("key", it.Key), zap.Error(err))
		}
		rec.DataField("02470", ids)
	}

	rec.DataField("037__", single("a", codes.Pubtype))
	rec.DataField("245__", single("a", it.Title))

	imprint := marc.Subfields{}.Add("a", it.Place).Add("b", it.Publisher)
	if hasDate {
		imprint = imprint.Add("c", date)
	}
	rec.DataField("260__", marc.Single(imprint))
	if hasDate {
		rec.DataField("269__", single("a", date))
	}

	rec.DataField("300__", single("a", it.NumPages))
	rec.DataField("336__", single("a", codes.Subtype))
	rec.DataField("340__", single("a", it.Medium))
	rec.DataField("4900_", marc.Single(marc.Subfields{}.Add("a", it.SeriesTitle).Add("v", it.SeriesNumber)))

	if b.opts.IncludeAbstract {
		rec.DataField("520__", single("a", it.AbstractNote))
	}

	personal, corporate := clean.Authors(it.Creators, b.authors, unit.Acronym)
	rec.DataField("700__", personal)
	for _, sfs := range corporate {
		rec.DataField("7102_", marc.Single(sfs))
	}

	if it.ItemType == item.TypeConferencePaper {
		meeting := it.ConferenceName
		if meeting == "" {
			meeting = it.MeetingName
		}
		conf := marc.Subfields{}.Add("a", meeting).Add("c", it.Place)
		if hasDate {
			conf = conf.Add("d", date)
		}
		rec.DataField("7112_", marc.Single(conf))
	}

	if level == marc.LevelComponentPart {
		rec.DataField("773__", marc.Single(marc.Subfields{}.
			Add("j", it.Volume).
			Add("k", it.Issue).
			Add("q", it.Pages).
			Add("t", it.PublicationTitle)))
	}

	if it.DOI == "" {
		rec.DataField("85641", single("u", it.URL))
	}

	rec.DataField("909C0", marc.Single(marc.Subfields{}.
		Add("0", unit.LabAuthorityID).
		Add("m", unit.ManagerEmail).
		Add("p", unit.Acronym).
		Add("x", unit.ShortCode).
		Add("z", unit.Liaison)))

	rec.DataField("960__", single("a", unit.CreatorEmail))
	if b.opts.Validated {
		rec.DataField("961__", single("a", unit.CreatorEmail))
	}
	if b.opts.BatchID && unit.Acronym != "" {
		rec.DataField("970__", single("a", seq+"/"+unit.Acronym))
	}

	review := reviewed
	if it.ItemType == item.TypeReport {
		review = notReviewed
	}
	rec.DataField("973__", marc.Single{
		{Code: "a", Value: affiliationOther},
		{Code: "r", Value: review},
		{Code: "s", Value: published},
	})

	rec.DataField("980__", single("a", codes.Doctype))
	rec.DataField("981__", single("a", b.opts.validationCode()))

	rec.Seal(TypeOfRecord(it.ItemType), level)
}

func single(code, value string) marc.Single {
	return marc.Single{{Code: code, Value: value}}
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
