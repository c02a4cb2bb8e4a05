package export

import (
	"github.com/epfl-sisb/infomarc/internal/item"
	"github.com/epfl-sisb/infomarc/internal/registry"
)

// OrganizationUnit is the lab a batch is exported for, resolved from the
// configuration item and the lab registry.
type OrganizationUnit struct {
	Acronym        string // 909C0p, 970__a suffix
	LabAuthorityID string // 909C00
	ManagerEmail   string // 909C0m
	ShortCode      string // 909C0x
	Liaison        string // 909C0z
	CreatorEmail   string // 960__a, 961__a
}

// NewOrganizationUnit builds the unit from a configuration item. known is
// false when the acronym is missing from labs; the lab fields are then left
// empty and their subfields omitted.
func NewOrganizationUnit(cfg item.Item, labs registry.Labs) (unit OrganizationUnit, known bool) {
	unit = OrganizationUnit{
		Acronym:      cfg.LabAcronym(),
		CreatorEmail: cfg.Rights,
	}
	lab, ok := labs[unit.Acronym]
	if !ok || unit.Acronym == "" {
		return unit, false
	}
	unit.LabAuthorityID = lab.RecID.String()
	unit.ManagerEmail = lab.Manager
	unit.ShortCode = lab.UID.String()
	unit.Liaison = lab.Liaison
	return unit, true
}
