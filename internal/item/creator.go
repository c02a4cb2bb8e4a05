package item

// Creator roles the exporter distinguishes.
const (
	CreatorAuthor = "author"
	CreatorEditor = "editor"
)

// Creator is a person or organisation credited on an item.
type Creator struct {
	FirstName   string `json:"firstName,omitempty" mapstructure:"firstName"`
	LastName    string `json:"lastName,omitempty" mapstructure:"lastName"`
	Name        string `json:"name,omitempty" mapstructure:"name"` // single-field form
	CreatorType string `json:"creatorType" mapstructure:"creatorType"`
	FieldMode   int    `json:"fieldMode,omitempty" mapstructure:"fieldMode"` // 1 = single-field name
}

// SingleField reports whether the creator name is stored as one string
// (typically an organisation).
func (c Creator) SingleField() bool {
	return c.FieldMode != 0 || (c.FirstName == "" && c.LastName == "" && c.Name != "")
}

// FullName formats the creator as "Last, First", or the bare name for
// single-field creators.
func (c Creator) FullName() string {
	if c.SingleField() {
		if c.Name != "" {
			return c.Name
		}
		return c.LastName
	}
	if c.FirstName == "" {
		return c.LastName
	}
	return c.LastName + ", " + c.FirstName
}
