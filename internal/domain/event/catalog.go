package event

import "time"

// Event names.
const (
	NameLinkSelected    = "link.selected"
	NameCatalogReplaced = "catalog.replaced"
	NameLinksAppended   = "catalog.appended"
	NameLinksDeleted    = "catalog.links_deleted"
	NameCatalogSwept    = "catalog.swept"
)

// Names lists every event the catalog raises.
var Names = []string{
	NameLinkSelected,
	NameCatalogReplaced,
	NameLinksAppended,
	NameLinksDeleted,
	NameCatalogSwept,
}

// Compile-time interface checks
var (
	_ Event = LinkSelected{}
	_ Event = CatalogReplaced{}
	_ Event = LinksAppended{}
	_ Event = LinksDeleted{}
	_ Event = CatalogSwept{}
)

// LinkSelected is raised when a random selection is served as a redirect.
type LinkSelected struct {
	Base
	URL string `json:"url"`
	Tag string `json:"tag"`
}

func NewLinkSelected(url, tag string) LinkSelected {
	return LinkSelected{Base: NewBase(url), URL: url, Tag: tag}
}

func (e LinkSelected) EventName() string { return NameLinkSelected }

// CatalogReplaced is raised after the catalog was replaced wholesale.
type CatalogReplaced struct {
	Base
	Submitted int `json:"submitted"`
	Stored    int `json:"stored"`
}

func NewCatalogReplaced(submitted, stored int) CatalogReplaced {
	return CatalogReplaced{Base: NewBase(CatalogID), Submitted: submitted, Stored: stored}
}

func (e CatalogReplaced) EventName() string { return NameCatalogReplaced }

// LinksAppended is raised after new links were appended.
type LinksAppended struct {
	Base
	Submitted int `json:"submitted"`
	Added     int `json:"added"`
	Total     int `json:"total"`
}

func NewLinksAppended(submitted, added, total int) LinksAppended {
	return LinksAppended{Base: NewBase(CatalogID), Submitted: submitted, Added: added, Total: total}
}

func (e LinksAppended) EventName() string { return NameLinksAppended }

// LinksDeleted is raised after a batch delete removed at least one link.
type LinksDeleted struct {
	Base
	Removed   int `json:"removed"`
	Remaining int `json:"remaining"`
}

func NewLinksDeleted(removed, remaining int) LinksDeleted {
	return LinksDeleted{Base: NewBase(CatalogID), Removed: removed, Remaining: remaining}
}

func (e LinksDeleted) EventName() string { return NameLinksDeleted }

// CatalogSwept is raised when a liveness sweep finished.
type CatalogSwept struct {
	Base
	Checked   int           `json:"checked"`
	Removed   int           `json:"removed"`
	Remaining int           `json:"remaining"`
	Duration  time.Duration `json:"duration"`
	Scheduled bool          `json:"scheduled"`
}

func NewCatalogSwept(checked, removed, remaining int, took time.Duration, scheduled bool) CatalogSwept {
	return CatalogSwept{
		Base:      NewBase(CatalogID),
		Checked:   checked,
		Removed:   removed,
		Remaining: remaining,
		Duration:  took,
		Scheduled: scheduled,
	}
}

func (e CatalogSwept) EventName() string { return NameCatalogSwept }

// HitMilestones are hit counts worth announcing.
var HitMilestones = []int64{100, 500, 1000, 5000, 10000, 50000, 100000}

// CheckMilestone returns the milestone crossed between the two counts, or 0.
func CheckMilestone(previous, current int64) int64 {
	for _, m := range HitMilestones {
		if previous < m && current >= m {
			return m
		}
	}
	return 0
}
