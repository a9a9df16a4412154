package filter

import (
	"strings"

	"github.com/solvenote/solvenote/internal/model"
	"gorm.io/gorm"
)

// Mode selects how the values of one facet group combine.
type Mode string

const (
	// ModeAnd requires a note to be linked to every named value.
	ModeAnd Mode = "and"
	// ModeOr requires a note to be linked to at least one named value.
	ModeOr Mode = "or"
)

// ParseMode returns the mode named by s, or fallback when s names neither.
func ParseMode(s string, fallback Mode) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeAnd:
		return ModeAnd
	case ModeOr:
		return ModeOr
	}
	return fallback
}

// Predicate is one facet constraint. Predicates compose by AND only;
// OR exists solely inside a single group via the Any variants.
type Predicate interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Selection is the raw facet input for one listing request. Empty groups
// contribute no constraint. Each group carries its own mode.
type Selection struct {
	Difficulty  model.Difficulty
	Tags        []string
	TagsMode    Mode
	Sources     []string
	SourcesMode Mode
}

// Build normalizes the selection and returns its predicates. Names are
// trimmed and deduplicated first so repeated or whitespace-variant
// selections produce identical predicates.
func Build(sel Selection) []Predicate {
	preds := make([]Predicate, 0)

	if sel.Difficulty != "" {
		preds = append(preds, DifficultyIs{Difficulty: sel.Difficulty})
	}

	if tags := NormalizeNames(sel.Tags); len(tags) > 0 {
		if sel.TagsMode == ModeOr {
			preds = append(preds, TagsAny{Names: tags})
		} else {
			preds = append(preds, TagsAll{Names: tags})
		}
	}

	if sources := NormalizeNames(sel.Sources); len(sources) > 0 {
		if sel.SourcesMode == ModeOr {
			preds = append(preds, SourcesAny{Names: sources})
		} else {
			preds = append(preds, SourcesAll{Names: sources})
		}
	}

	return preds
}

// NormalizeNames trims entries, drops empties and removes duplicates
// while preserving the original order.
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// DifficultyIs matches notes whose meta record carries the difficulty.
type DifficultyIs struct {
	Difficulty model.Difficulty
}

func (p DifficultyIs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM note_meta nm WHERE nm.note_id = notes.id AND nm.difficulty = ?)",
		p.Difficulty,
	)
}

// TagsAll matches notes linked to every one of the named tags.
type TagsAll struct {
	Names []string
}

func (p TagsAll) Apply(db *gorm.DB) *gorm.DB {
	for _, name := range p.Names {
		db = db.Where(
			"EXISTS (SELECT 1 FROM note_tags nt JOIN tags t ON t.id = nt.tag_id WHERE nt.note_id = notes.id AND t.name = ?)",
			name,
		)
	}
	return db
}

// TagsAny matches notes linked to at least one of the named tags.
type TagsAny struct {
	Names []string
}

func (p TagsAny) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM note_tags nt JOIN tags t ON t.id = nt.tag_id WHERE nt.note_id = notes.id AND t.name IN (?))",
		p.Names,
	)
}

// SourcesAll matches notes linked to every one of the named sources.
type SourcesAll struct {
	Names []string
}

func (p SourcesAll) Apply(db *gorm.DB) *gorm.DB {
	for _, name := range p.Names {
		db = db.Where(
			"EXISTS (SELECT 1 FROM note_sources ns JOIN sources s ON s.id = ns.source_id WHERE ns.note_id = notes.id AND s.name = ?)",
			name,
		)
	}
	return db
}

// SourcesAny matches notes linked to at least one of the named sources.
type SourcesAny struct {
	Names []string
}

func (p SourcesAny) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"EXISTS (SELECT 1 FROM note_sources ns JOIN sources s ON s.id = ns.source_id WHERE ns.note_id = notes.id AND s.name IN (?))",
		p.Names,
	)
}
