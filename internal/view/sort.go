package view

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/johndoniego/erudite/internal/model"
)

// SortKind selects how a field is compared
type SortKind int

const (
	ByName SortKind = iota
	ByNumber
	ByDate
)

// Sortable fields
const (
	FieldName    = "name"
	FieldMembers = "members"
	FieldEvents  = "events"
	FieldPosts   = "posts"
	FieldMutual  = "mutual"
	FieldMatch   = "match"
	FieldCreated = "created"
	FieldSaved   = "saved"
)

// Criterion is a parsed sort order
type Criterion struct {
	Kind       SortKind
	Field      string
	Descending bool
}

// sortOptions maps the sort menu values used by the UI to criteria
var sortOptions = map[string]Criterion{
	"name":          {Kind: ByName, Field: FieldName},
	"name-desc":     {Kind: ByName, Field: FieldName, Descending: true},
	"popular":       {Kind: ByNumber, Field: FieldMembers, Descending: true},
	"least-members": {Kind: ByNumber, Field: FieldMembers},
	"events":        {Kind: ByNumber, Field: FieldEvents, Descending: true},
	"posts":         {Kind: ByNumber, Field: FieldPosts, Descending: true},
	"mutual":        {Kind: ByNumber, Field: FieldMutual, Descending: true},
	"match":         {Kind: ByNumber, Field: FieldMatch, Descending: true},
	"newest":        {Kind: ByDate, Field: FieldCreated, Descending: true},
	"oldest":        {Kind: ByDate, Field: FieldCreated},
	"recent":        {Kind: ByDate, Field: FieldSaved, Descending: true},
}

// ParseSortCriterion resolves a sort menu value
func ParseSortCriterion(option string) (Criterion, bool) {
	c, ok := sortOptions[option]
	return c, ok
}

// Keys extracts sortable values from T. A criterion whose field has no
// extractor leaves the order unchanged.
type Keys[T any] struct {
	Name    func(T) string
	Numbers map[string]func(T) float64
	Dates   map[string]func(T) time.Time
}

// SortBy returns a sorted copy of items. Names compare with English collation
// rules; ties keep their input order.
func SortBy[T any](items []T, c Criterion, keys Keys[T]) []T {
	out := make([]T, len(items))
	copy(out, items)

	var cmp func(a, b T) int
	switch c.Kind {
	case ByName:
		if keys.Name == nil {
			return out
		}
		col := collate.New(language.English, collate.IgnoreCase)
		cmp = func(a, b T) int {
			return col.CompareString(keys.Name(a), keys.Name(b))
		}
	case ByNumber:
		num, ok := keys.Numbers[c.Field]
		if !ok {
			return out
		}
		cmp = func(a, b T) int {
			x, y := num(a), num(b)
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	case ByDate:
		date, ok := keys.Dates[c.Field]
		if !ok {
			return out
		}
		cmp = func(a, b T) int {
			return date(a).Compare(date(b))
		}
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c.Descending {
			return cmp(out[j], out[i]) < 0
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// CommunityKeys sorts communities
var CommunityKeys = Keys[model.Community]{
	Name: func(c model.Community) string { return c.Name },
	Numbers: map[string]func(model.Community) float64{
		FieldMembers: func(c model.Community) float64 { return float64(c.Members) },
		FieldEvents:  func(c model.Community) float64 { return float64(c.Events) },
		FieldPosts:   func(c model.Community) float64 { return float64(c.Posts) },
	},
	Dates: map[string]func(model.Community) time.Time{
		FieldCreated: func(c model.Community) time.Time { return c.CreatedAt },
	},
}

// PersonKeys sorts ranked people
var PersonKeys = Keys[model.PersonMatch]{
	Name: func(p model.PersonMatch) string { return p.Name },
	Numbers: map[string]func(model.PersonMatch) float64{
		FieldMutual: func(p model.PersonMatch) float64 { return float64(p.MutualConnections) },
		FieldMatch:  func(p model.PersonMatch) float64 { return float64(p.MatchScore) },
	},
}

// SavedPostKeys sorts saved posts
var SavedPostKeys = Keys[model.SavedPost]{
	Name: func(s model.SavedPost) string { return s.Title },
	Dates: map[string]func(model.SavedPost) time.Time{
		FieldSaved: func(s model.SavedPost) time.Time { return s.SavedAt },
	},
}
