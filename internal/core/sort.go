package core

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	golocale "github.com/jeandeaual/go-locale"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two cells of the same column.
type Comparator interface {
	Compare(a, b Value) int
}

// LocaleComparator compares values with the mixed-type policy:
//
//   - both strings: locale-aware collation
//   - both numbers: numeric order
//   - both booleans: false before true
//   - anything else, including missing cells: collation of the string
//     representations
//
// A LocaleComparator wraps a collator and is not safe for concurrent use;
// create one per sort.
type LocaleComparator struct {
	col *collate.Collator
}

// NewLocaleComparator returns a comparator collating for tag.
func NewLocaleComparator(tag language.Tag) *LocaleComparator {
	return &LocaleComparator{col: collate.New(tag)}
}

func (c *LocaleComparator) Compare(a, b Value) int {
	switch {
	case a.Kind() == KindString && b.Kind() == KindString:
		return c.col.CompareString(a.str, b.str)
	case a.Kind() == KindNumber && b.Kind() == KindNumber:
		return cmp.Compare(a.num, b.num)
	case a.Kind() == KindBool && b.Kind() == KindBool:
		return compareBool(a.b, b.b)
	default:
		return c.col.CompareString(a.String(), b.String())
	}
}

// PlainComparator compares string representations byte-wise.
type PlainComparator struct{}

func (PlainComparator) Compare(a, b Value) int {
	return strings.Compare(a.String(), b.String())
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// NewComparator returns a fresh comparator for the given collation mode.
func NewComparator(mode Collation, tag language.Tag) Comparator {
	if mode == CollatePlain {
		return PlainComparator{}
	}
	return NewLocaleComparator(tag)
}

// Sort returns a new dataset ordered by spec. Keys apply in sequence; a
// descending key negates its comparison. Records equal on every key keep
// their relative order. The input dataset is not modified.
func Sort(ds Dataset, spec SortSpec, c Comparator) Dataset {
	out := ds.Clone()
	if out.IsEmpty() || spec.IsEmpty() {
		return out
	}

	keys := spec.keys
	slices.SortStableFunc(out.Records, func(a, b Record) int {
		for _, k := range keys {
			r := c.Compare(a.Get(k.Column), b.Get(k.Column))
			if r == 0 {
				continue
			}
			if k.Dir == Descending {
				return -r
			}
			return r
		}
		return 0
	})
	return out
}

// ResolveLocale parses a BCP 47 tag. An empty tag falls back to the host
// locale, and anything unusable falls back to the root collation order.
func ResolveLocale(tag string) language.Tag {
	if tag == "" {
		detected, err := golocale.GetLocale()
		if err != nil {
			slog.Debug("locale detection failed, using root collation", "error", err)
			return language.Und
		}
		tag = detected
	}

	// Host locales may come as en_US or en_US.UTF-8.
	tag = strings.ReplaceAll(strings.SplitN(tag, ".", 2)[0], "_", "-")
	t, err := language.Parse(tag)
	if err != nil {
		slog.Warn("unrecognized sort locale, using root collation", "locale", tag, "error", err)
		return language.Und
	}
	return t
}
