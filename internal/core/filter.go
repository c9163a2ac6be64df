package core

import "strings"

// PullSheetMarker is the footer vendors append to exported inventory reports.
const PullSheetMarker = "Orders Contained in Pull Sheet"

// NoiseFilter drops records carrying a known boilerplate marker.
type NoiseFilter struct {
	Substrings      []string
	CaseInsensitive bool
}

// Matches reports whether any string value of rec contains a noise substring.
// Non-string values are never inspected.
func (f NoiseFilter) Matches(rec Record) bool {
	if len(f.Substrings) == 0 {
		return false
	}

	for _, v := range rec {
		s, ok := v.Str()
		if !ok {
			continue
		}
		if f.CaseInsensitive {
			s = strings.ToLower(s)
		}
		for _, sub := range f.Substrings {
			if f.CaseInsensitive {
				sub = strings.ToLower(sub)
			}
			if strings.Contains(s, sub) {
				return true
			}
		}
	}
	return false
}

// Apply returns a new dataset holding the records that do not match, in
// their original order, and the number of records removed.
func (f NoiseFilter) Apply(ds Dataset) (Dataset, int) {
	kept := make([]Record, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if !f.Matches(rec) {
			kept = append(kept, rec)
		}
	}
	return Dataset{Columns: ds.Columns, Records: kept}, len(ds.Records) - len(kept)
}
