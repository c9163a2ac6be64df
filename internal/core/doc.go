// Package core provides the pipeline that turns an uploaded inventory CSV
// into a sorted download.
//
// The package holds all domain logic independent of the web layer. It can be
// used by HTTP handlers, the one-shot API or tests without modification.
//
// # Pipeline
//
// Every upload runs through the same stages:
//
//  1. [Ingest] reads the header row and data rows into a [Dataset]
//  2. [NoiseFilter.Apply] drops pull-sheet marker rows
//  3. The variant's [NormalizeFunc], if any, maps rows onto a fixed schema
//  4. [Sort] orders records by a [SortSpec]
//  5. [Serialize] writes the result back as CSV
//
// # Variants
//
// A variant bundles parse options, a noise filter, an optional normalizer
// and a sort policy. Variants are registered at init time using [Register]:
//
//	core.Register(core.VariantDefinition{
//	    Info:      core.VariantInfo{Key: "cards", ExportName: "sorted_cards.csv"},
//	    Parse:     core.ParseOptions{Trim: true},
//	    Filter:    core.NoiseFilter{Substrings: []string{core.PullSheetMarker}},
//	    Normalize: core.NormalizeCards,
//	    FixedSpec: cardOrder,
//	})
//
// # Sessions
//
// [Service] keeps one dataset per browser session. Uploads are
// last-write-wins and bounded by an [UploadLimiter]; idle sessions are
// removed by the janitor started with [Service.StartSessionJanitor].
//
// # Error Handling
//
// Malformed CSV surfaces as a [*ParseError] whose message is shown verbatim.
// Panics in later stages become [ErrProcessing]. Everything else is mapped to
// a user-facing message with a support code by [MapError].
package core
