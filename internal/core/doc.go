// Package core provides the business logic of the library reporting dashboard.
//
// This package contains all domain logic independent of any UI or transport
// layer. It is used by the web handlers, the painel CLI and the tests
// without modification.
//
// # Pipeline
//
// Every request recomputes the same one-way pipeline from the cached base
// table:
//
//  1. [Dataset.Load] reads the xlsx file once per process
//  2. [ResolveCategories] and [Filter] apply the sidebar selection
//  3. [Reshape] melts the two column pairs of a [ReportMode] into long form
//  4. [BuildChart] and [RenderPNG] produce the faceted stacked bar charts
//  5. [ExportXLSX] serializes the filtered slice
//
// [Service] wires these steps together and applies the selection defaults.
//
// # Report Modes
//
// Modes are registered at init time using [RegisterMode]. Import
// internal/core/reports to register the library and staff modes:
//
//	core.RegisterMode(core.ReportMode{
//	    Key:   "library",
//	    Label: "Active Public Schools by ...",
//	    Schools: core.SeriesPair{...},
//	    Enrollment: core.SeriesPair{...},
//	})
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - DATA001-DATA005: Dataset errors (missing file, columns, numbers)
//   - SEL001-SEL002: Selection errors (unknown block or mode)
//   - CHART001-CHART002, EXP001: Chart and export errors
//   - REQ001-REQ002: Request cancelled or timed out
package core
