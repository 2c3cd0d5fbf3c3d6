// Package curation drives the cleanup of a document from a set of selected
// areas.
//
// A [Session] holds the areas: the page layout (header halves, columns and
// footer, or the single column mobile layout), table regions and exception
// areas per page, and the pages excluded from perimeter checks. Sessions are
// stored as JSON with [ReadSession] and [Session.Write].
//
// [Plan] turns the layout into the ordered list of regions to cut, and
// [Validate] renders the pages and rejects the plan when a crop cuts
// through content:
//
//	plan := curation.Plan(session, doc.NumPages())
//	plan, err := curation.Validate(ctx, renderer, session, plan, curation.DefaultOptions())
//
// # Page filtering
//
// [CutRegions], [FilterPages], [MarkTables] and [ReplaceImages] rewrite the
// content streams of a [PageSource] into a [PageSink], a bounded number of
// pages at a time, always appending results in page order.
//
// # Tables
//
// A [TablePipeline] runs cell detection, structure reconstruction, the
// remap to page coordinates and word assignment on table crops.
package curation
