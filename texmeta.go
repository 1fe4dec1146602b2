// Package texmeta extracts catalog metadata from LaTeX technical documents.
// It flattens a root document and its includes into a single source, then
// locates known lsstdoc commands (title, authors, abstract, handle, draft
// status) and renders each field as raw LaTeX, HTML and plain text.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or format (e.g., sqlite/, tex/, lsstdoc/).
package texmeta
