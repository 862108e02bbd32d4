// Package pagescrape turns a single web page into a structured record: its
// main readable text, the media and document references it contains, and
// page-level metadata.
//
// This package contains domain types, interfaces and the pure extraction
// core, following Ben Johnson's Standard Package Layout. Implementations live
// in subdirectories named after their primary dependency (e.g., goquery/,
// trafilatura/, sqlite/).
package pagescrape
