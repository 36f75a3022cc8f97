// Package docgraph builds knowledge graphs from documentation sites.
// It crawls a site breadth-first under depth and page bounds, extracts
// structured content from each page, and records which pages reference
// which, so that the resulting graph can teach an unfamiliar framework.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package docgraph
