// Package content discovers source documents and parses them into metadata
// and markdown body.
//
// A source root holds two collections: standalone pages and blog posts. Each
// collection is a flat directory; its document files are identified by name
// patterns and keyed by their logical name (file name without extension).
package content
