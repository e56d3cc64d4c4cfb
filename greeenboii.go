// Package greeenboii provides a CLI assistant that bundles a concurrent
// multi-engine web search scraper, a local to-do list, a remote note
// ("gist") manager and a project scaffolding tool.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, libsql/).
package greeenboii
