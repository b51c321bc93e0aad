// Package marketdesk provides the domain model of the marketdesk research
// dashboard: the assets being monitored, the watchlists and portfolios that
// group them, their JSONL persistence, and live quote fetching.
//
// Long-running document generation jobs (one-pagers, memos produced by the
// documents backend) are followed by the tracker subpackage; the HTTP client
// for that backend lives in docsvc.
//
// This package serves as the foundational logic for the `mdesk` command-line
// tool.
package marketdesk
