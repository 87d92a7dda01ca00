// Package metrics defines Prometheus instrumentation for the extraction
// pipeline and an optional scrape endpoint for long batch runs.
package metrics
