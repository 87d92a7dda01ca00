// Package extractor orchestrates frame sampling and grid composition
// across input media files. Each file gets its own sequential pipeline
// (classify, sample, novelty-filter, compose, persist); parallelism
// exists only across files, never within one.
package extractor
