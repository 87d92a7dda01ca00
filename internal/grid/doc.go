// Package grid accumulates retained frames into bounded batches and
// renders each batch as a fixed-size composite tile, padding unfilled
// cells with a white background.
package grid
