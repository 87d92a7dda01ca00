// Package labeler sends composite grid images to an OpenAI-compatible
// vision endpoint and writes the returned content labels as JSON, one
// file per grid plus a combined summary per source media file.
package labeler
