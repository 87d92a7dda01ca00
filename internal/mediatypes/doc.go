// Package mediatypes classifies input files into the handling variants
// understood by the extraction pipeline: video, animated GIF, or static
// image. Classification is derived once from the file extension and is
// free of side effects.
package mediatypes
