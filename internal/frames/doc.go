// Package frames walks heterogeneous media sources frame by frame under
// a uniform abstraction. Three source variants exist: video files are
// sampled by seeking with ffmpeg, animated GIFs are stepped through
// sequentially, and static images yield exactly one frame.
package frames
