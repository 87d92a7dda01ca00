// Package cost projects the labeling API spend for a directory of
// media files from probed durations, the sampling interval, and the
// per-image price of the chosen model.
package cost
