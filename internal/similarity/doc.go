// Package similarity implements the novelty gate that decides which
// sampled frames are distinct enough to retain. Frames are compared to
// the most recently retained frame using a windowed structural
// similarity (SSIM) score over their luminance channel.
package similarity
