package similarity

import (
	"image"
	"image/color"
)

// SSIM regularization constants for 8-bit dynamic range:
// C1 = (K1·L)², C2 = (K2·L)² with K1=0.01, K2=0.03, L=255.
const (
	ssimC1 = 6.5025
	ssimC2 = 58.5225

	// ssimWindow is the side of the square comparison window. Shrinks
	// for images smaller than the window.
	ssimWindow = 7
)

// luminance is a single-channel float buffer. Comparing luminance only,
// rather than full color, keeps the comparison cheap without hurting
// selectivity.
type luminance struct {
	w, h int
	pix  []float64
}

// toLuminance converts an image to a luminance buffer using the
// BT.601 weights.
func toLuminance(img image.Image) *luminance {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	l := &luminance{w: w, h: h, pix: make([]float64, w*h)}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			l.pix[i] = 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
			i++
		}
	}
	return l
}

// integral builds a summed-area table with one row/column of zero
// padding, so window sums are four lookups.
func integral(w, h int, value func(i int) float64) []float64 {
	table := make([]float64, (w+1)*(h+1))
	stride := w + 1
	for y := 0; y < h; y++ {
		var rowSum float64
		for x := 0; x < w; x++ {
			rowSum += value(y*w + x)
			table[(y+1)*stride+(x+1)] = table[y*stride+(x+1)] + rowSum
		}
	}
	return table
}

func windowSum(table []float64, stride, x, y, win int) float64 {
	return table[(y+win)*stride+(x+win)] -
		table[y*stride+(x+win)] -
		table[(y+win)*stride+x] +
		table[y*stride+x]
}

// ssim computes the mean structural similarity between two luminance
// buffers of identical dimensions using a uniform sliding window with
// unbiased variance/covariance estimates. Output is in [-1, 1]; 1 means
// identical.
func ssim(a, b *luminance) float64 {
	win := ssimWindow
	if a.w < win {
		win = a.w
	}
	if a.h < win {
		win = a.h
	}
	if win < 1 {
		return 0
	}

	stride := a.w + 1
	sumA := integral(a.w, a.h, func(i int) float64 { return a.pix[i] })
	sumB := integral(a.w, a.h, func(i int) float64 { return b.pix[i] })
	sumAA := integral(a.w, a.h, func(i int) float64 { return a.pix[i] * a.pix[i] })
	sumBB := integral(a.w, a.h, func(i int) float64 { return b.pix[i] * b.pix[i] })
	sumAB := integral(a.w, a.h, func(i int) float64 { return a.pix[i] * b.pix[i] })

	n := float64(win * win)
	covNorm := 1.0
	if n > 1 {
		covNorm = n / (n - 1)
	}

	var total float64
	var count int
	for y := 0; y+win <= a.h; y++ {
		for x := 0; x+win <= a.w; x++ {
			ux := windowSum(sumA, stride, x, y, win) / n
			uy := windowSum(sumB, stride, x, y, win) / n
			vx := covNorm * (windowSum(sumAA, stride, x, y, win)/n - ux*ux)
			vy := covNorm * (windowSum(sumBB, stride, x, y, win)/n - uy*uy)
			vxy := covNorm * (windowSum(sumAB, stride, x, y, win)/n - ux*uy)

			num := (2*ux*uy + ssimC1) * (2*vxy + ssimC2)
			den := (ux*ux + uy*uy + ssimC1) * (vx + vy + ssimC2)
			total += num / den
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Score returns the structural similarity of two images. Images of
// differing dimensions score 0, since SSIM is undefined across sizes.
func Score(a, b image.Image) float64 {
	la, lb := toLuminance(a), toLuminance(b)
	if la.w != lb.w || la.h != lb.h {
		return 0
	}
	return ssim(la, lb)
}
