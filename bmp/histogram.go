package bmp

import "math"

// computeHistogram counts the occurrences of each byte intensity.
func computeHistogram(data []byte) [256]uint32 {
	var hist [256]uint32
	for _, v := range data {
		hist[v]++
	}
	return hist
}

// equalizationLUT builds the histogram-equalization lookup table from hist.
// The cumulative distribution is normalized against its smallest nonzero
// value; a single-valued image degenerates to the identity mapping.
func equalizationLUT(hist [256]uint32, numPixels uint64) [256]uint8 {
	var lut [256]uint8

	var cdf [256]uint64
	cdf[0] = uint64(hist[0])
	for i := 1; i < 256; i++ {
		cdf[i] = cdf[i-1] + uint64(hist[i])
	}

	var cdfMin uint64
	for i := 0; i < 256; i++ {
		if cdf[i] > 0 {
			cdfMin = cdf[i]
			break
		}
	}

	if numPixels <= cdfMin {
		for i := range lut {
			lut[i] = uint8(i)
		}
		return lut
	}

	scale := 255.0 / float64(numPixels-cdfMin)
	for i := 0; i < 256; i++ {
		// Entries below the first occupied bin have cdf[i] < cdfMin and
		// map to 0 through the clamped numerator.
		var numerator uint64
		if cdf[i] > cdfMin {
			numerator = cdf[i] - cdfMin
		}
		v := math.Round(float64(numerator) * scale)
		if v > 255 {
			v = 255
		}
		lut[i] = uint8(v)
	}
	return lut
}

// Histogram returns the 256-bin intensity histogram of the pixel buffer.
func (img *Image8) Histogram() ([256]uint32, error) {
	if img == nil || img.pixels == nil {
		return [256]uint32{}, ErrNilImage
	}
	return computeHistogram(img.pixels), nil
}

// Equalize applies histogram equalization to the image in place.
func (img *Image8) Equalize() error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	hist := computeHistogram(img.pixels)
	lut := equalizationLUT(hist, uint64(img.width)*uint64(img.height))
	for i, v := range img.pixels {
		img.pixels[i] = lut[v]
	}
	return nil
}

// RGB <-> YUV conversion coefficients. Only the luminance channel is
// equalized; chrominance passes through untouched.
const (
	yuvUR = -0.14713
	yuvUG = -0.28886
	yuvUB = 0.436
	yuvVR = 0.615
	yuvVG = -0.51499
	yuvVB = -0.10001

	rgbRV = 1.13983
	rgbGU = -0.39465
	rgbGV = -0.58060
	rgbBU = 2.03211
)

// yuv holds one pixel's float-precision luminance and chrominance.
type yuv struct {
	y, u, v float32
}

// Equalize applies luminance-only histogram equalization: each pixel is
// converted to YUV, the Y histogram is equalized through a lookup table,
// and the pixel is rebuilt from the equalized Y with its original U and V.
func (img *Image24) Equalize() error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}

	numPixels := img.width * img.height
	yuvData := make([]yuv, numPixels)
	yInt := make([]uint8, numPixels)

	for i := 0; i < numPixels; i++ {
		p := img.pixels[i*bytesPerPixel24:]
		bf := float32(p[0])
		gf := float32(p[1])
		rf := float32(p[2])

		y := 0.299*rf + 0.587*gf + 0.114*bf
		u := yuvUR*rf + yuvUG*gf + yuvUB*bf
		v := yuvVR*rf + yuvVG*gf + yuvVB*bf

		yuvData[i] = yuv{y: y, u: u, v: v}
		yInt[i] = clampRound(y)
	}

	hist := computeHistogram(yInt)
	lut := equalizationLUT(hist, uint64(numPixels))

	for i := 0; i < numPixels; i++ {
		u := yuvData[i].u
		v := yuvData[i].v
		yEq := float32(lut[yInt[i]])

		p := img.pixels[i*bytesPerPixel24:]
		p[0] = clampRound(yEq + rgbBU*u)
		p[1] = clampRound(yEq + rgbGU*u + rgbGV*v)
		p[2] = clampRound(yEq + rgbRV*v)
	}
	return nil
}
