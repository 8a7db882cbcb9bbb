package bmp

import "math"

// clampByte clamps an int to the [0, 255] byte range.
func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampRound rounds a float to the nearest integer and clamps it to a byte.
func clampRound(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(float64(v)))
}

// Negative inverts every pixel intensity.
func (img *Image8) Negative() error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	for i, v := range img.pixels {
		img.pixels[i] = 255 - v
	}
	return nil
}

// Brightness adds delta to every pixel intensity, clamping to [0, 255].
func (img *Image8) Brightness(delta int) error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	for i, v := range img.pixels {
		img.pixels[i] = clampByte(int(v) + delta)
	}
	return nil
}

// Threshold binarizes the image: intensities at or above t become 255,
// the rest become 0. t is clamped to [0, 255] first.
func (img *Image8) Threshold(t int) error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	tv := clampByte(t)
	for i, v := range img.pixels {
		if v >= tv {
			img.pixels[i] = 255
		} else {
			img.pixels[i] = 0
		}
	}
	return nil
}

// Negative inverts every color channel of every pixel.
func (img *Image24) Negative() error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	for i, v := range img.pixels {
		img.pixels[i] = 255 - v
	}
	return nil
}

// Brightness adds delta to every color channel, clamping to [0, 255].
func (img *Image24) Brightness(delta int) error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	for i, v := range img.pixels {
		img.pixels[i] = clampByte(int(v) + delta)
	}
	return nil
}

// Grayscale replaces each pixel with its luminance,
// Y = 0.299R + 0.587G + 0.114B, on all three channels.
func (img *Image24) Grayscale() error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	for i := 0; i < len(img.pixels); i += bytesPerPixel24 {
		b := float32(img.pixels[i])
		g := float32(img.pixels[i+1])
		r := float32(img.pixels[i+2])
		gray := clampRound(0.299*r + 0.587*g + 0.114*b)
		img.pixels[i] = gray
		img.pixels[i+1] = gray
		img.pixels[i+2] = gray
	}
	return nil
}
