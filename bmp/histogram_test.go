package bmp

import (
	"bytes"
	"testing"
)

func TestHistogramScenario2x2(t *testing.T) {
	img := testImage8(t, 2, 2, []byte{10, 20, 30, 40})

	hist, err := img.Histogram()
	if err != nil {
		t.Fatalf("Histogram failed: %v", err)
	}
	for i, count := range hist {
		want := uint32(0)
		if i == 10 || i == 20 || i == 30 || i == 40 {
			want = 1
		}
		if count != want {
			t.Errorf("hist[%d] = %d, want %d", i, count, want)
		}
	}

	lut := equalizationLUT(hist, 4)
	// cdfMin = cdf[10] = 1; scale = 255/3
	cases := map[int]uint8{10: 0, 20: 85, 30: 170, 40: 255}
	for in, want := range cases {
		if lut[in] != want {
			t.Errorf("lut[%d] = %d, want %d", in, lut[in], want)
		}
	}
	// Below the first occupied bin the mapping bottoms out at 0.
	if lut[0] != 0 || lut[9] != 0 {
		t.Errorf("lut below cdfMin: got %d, %d, want 0, 0", lut[0], lut[9])
	}
}

func TestEqualizationLUTMonotonic(t *testing.T) {
	pixels := make([]byte, 64)
	for i := range pixels {
		pixels[i] = byte((i * 37) % 200)
	}
	hist := computeHistogram(pixels)
	lut := equalizationLUT(hist, uint64(len(pixels)))

	for i := 1; i < 256; i++ {
		if lut[i] < lut[i-1] {
			t.Fatalf("lut not monotonic at %d: %d < %d", i, lut[i], lut[i-1])
		}
	}
	if lut[255] != 255 {
		t.Errorf("lut[255] = %d, want 255", lut[255])
	}
}

func TestEqualizationLUTDegenerate(t *testing.T) {
	// Single-valued image: numPixels == cdfMin, identity mapping.
	hist := computeHistogram(bytes.Repeat([]byte{123}, 16))
	lut := equalizationLUT(hist, 16)
	for i := 0; i < 256; i++ {
		if lut[i] != uint8(i) {
			t.Fatalf("degenerate lut[%d] = %d, want identity", i, lut[i])
		}
	}
}

func TestEqualize8(t *testing.T) {
	img := testImage8(t, 2, 2, []byte{10, 20, 30, 40})
	if err := img.Equalize(); err != nil {
		t.Fatalf("Equalize failed: %v", err)
	}
	want := []byte{0, 85, 170, 255}
	if !bytes.Equal(img.Pixels(), want) {
		t.Errorf("equalized pixels %v, want %v", img.Pixels(), want)
	}
}

func TestEqualize8Idempotent(t *testing.T) {
	img := testImage8(t, 2, 2, []byte{10, 20, 30, 40})
	if err := img.Equalize(); err != nil {
		t.Fatalf("Equalize failed: %v", err)
	}
	first := append([]byte(nil), img.Pixels()...)

	// The spread {0, 85, 170, 255} re-equalizes to itself exactly.
	if err := img.Equalize(); err != nil {
		t.Fatalf("second Equalize failed: %v", err)
	}
	if !bytes.Equal(img.Pixels(), first) {
		t.Errorf("second equalization moved pixels: %v -> %v", first, img.Pixels())
	}
}

func TestEqualize24GrayMatchesLUT(t *testing.T) {
	// Gray pixels have U and V within rounding of zero, so luminance
	// equalization must reduce to the 8-bit mapping per channel.
	img := testImage24(t, 2, 2, []byte{
		10, 10, 10, /**/ 20, 20, 20,
		30, 30, 30, /**/ 40, 40, 40,
	})
	if err := img.Equalize(); err != nil {
		t.Fatalf("Equalize failed: %v", err)
	}

	want := []uint8{0, 85, 170, 255}
	for i, w := range want {
		b, g, r := img.At(i%2, i/2)
		for _, got := range []uint8{b, g, r} {
			if diff := int(got) - int(w); diff < -1 || diff > 1 {
				t.Errorf("pixel %d: got %d, want %d within 1", i, got, w)
			}
		}
	}
}

func TestEqualize24PreservesChrominance(t *testing.T) {
	// A uniform color image is degenerate (identity LUT): the pixels must
	// come back unchanged up to YUV round-trip rounding.
	pixels := bytes.Repeat([]byte{200, 80, 40}, 4)
	img := testImage24(t, 2, 2, pixels)
	if err := img.Equalize(); err != nil {
		t.Fatalf("Equalize failed: %v", err)
	}
	for i, v := range img.Pixels() {
		if diff := int(v) - int(pixels[i]); diff < -1 || diff > 1 {
			t.Errorf("byte %d drifted: %d -> %d", i, pixels[i], v)
		}
	}
}
