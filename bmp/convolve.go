package bmp

// Kernel is a square convolution matrix of weights, indexed [row][col],
// with its center at (len/2, len/2). The side length must be odd.
type Kernel [][]float32

// NewKernel allocates a zeroed size x size kernel.
func NewKernel(size int) Kernel {
	k := make(Kernel, size)
	for i := range k {
		k[i] = make([]float32, size)
	}
	return k
}

// validate checks the kernel shape and returns its radius (size/2).
func (k Kernel) validate() (int, error) {
	if k == nil {
		return 0, NewError(CodeInvalidKernel, "kernel is nil")
	}
	size := len(k)
	if size <= 0 || size%2 == 0 {
		return 0, Errorf(CodeInvalidKernel, "kernel size %d must be positive and odd", size)
	}
	for i, row := range k {
		if len(row) != size {
			return 0, Errorf(CodeInvalidKernel, "kernel row %d has %d weights, expected %d", i, len(row), size)
		}
	}
	return size / 2, nil
}

// ApplyFilter convolves the image with k. All sums are computed from a
// snapshot of the pre-filter pixels. Pixels within kernel-radius of any
// edge are left unmodified.
func (img *Image8) ApplyFilter(k Kernel) error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	radius, err := k.validate()
	if err != nil {
		return err
	}

	width := int(img.width)
	height := int(img.height)

	original := make([]byte, len(img.pixels))
	copy(original, img.pixels)

	for y := radius; y < height-radius; y++ {
		for x := radius; x < width-radius; x++ {
			var sum float32
			for ky := -radius; ky <= radius; ky++ {
				for kx := -radius; kx <= radius; kx++ {
					p := original[(y+ky)*width+(x+kx)]
					sum += float32(p) * k[ky+radius][kx+radius]
				}
			}
			img.pixels[y*width+x] = clampRound(sum)
		}
	}
	return nil
}

// ApplyFilter convolves the image with k. All sums are computed from a
// snapshot of the pre-filter pixels. Every pixel is written; out-of-bounds
// neighbor coordinates clamp to the nearest valid row and column.
func (img *Image24) ApplyFilter(k Kernel) error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	radius, err := k.validate()
	if err != nil {
		return err
	}

	width := img.width
	height := img.height

	original := make([]byte, len(img.pixels))
	copy(original, img.pixels)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sumB, sumG, sumR float32
			for ky := -radius; ky <= radius; ky++ {
				ny := y + ky
				if ny < 0 {
					ny = 0
				} else if ny >= height {
					ny = height - 1
				}
				for kx := -radius; kx <= radius; kx++ {
					nx := x + kx
					if nx < 0 {
						nx = 0
					} else if nx >= width {
						nx = width - 1
					}
					w := k[ky+radius][kx+radius]
					i := (ny*width + nx) * bytesPerPixel24
					sumB += float32(original[i]) * w
					sumG += float32(original[i+1]) * w
					sumR += float32(original[i+2]) * w
				}
			}
			img.Set(x, y, clampRound(sumB), clampRound(sumG), clampRound(sumR))
		}
	}
	return nil
}

// FilterKind names one of the built-in convolution kernels.
type FilterKind int

const (
	FilterBoxBlur FilterKind = iota
	FilterGaussianBlur
	FilterSharpen
	FilterOutline
	FilterEmboss
)

func (f FilterKind) String() string {
	switch f {
	case FilterBoxBlur:
		return "box blur"
	case FilterGaussianBlur:
		return "gaussian blur"
	case FilterSharpen:
		return "sharpen"
	case FilterOutline:
		return "outline"
	case FilterEmboss:
		return "emboss"
	default:
		return "unknown filter"
	}
}

// BoxBlurKernel returns the 3x3 mean filter, all weights 1/9.
func BoxBlurKernel() Kernel {
	k := NewKernel(3)
	for y := range k {
		for x := range k[y] {
			k[y][x] = 1.0 / 9.0
		}
	}
	return k
}

// GaussianBlurKernel returns the 3x3 gaussian approximation
// [1 2 1; 2 4 2; 1 2 1] / 16.
func GaussianBlurKernel() Kernel {
	return Kernel{
		{1.0 / 16.0, 2.0 / 16.0, 1.0 / 16.0},
		{2.0 / 16.0, 4.0 / 16.0, 2.0 / 16.0},
		{1.0 / 16.0, 2.0 / 16.0, 1.0 / 16.0},
	}
}

// SharpenKernel returns the 3x3 sharpening kernel [0 -1 0; -1 5 -1; 0 -1 0].
func SharpenKernel() Kernel {
	return Kernel{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}
}

// OutlineKernel returns the 3x3 edge-detection kernel with center weight 8.
func OutlineKernel() Kernel {
	return Kernel{
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	}
}

// EmbossKernel returns the 3x3 emboss kernel [-2 -1 0; -1 1 1; 0 1 2].
func EmbossKernel() Kernel {
	return Kernel{
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	}
}

// KernelFor returns the kernel for a named filter.
func KernelFor(kind FilterKind) (Kernel, error) {
	switch kind {
	case FilterBoxBlur:
		return BoxBlurKernel(), nil
	case FilterGaussianBlur:
		return GaussianBlurKernel(), nil
	case FilterSharpen:
		return SharpenKernel(), nil
	case FilterOutline:
		return OutlineKernel(), nil
	case FilterEmboss:
		return EmbossKernel(), nil
	default:
		return nil, Errorf(CodeInvalidKernel, "unknown filter kind %d", int(kind))
	}
}

// ApplyNamedFilter applies one of the built-in kernels by name.
func (img *Image8) ApplyNamedFilter(kind FilterKind) error {
	k, err := KernelFor(kind)
	if err != nil {
		return err
	}
	return img.ApplyFilter(k)
}

// ApplyNamedFilter applies one of the built-in kernels by name.
func (img *Image24) ApplyNamedFilter(kind FilterKind) error {
	k, err := KernelFor(kind)
	if err != nil {
		return err
	}
	return img.ApplyFilter(k)
}

// BoxBlur applies the 3x3 mean filter.
func (img *Image8) BoxBlur() error { return img.ApplyFilter(BoxBlurKernel()) }

// GaussianBlur applies the 3x3 gaussian blur.
func (img *Image8) GaussianBlur() error { return img.ApplyFilter(GaussianBlurKernel()) }

// Sharpen applies the 3x3 sharpening filter.
func (img *Image8) Sharpen() error { return img.ApplyFilter(SharpenKernel()) }

// Outline applies the 3x3 edge-detection filter.
func (img *Image8) Outline() error { return img.ApplyFilter(OutlineKernel()) }

// Emboss applies the 3x3 emboss filter.
func (img *Image8) Emboss() error { return img.ApplyFilter(EmbossKernel()) }

// BoxBlur applies the 3x3 mean filter.
func (img *Image24) BoxBlur() error { return img.ApplyFilter(BoxBlurKernel()) }

// GaussianBlur applies the 3x3 gaussian blur.
func (img *Image24) GaussianBlur() error { return img.ApplyFilter(GaussianBlurKernel()) }

// Sharpen applies the 3x3 sharpening filter.
func (img *Image24) Sharpen() error { return img.ApplyFilter(SharpenKernel()) }

// Outline applies the 3x3 edge-detection filter.
func (img *Image24) Outline() error { return img.ApplyFilter(OutlineKernel()) }

// Emboss applies the 3x3 emboss filter.
func (img *Image24) Emboss() error { return img.ApplyFilter(EmbossKernel()) }
