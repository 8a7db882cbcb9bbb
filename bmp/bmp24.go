package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	// SignatureBM is the BMP magic number, "BM" little-endian.
	SignatureBM = 0x4D42

	fileHeaderSize = 14
	infoHeaderSize = 40

	bytesPerPixel24 = 3
	colorDepth24    = 24
)

// FileHeader is the 14-byte BMP file header: type, size and layout of the
// file containing the DIB.
type FileHeader struct {
	Type      uint16 // must be SignatureBM
	Size      uint32 // file size in bytes
	Reserved1 uint16 // must be zero
	Reserved2 uint16 // must be zero
	OffBits   uint32 // byte offset to the pixel array
}

// InfoHeader is the 40-byte BITMAPINFOHEADER describing geometry and pixel
// format.
type InfoHeader struct {
	Size            uint32 // header size in bytes (40)
	Width           int32  // width in pixels
	Height          int32  // height in pixels; negative means top-down on disk
	Planes          uint16 // color planes, must be 1
	BitCount        uint16 // bits per pixel
	Compression     uint32 // 0 = uncompressed, the only supported value
	SizeImage       uint32 // pixel array size in bytes, padding included
	XPelsPerMeter   int32  // horizontal resolution
	YPelsPerMeter   int32  // vertical resolution
	ColorsUsed      uint32 // palette entries in use (0 for 24-bit)
	ColorsImportant uint32 // important colors (usually 0)
}

func (h *FileHeader) marshal(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:], h.Type)
	binary.LittleEndian.PutUint32(buf[2:], h.Size)
	binary.LittleEndian.PutUint16(buf[6:], h.Reserved1)
	binary.LittleEndian.PutUint16(buf[8:], h.Reserved2)
	binary.LittleEndian.PutUint32(buf[10:], h.OffBits)
}

func (h *FileHeader) unmarshal(buf []byte) {
	h.Type = binary.LittleEndian.Uint16(buf[0:])
	h.Size = binary.LittleEndian.Uint32(buf[2:])
	h.Reserved1 = binary.LittleEndian.Uint16(buf[6:])
	h.Reserved2 = binary.LittleEndian.Uint16(buf[8:])
	h.OffBits = binary.LittleEndian.Uint32(buf[10:])
}

func (h *InfoHeader) marshal(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:], h.Size)
	binary.LittleEndian.PutUint32(buf[4:], uint32(h.Width))
	binary.LittleEndian.PutUint32(buf[8:], uint32(h.Height))
	binary.LittleEndian.PutUint16(buf[12:], h.Planes)
	binary.LittleEndian.PutUint16(buf[14:], h.BitCount)
	binary.LittleEndian.PutUint32(buf[16:], h.Compression)
	binary.LittleEndian.PutUint32(buf[20:], h.SizeImage)
	binary.LittleEndian.PutUint32(buf[24:], uint32(h.XPelsPerMeter))
	binary.LittleEndian.PutUint32(buf[28:], uint32(h.YPelsPerMeter))
	binary.LittleEndian.PutUint32(buf[32:], h.ColorsUsed)
	binary.LittleEndian.PutUint32(buf[36:], h.ColorsImportant)
}

func (h *InfoHeader) unmarshal(buf []byte) {
	h.Size = binary.LittleEndian.Uint32(buf[0:])
	h.Width = int32(binary.LittleEndian.Uint32(buf[4:]))
	h.Height = int32(binary.LittleEndian.Uint32(buf[8:]))
	h.Planes = binary.LittleEndian.Uint16(buf[12:])
	h.BitCount = binary.LittleEndian.Uint16(buf[14:])
	h.Compression = binary.LittleEndian.Uint32(buf[16:])
	h.SizeImage = binary.LittleEndian.Uint32(buf[20:])
	h.XPelsPerMeter = int32(binary.LittleEndian.Uint32(buf[24:]))
	h.YPelsPerMeter = int32(binary.LittleEndian.Uint32(buf[28:]))
	h.ColorsUsed = binary.LittleEndian.Uint32(buf[32:])
	h.ColorsImportant = binary.LittleEndian.Uint32(buf[36:])
}

// paddedRowSize returns the on-disk row length for a 24-bit image of the
// given width: width*3 rounded up to the next multiple of 4.
func paddedRowSize(width int) int {
	return (width*bytesPerPixel24 + 3) / 4 * 4
}

// Image24 is an uncompressed 24-bit BGR BMP image. The pixel buffer is a
// single flat slice, row-major, 3 bytes per pixel in B,G,R order, with no
// row padding. Row 0 is always the topmost image row regardless of the
// bottom-up row order on disk.
type Image24 struct {
	FileHeader FileHeader
	InfoHeader InfoHeader

	width      int
	height     int
	colorDepth int
	pixels     []byte
}

// Width returns the image width in pixels.
func (img *Image24) Width() int { return img.width }

// Height returns the image height in pixels.
func (img *Image24) Height() int { return img.height }

// ColorDepth returns the bits per pixel (always 24).
func (img *Image24) ColorDepth() int { return img.colorDepth }

// rowStride is the in-memory row length in bytes (unpadded).
func (img *Image24) rowStride() int { return img.width * bytesPerPixel24 }

// Row returns the in-memory bytes of row y (0 = top), unpadded BGR triples.
func (img *Image24) Row(y int) []byte {
	stride := img.rowStride()
	return img.pixels[y*stride : (y+1)*stride : (y+1)*stride]
}

// At returns the blue, green and red components of the pixel at (x, y).
func (img *Image24) At(x, y int) (b, g, r uint8) {
	i := (y*img.width + x) * bytesPerPixel24
	return img.pixels[i], img.pixels[i+1], img.pixels[i+2]
}

// Set stores the blue, green and red components of the pixel at (x, y).
func (img *Image24) Set(x, y int, b, g, r uint8) {
	i := (y*img.width + x) * bytesPerPixel24
	img.pixels[i] = b
	img.pixels[i+1] = g
	img.pixels[i+2] = r
}

// Pixels returns the flat BGR pixel buffer. Mutating it mutates the image.
func (img *Image24) Pixels() []byte { return img.pixels }

// Allocate creates a 24-bit image of the given dimensions with a zeroed
// pixel buffer and headers derived from the geometry.
func Allocate(width, height int) (*Image24, error) {
	if width <= 0 || height <= 0 {
		return nil, Errorf(CodeInvalidDimensions, "invalid dimensions %dx%d", width, height)
	}

	img := &Image24{
		width:      width,
		height:     height,
		colorDepth: colorDepth24,
		pixels:     make([]byte, width*height*bytesPerPixel24),
	}
	img.resetDerivedHeaderFields()
	return img, nil
}

// resetDerivedHeaderFields recomputes every header field that follows from
// the current geometry. Resolution and palette-count fields are left alone
// so that loaded values survive a save.
func (img *Image24) resetDerivedHeaderFields() {
	imageSize := uint32(paddedRowSize(img.width) * img.height)

	img.FileHeader.Type = SignatureBM
	img.FileHeader.OffBits = fileHeaderSize + infoHeaderSize
	img.FileHeader.Size = img.FileHeader.OffBits + imageSize
	img.FileHeader.Reserved1 = 0
	img.FileHeader.Reserved2 = 0

	img.InfoHeader.Size = infoHeaderSize
	img.InfoHeader.Width = int32(img.width)
	img.InfoHeader.Height = int32(img.height)
	img.InfoHeader.Planes = 1
	img.InfoHeader.BitCount = colorDepth24
	img.InfoHeader.Compression = 0
	img.InfoHeader.SizeImage = imageSize
}

// ReadImage24 decodes a 24-bit BMP from r. Non-fatal oddities (unexpected
// DIB header size, inconsistent bits-per-pixel) are reported to warn; pass
// nil to discard them. A failed decode never returns a partial image.
func ReadImage24(r io.ReadSeeker, warn io.Writer) (*Image24, error) {
	if warn == nil {
		warn = io.Discard
	}

	var fh FileHeader
	var buf [infoHeaderSize]byte
	if err := rawRead(r, 0, buf[:fileHeaderSize]); err != nil {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	fh.unmarshal(buf[:fileHeaderSize])
	if fh.Type != SignatureBM {
		return nil, Errorf(CodeBadSignature, "missing BM signature (got 0x%04X)", fh.Type)
	}

	var ih InfoHeader
	if err := rawRead(r, fileHeaderSize, buf[:infoHeaderSize]); err != nil {
		return nil, fmt.Errorf("failed to read info header: %w", err)
	}
	ih.unmarshal(buf[:infoHeaderSize])

	if ih.Size != infoHeaderSize {
		fmt.Fprintf(warn, "warning: unexpected DIB header size %d, expected %d\n", ih.Size, infoHeaderSize)
	}
	if ih.BitCount != colorDepth24 {
		return nil, Errorf(CodeUnsupportedDepth, "color depth is %d bits, expected 24", ih.BitCount)
	}
	if ih.Compression != 0 {
		return nil, Errorf(CodeUnsupportedCompression, "compression type %d is not supported", ih.Compression)
	}

	// Height may be negative on disk to flag top-down row order; the buffer
	// is sized from the magnitude.
	width := int(ih.Width)
	height := int(ih.Height)
	if height < 0 {
		height = -height
	}
	if width <= 0 || height <= 0 {
		return nil, Errorf(CodeInvalidDimensions, "invalid dimensions %dx%d", ih.Width, ih.Height)
	}

	img, err := Allocate(width, height)
	if err != nil {
		return nil, err
	}
	img.FileHeader = fh
	img.InfoHeader = ih

	if err := img.readPixelData(r, warn); err != nil {
		return nil, err
	}
	return img, nil
}

// readPixelData fills the pixel buffer from the padded bottom-up rows at
// the recorded pixel-data offset. The first row in the file is the bottom
// image row and lands in memory row height-1.
func (img *Image24) readPixelData(r io.ReadSeeker, warn io.Writer) error {
	bpp := int(img.InfoHeader.BitCount) / 8
	if bpp != bytesPerPixel24 {
		fmt.Fprintf(warn, "warning: expected %d bytes per pixel, got %d; assuming %d\n",
			bytesPerPixel24, bpp, bytesPerPixel24)
	}

	rowUnpadded := img.rowStride()
	rowPadded := paddedRowSize(img.width)

	if _, err := r.Seek(int64(img.FileHeader.OffBits), io.SeekStart); err != nil {
		return Errorf(CodeIORead, "seek to pixel data at %d: %v", img.FileHeader.OffBits, err)
	}

	rowBuf := make([]byte, rowPadded)
	for y := img.height - 1; y >= 0; y-- {
		if _, err := io.ReadFull(r, rowBuf); err != nil {
			return Errorf(CodeIORead, "read pixel row %d: %v", y, err)
		}
		copy(img.Row(y), rowBuf[:rowUnpadded])
	}
	return nil
}

// writePixelData writes the pixel buffer as padded bottom-up rows at the
// recorded pixel-data offset. Padding bytes are zero.
func (img *Image24) writePixelData(w io.WriteSeeker) error {
	rowUnpadded := img.rowStride()
	rowPadded := paddedRowSize(img.width)

	if _, err := w.Seek(int64(img.FileHeader.OffBits), io.SeekStart); err != nil {
		return Errorf(CodeIOWrite, "seek to pixel data at %d: %v", img.FileHeader.OffBits, err)
	}

	rowBuf := make([]byte, rowPadded)
	for y := img.height - 1; y >= 0; y-- {
		copy(rowBuf, img.Row(y))
		for i := rowUnpadded; i < rowPadded; i++ {
			rowBuf[i] = 0
		}
		if err := writeFull(w, rowBuf); err != nil {
			return Errorf(CodeIOWrite, "write pixel row %d: %v", y, err)
		}
	}
	return nil
}

// WriteImage24 encodes img to w. Derived header fields are recomputed from
// the current geometry first, so external header mutation is reconciled
// here rather than trusted.
func WriteImage24(w io.WriteSeeker, img *Image24) error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}

	img.resetDerivedHeaderFields()

	var buf [infoHeaderSize]byte
	img.FileHeader.marshal(buf[:fileHeaderSize])
	if err := rawWrite(w, 0, buf[:fileHeaderSize]); err != nil {
		return fmt.Errorf("failed to write file header: %w", err)
	}
	img.InfoHeader.marshal(buf[:infoHeaderSize])
	if err := rawWrite(w, fileHeaderSize, buf[:infoHeaderSize]); err != nil {
		return fmt.Errorf("failed to write info header: %w", err)
	}
	return img.writePixelData(w)
}

// LoadImage24 reads a 24-bit BMP image from the file at path. Non-fatal
// warnings go to stderr.
func LoadImage24(path string) (*Image24, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Errorf(CodeIOOpen, "open %s: %v", path, err)
	}
	defer f.Close()
	return ReadImage24(f, os.Stderr)
}

// SaveImage24 writes img to the file at path.
func SaveImage24(path string, img *Image24) error {
	if img == nil {
		return ErrNilImage
	}
	f, err := os.Create(path)
	if err != nil {
		return Errorf(CodeIOOpen, "create %s: %v", path, err)
	}
	if err := WriteImage24(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PrintInfo writes a read-only summary of the image geometry to w.
func (img *Image24) PrintInfo(w io.Writer) {
	fmt.Fprintf(w, "Image Info:\n")
	fmt.Fprintf(w, "  Width: %d\n", img.width)
	fmt.Fprintf(w, "  Height: %d\n", img.height)
	fmt.Fprintf(w, "  Color Depth: %d\n", img.colorDepth)
	fmt.Fprintf(w, "  Image Size: %d bytes\n", img.InfoHeader.SizeImage)
	fmt.Fprintf(w, "  File Size: %d bytes\n", img.FileHeader.Size)
	fmt.Fprintf(w, "  Data Offset: %d\n", img.FileHeader.OffBits)
}
