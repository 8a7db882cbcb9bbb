package bmp

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	// image8HeaderSize is the raw BMP header kept verbatim for 8-bit files:
	// the 14-byte file header plus the 40-byte info header.
	image8HeaderSize = 54

	// image8PaletteSize is the 256-entry BGR-quad color table.
	image8PaletteSize = 1024
)

// Byte offsets of the header fields consumed at load time. The header block
// itself is opaque and round-trips unchanged on save.
const (
	offImage8DataOffset = 10 // u32 LE, offset to pixel data
	offImage8Width      = 18 // u32 LE
	offImage8Height     = 22 // u32 LE
	offImage8Depth      = 28 // u16 LE
	offImage8DataSize   = 34 // u32 LE
)

// Image8 is an uncompressed 8-bit indexed grayscale BMP image. The header
// and palette blocks are stored verbatim; pixels is a flat row-major buffer
// of width*height intensity bytes with no padding.
type Image8 struct {
	header  [image8HeaderSize]byte
	palette [image8PaletteSize]byte
	pixels  []byte

	width      uint32
	height     uint32
	colorDepth uint16
	dataSize   uint32
}

// Width returns the image width in pixels.
func (img *Image8) Width() int { return int(img.width) }

// Height returns the image height in pixels.
func (img *Image8) Height() int { return int(img.height) }

// ColorDepth returns the bits per pixel (always 8 for a loaded image).
func (img *Image8) ColorDepth() int { return int(img.colorDepth) }

// DataSize returns the pixel buffer length in bytes.
func (img *Image8) DataSize() int { return int(img.dataSize) }

// Pixels returns the flat pixel buffer (row-major, one byte per pixel).
// Mutating it mutates the image.
func (img *Image8) Pixels() []byte { return img.pixels }

// HeaderBytes returns a copy of the raw 54-byte header block.
func (img *Image8) HeaderBytes() []byte {
	out := make([]byte, image8HeaderSize)
	copy(out, img.header[:])
	return out
}

// PaletteBytes returns a copy of the raw 1024-byte color table.
func (img *Image8) PaletteBytes() []byte {
	out := make([]byte, image8PaletteSize)
	copy(out, img.palette[:])
	return out
}

// ReadImage8 decodes an 8-bit BMP from r. A failed decode never returns a
// partially initialized image.
func ReadImage8(r io.ReadSeeker) (*Image8, error) {
	img := &Image8{}

	if err := rawRead(r, 0, img.header[:]); err != nil {
		return nil, fmt.Errorf("failed to read BMP header: %w", err)
	}
	if img.header[0] != 'B' || img.header[1] != 'M' {
		return nil, Errorf(CodeBadSignature, "missing BM signature (got 0x%02X 0x%02X)",
			img.header[0], img.header[1])
	}

	// Fixed-offset field extraction from the opaque header block.
	img.width = binary.LittleEndian.Uint32(img.header[offImage8Width:])
	img.height = binary.LittleEndian.Uint32(img.header[offImage8Height:])
	img.colorDepth = binary.LittleEndian.Uint16(img.header[offImage8Depth:])
	img.dataSize = binary.LittleEndian.Uint32(img.header[offImage8DataSize:])
	dataOffset := binary.LittleEndian.Uint32(img.header[offImage8DataOffset:])

	if img.colorDepth != 8 {
		return nil, Errorf(CodeUnsupportedDepth, "color depth is %d bits, expected 8", img.colorDepth)
	}

	if err := rawRead(r, image8HeaderSize, img.palette[:]); err != nil {
		return nil, fmt.Errorf("failed to read color table: %w", err)
	}

	// Some writers leave the data-size field at 0 for uncompressed images;
	// this format carries no row padding, so width*height recovers it.
	if img.dataSize == 0 {
		img.dataSize = img.width * img.height
	}

	img.pixels = make([]byte, img.dataSize)
	if err := rawRead(r, int64(dataOffset), img.pixels); err != nil {
		return nil, fmt.Errorf("failed to read pixel data: %w", err)
	}

	return img, nil
}

// WriteImage8 encodes img to w: header, palette and pixel buffer verbatim,
// in that order.
func WriteImage8(w io.Writer, img *Image8) error {
	if img == nil || img.pixels == nil {
		return ErrNilImage
	}
	if err := writeFull(w, img.header[:]); err != nil {
		return Errorf(CodeIOWrite, "write BMP header: %v", err)
	}
	if err := writeFull(w, img.palette[:]); err != nil {
		return Errorf(CodeIOWrite, "write color table: %v", err)
	}
	if err := writeFull(w, img.pixels); err != nil {
		return Errorf(CodeIOWrite, "write pixel data: %v", err)
	}
	return nil
}

// LoadImage8 reads an 8-bit BMP image from the file at path.
func LoadImage8(path string) (*Image8, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Errorf(CodeIOOpen, "open %s: %v", path, err)
	}
	defer f.Close()
	return ReadImage8(f)
}

// SaveImage8 writes img to the file at path.
func SaveImage8(path string, img *Image8) error {
	if img == nil {
		return ErrNilImage
	}
	f, err := os.Create(path)
	if err != nil {
		return Errorf(CodeIOOpen, "create %s: %v", path, err)
	}
	if err := WriteImage8(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PrintInfo writes a read-only summary of the image geometry to w.
func (img *Image8) PrintInfo(w io.Writer) {
	fmt.Fprintf(w, "Image Info:\n")
	fmt.Fprintf(w, "  Width: %d\n", img.width)
	fmt.Fprintf(w, "  Height: %d\n", img.height)
	fmt.Fprintf(w, "  Color Depth: %d\n", img.colorDepth)
	fmt.Fprintf(w, "  Data Size: %d bytes\n", img.dataSize)
}
