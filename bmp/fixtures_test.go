package bmp

import (
	"encoding/binary"
	"testing"
)

// makeBMP8 builds a well-formed 8-bit BMP file image: 54-byte header,
// grayscale-ramp palette, then the pixel bytes unchanged (no padding).
// dataSizeField goes into the header verbatim, so 0 exercises the
// derive-from-dimensions fallback.
func makeBMP8(t *testing.T, width, height int, pixels []byte, dataSizeField uint32) []byte {
	t.Helper()
	if len(pixels) != width*height {
		t.Fatalf("fixture bug: %d pixel bytes for %dx%d", len(pixels), width, height)
	}

	const dataOffset = image8HeaderSize + image8PaletteSize
	file := make([]byte, dataOffset+len(pixels))

	h := file[:image8HeaderSize]
	h[0] = 'B'
	h[1] = 'M'
	binary.LittleEndian.PutUint32(h[2:], uint32(len(file)))
	binary.LittleEndian.PutUint32(h[offImage8DataOffset:], dataOffset)
	binary.LittleEndian.PutUint32(h[14:], 40)
	binary.LittleEndian.PutUint32(h[offImage8Width:], uint32(width))
	binary.LittleEndian.PutUint32(h[offImage8Height:], uint32(height))
	binary.LittleEndian.PutUint16(h[26:], 1)
	binary.LittleEndian.PutUint16(h[offImage8Depth:], 8)
	binary.LittleEndian.PutUint32(h[offImage8DataSize:], dataSizeField)
	binary.LittleEndian.PutUint32(h[46:], 256)

	pal := file[image8HeaderSize:dataOffset]
	for i := 0; i < 256; i++ {
		pal[i*4] = byte(i)
		pal[i*4+1] = byte(i)
		pal[i*4+2] = byte(i)
	}

	copy(file[dataOffset:], pixels)
	return file
}

// makeBMP24 builds a well-formed 24-bit BMP file image from top-down BGR
// pixel rows: 14+40 byte headers, then bottom-up rows padded to 4 bytes.
// A negative fileHeight requests a top-down height field while the rows are
// still written bottom-up (the layout the codec always assumes).
func makeBMP24(t *testing.T, width, height int, topDownBGR []byte, fileHeight int32) []byte {
	t.Helper()
	if len(topDownBGR) != width*height*3 {
		t.Fatalf("fixture bug: %d pixel bytes for %dx%d", len(topDownBGR), width, height)
	}

	rowUnpadded := width * 3
	rowPadded := paddedRowSize(width)
	imageSize := rowPadded * height
	const offset = fileHeaderSize + infoHeaderSize
	file := make([]byte, offset+imageSize)

	binary.LittleEndian.PutUint16(file[0:], SignatureBM)
	binary.LittleEndian.PutUint32(file[2:], uint32(len(file)))
	binary.LittleEndian.PutUint32(file[10:], offset)

	ih := file[fileHeaderSize:offset]
	binary.LittleEndian.PutUint32(ih[0:], infoHeaderSize)
	binary.LittleEndian.PutUint32(ih[4:], uint32(width))
	binary.LittleEndian.PutUint32(ih[8:], uint32(fileHeight))
	binary.LittleEndian.PutUint16(ih[12:], 1)
	binary.LittleEndian.PutUint16(ih[14:], 24)
	binary.LittleEndian.PutUint32(ih[20:], uint32(imageSize))

	for y := 0; y < height; y++ {
		// memory row y lands at file row height-1-y from the data offset
		dst := offset + (height-1-y)*rowPadded
		copy(file[dst:dst+rowUnpadded], topDownBGR[y*rowUnpadded:(y+1)*rowUnpadded])
	}
	return file
}

// gradientPixels returns n bytes 0,1,2,… wrapping at 256.
func gradientPixels(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}
