package bmp

import (
	"io"
)

// rawRead seeks to the absolute byte position and fills buf exactly.
// A failed seek or a short read (including EOF) is reported as CodeIORead.
func rawRead(r io.ReadSeeker, position int64, buf []byte) error {
	if _, err := r.Seek(position, io.SeekStart); err != nil {
		return Errorf(CodeIORead, "seek to %d for read: %v", position, err)
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return Errorf(CodeIORead, "read %d bytes at %d: %v", len(buf), position, err)
	}
	return nil
}

// rawWrite seeks to the absolute byte position and writes buf exactly.
func rawWrite(w io.WriteSeeker, position int64, buf []byte) error {
	if _, err := w.Seek(position, io.SeekStart); err != nil {
		return Errorf(CodeIOWrite, "seek to %d for write: %v", position, err)
	}
	if err := writeFull(w, buf); err != nil {
		return Errorf(CodeIOWrite, "write %d bytes at %d: %v", len(buf), position, err)
	}
	return nil
}

// writeFull writes all of buf or returns an error. io.Writer already
// promises this, but short-write bugs in custom writers surface here as
// io.ErrShortWrite instead of silent truncation.
func writeFull(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}
