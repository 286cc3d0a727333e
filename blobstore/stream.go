package blobstore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// StreamWriter writes a sequence of key/value pairs to the blob store's
// write side.
type StreamWriter interface {
	Write(key, value []byte) error
	// Stats returns the number of pairs and bytes written so far.
	Stats() (int, int)
}

// StreamIterator reads a sequence of key/value pairs back, in write
// order for BinaryStreamIterator specifically (format is length-prefixed
// and strictly sequential).
type StreamIterator interface {
	Iterate(func(k, v []byte) bool) error
}

// BinaryStreamWriter writes each key/value pair as a 2-byte
// little-endian length-prefixed key followed by a 4-byte
// length-prefixed value.
type BinaryStreamWriter struct {
	w         io.Writer
	kvCount   int
	byteCount int
}

var _ StreamWriter = (*BinaryStreamWriter)(nil)

// NewBinaryStreamWriter wraps w as a BinaryStreamWriter.
func NewBinaryStreamWriter(w io.Writer) *BinaryStreamWriter {
	return &BinaryStreamWriter{w: w}
}

func (b *BinaryStreamWriter) Write(key, value []byte) error {
	if err := writeBytes16(b.w, key); err != nil {
		return err
	}
	b.byteCount += len(key) + 2
	if err := writeBytes32(b.w, value); err != nil {
		return err
	}
	b.byteCount += len(value) + 4
	b.kvCount++
	return nil
}

func (b *BinaryStreamWriter) Stats() (int, int) { return b.kvCount, b.byteCount }

// BinaryStreamIterator deserializes a stream written by BinaryStreamWriter.
type BinaryStreamIterator struct {
	r io.Reader
}

var _ StreamIterator = BinaryStreamIterator{}

// NewBinaryStreamIterator wraps r as a BinaryStreamIterator.
func NewBinaryStreamIterator(r io.Reader) *BinaryStreamIterator {
	return &BinaryStreamIterator{r: r}
}

func (b BinaryStreamIterator) Iterate(fun func(k, v []byte) bool) error {
	for {
		k, err := readBytes16(b.r)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		v, err := readBytes32(b.r)
		if err != nil {
			return err
		}
		if !fun(k, v) {
			return nil
		}
	}
}

// BinaryStreamFileWriter is a BinaryStreamWriter backed by a file.
type BinaryStreamFileWriter struct {
	*BinaryStreamWriter
	file *os.File
}

// CreateStreamFile creates fname and returns a writer over it.
func CreateStreamFile(fname string) (*BinaryStreamFileWriter, error) {
	f, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	return &BinaryStreamFileWriter{BinaryStreamWriter: NewBinaryStreamWriter(f), file: f}, nil
}

func (w *BinaryStreamFileWriter) Close() error { return w.file.Close() }

// BinaryStreamFileIterator is a BinaryStreamIterator backed by a file.
type BinaryStreamFileIterator struct {
	*BinaryStreamIterator
	file *os.File
}

// OpenStreamFile opens fname for reading as a key/value stream.
func OpenStreamFile(fname string) (*BinaryStreamFileIterator, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	return &BinaryStreamFileIterator{BinaryStreamIterator: NewBinaryStreamIterator(f), file: f}, nil
}

func (r *BinaryStreamFileIterator) Close() error { return r.file.Close() }

// DumpToFile writes every pair in s to fname using the binary stream
// format, returning the total byte count written.
func DumpToFile(s KVIterator, fname string) (int, error) {
	w, err := CreateStreamFile(fname)
	if err != nil {
		return 0, err
	}
	defer w.Close()
	var writeErr error
	s.Iterate(func(k, v []byte) bool {
		if err := w.Write(k, v); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	if writeErr != nil {
		return 0, writeErr
	}
	_, byteCount := w.Stats()
	return byteCount, nil
}

// LoadFromFile reads every pair from fname (as written by DumpToFile)
// into dst.
func LoadFromFile(dst KVWriter, fname string) (int, error) {
	it, err := OpenStreamFile(fname)
	if err != nil {
		return 0, err
	}
	defer it.Close()
	n := 0
	err = it.Iterate(func(k, v []byte) bool {
		dst.Set(k, v)
		n++
		return true
	})
	return n, err
}

func writeBytes16(w io.Writer, data []byte) error {
	if len(data) > math.MaxUint16 {
		return fmt.Errorf("blobstore: data too long for a 16-bit length prefix (%d bytes)", len(data))
	}
	var lenBuf [2]byte
	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err := w.Write(data)
	return err
}

func readBytes16(r io.Reader) ([]byte, error) {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	length := binary.LittleEndian.Uint16(lenBuf[:])
	if length == 0 {
		return []byte{}, nil
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}

func writeBytes32(w io.Writer, data []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err := w.Write(data)
	return err
}

func readBytes32(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, err
	}
	length := binary.LittleEndian.Uint32(lenBuf[:])
	if length == 0 {
		return []byte{}, nil
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}
	return data, nil
}
