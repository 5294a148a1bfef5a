package npz

import (
	"archive/zip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// Entry is one float32 array to be written into an archive.
type Entry struct {
	Name  string
	Shape []int64
	Data  []float32
}

// Write encodes entries as a packed voice archive readable by Load. Used by
// voice-pack export tooling and round-trip tests.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)

	for _, e := range entries {
		count, err := elementCount(e.Shape)
		if err != nil {
			return fmt.Errorf("npz: entry %q: %w", e.Name, err)
		}

		if count != len(e.Data) {
			return fmt.Errorf("npz: entry %q: shape %v wants %d elements, have %d", e.Name, e.Shape, count, len(e.Data))
		}

		f, err := zw.Create(e.Name + ".npy")
		if err != nil {
			return fmt.Errorf("npz: create entry %q: %w", e.Name, err)
		}

		if err := writeRecord(f, e.Shape, e.Data); err != nil {
			return fmt.Errorf("npz: entry %q: %w", e.Name, err)
		}
	}

	return zw.Close()
}

// writeRecord emits a version 1.0 float32 record: magic, version, 2-byte LE
// header length, ASCII header dictionary padded with spaces to 64-byte total
// alignment and closed by a newline, then the little-endian payload.
func writeRecord(w io.Writer, shape []int64, data []float32) error {
	header := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': %s, }", shapeTuple(shape))

	// magic(6) + version(2) + headerLen(2) + header → multiple of 64.
	prefix := len(magic) + 2 + 2

	pad := 64 - (prefix+len(header)+1)%64
	if pad == 64 {
		pad = 0
	}

	header += strings.Repeat(" ", pad) + "\n"

	if _, err := w.Write(magic); err != nil {
		return err
	}

	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}

	var lenBuf [2]byte

	binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(header)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}

	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	payload := make([]byte, 4*len(data))
	for i, v := range data {
		binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(v))
	}

	_, err := w.Write(payload)

	return err
}

func shapeTuple(shape []int64) string {
	switch len(shape) {
	case 0:
		return "()"
	case 1:
		return fmt.Sprintf("(%d,)", shape[0])
	default:
		dims := make([]string, len(shape))
		for i, d := range shape {
			dims[i] = fmt.Sprintf("%d", d)
		}

		return "(" + strings.Join(dims, ", ") + ")"
	}
}
