// Package npz reads the packed binary voice archives consumed by the
// synthesis model: a zip container of NumPy array records, one per voice.
// The on-disk layout is part of the trained model's contract; parsing must
// be exact, not approximate.
package npz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// magic is the fixed 6-byte prefix of every array record.
var magic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y'}

// Tensor is one named array from an archive, exposed in row-major order as
// float32 regardless of the stored dtype. Unsigned 8-bit payloads are kept
// unconverted in Raw and leave Data nil.
type Tensor struct {
	Name  string
	Shape []int64
	Data  []float32
	Raw   []byte
}

// Rows returns the leading dimension, or 0 for rank-0 tensors.
func (t *Tensor) Rows() int {
	if len(t.Shape) == 0 {
		return 0
	}

	return int(t.Shape[0])
}

// Row returns row i of a 2-D tensor as a sub-slice borrowing from the
// tensor's backing array; it must not outlive the archive.
func (t *Tensor) Row(i int) ([]float32, error) {
	if len(t.Shape) != 2 {
		return nil, fmt.Errorf("npz: tensor %q is %d-D, need 2-D for row access", t.Name, len(t.Shape))
	}

	rows, cols := int(t.Shape[0]), int(t.Shape[1])
	if i < 0 || i >= rows {
		return nil, fmt.Errorf("npz: tensor %q row %d out of range [0,%d)", t.Name, i, rows)
	}

	return t.Data[i*cols : (i+1)*cols], nil
}

type recordHeader struct {
	descr        string
	fortranOrder bool
	shape        []int64
}

var (
	descrRe   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranRe = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapeRe   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// parseRecord decodes one array record: magic, version, header length (2 or
// 4 bytes little-endian depending on the major version), ASCII header
// dictionary, then the raw little-endian payload.
func parseRecord(entry string, data []byte) (*Tensor, error) {
	if len(data) < len(magic)+2 {
		return nil, &FormatError{Entry: entry, Reason: fmt.Sprintf("record too short (%d bytes)", len(data))}
	}

	if !bytes.Equal(data[:len(magic)], magic) {
		return nil, &FormatError{Entry: entry, Reason: "bad magic prefix"}
	}

	major := data[6]
	// data[7] is the minor version; it does not affect the layout.

	var headerLen, headerStart int

	if major < 2 {
		if len(data) < 10 {
			return nil, &FormatError{Entry: entry, Reason: "truncated header length"}
		}

		headerLen = int(binary.LittleEndian.Uint16(data[8:10]))
		headerStart = 10
	} else {
		if len(data) < 12 {
			return nil, &FormatError{Entry: entry, Reason: "truncated header length"}
		}

		headerLen = int(binary.LittleEndian.Uint32(data[8:12]))
		headerStart = 12
	}

	headerEnd := headerStart + headerLen
	if headerEnd > len(data) {
		return nil, &FormatError{Entry: entry, Reason: fmt.Sprintf("header length %d exceeds record size %d", headerLen, len(data))}
	}

	hdr, err := parseHeaderDict(entry, string(data[headerStart:headerEnd]))
	if err != nil {
		return nil, err
	}

	return decodePayload(entry, hdr, data[headerEnd:])
}

// parseHeaderDict extracts descr, fortran_order and shape by structured text
// scanning; everything else in the dictionary is ignored.
func parseHeaderDict(entry, header string) (recordHeader, error) {
	var hdr recordHeader

	m := descrRe.FindStringSubmatch(header)
	if m == nil {
		return hdr, &FormatError{Entry: entry, Reason: "header missing 'descr'"}
	}

	hdr.descr = m[1]

	m = fortranRe.FindStringSubmatch(header)
	if m == nil {
		return hdr, &FormatError{Entry: entry, Reason: "header missing 'fortran_order'"}
	}

	hdr.fortranOrder = m[1] == "True"

	m = shapeRe.FindStringSubmatch(header)
	if m == nil {
		return hdr, &FormatError{Entry: entry, Reason: "header missing 'shape'"}
	}

	for _, field := range strings.Split(m[1], ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue // trailing comma of 1-tuples, or a scalar ()
		}

		dim, err := strconv.ParseInt(field, 10, 64)
		if err != nil || dim < 0 {
			return hdr, &FormatError{Entry: entry, Reason: fmt.Sprintf("invalid shape dimension %q", field)}
		}

		hdr.shape = append(hdr.shape, dim)
	}

	return hdr, nil
}

func elementCount(shape []int64) (int, error) {
	total := int64(1)

	for _, d := range shape {
		if d == 0 {
			return 0, nil
		}

		if total > math.MaxInt64/d {
			return 0, fmt.Errorf("shape %v overflows element count", shape)
		}

		total *= d
	}

	return int(total), nil
}

// decodePayload converts the raw little-endian payload into the exposed
// representation. 64-bit floats and integers narrow to float32; integer
// payloads convert numerically, never bit-cast. Narrowing 64-bit integers
// loses precision above 2^24; that is a documented contract, not an error.
func decodePayload(entry string, hdr recordHeader, payload []byte) (*Tensor, error) {
	dtype := hdr.descr

	// Byte-order-irrelevant markers: '=' native and '|' none are accepted
	// as little-endian; big-endian payloads are not supported.
	trimmed := strings.TrimLeft(dtype, "<=|")
	if strings.HasPrefix(dtype, ">") {
		return nil, &UnsupportedDtypeError{Entry: entry, DType: dtype}
	}

	var width int

	switch trimmed {
	case "f4", "i4":
		width = 4
	case "f8", "i8":
		width = 8
	case "u1":
		width = 1
	default:
		return nil, &UnsupportedDtypeError{Entry: entry, DType: dtype}
	}

	count, err := elementCount(hdr.shape)
	if err != nil {
		return nil, &FormatError{Entry: entry, Reason: err.Error()}
	}

	if len(payload) < count*width {
		return nil, &FormatError{Entry: entry, Reason: fmt.Sprintf("payload has %d bytes, need %d", len(payload), count*width)}
	}

	t := &Tensor{
		Name:  entry,
		Shape: append([]int64(nil), hdr.shape...),
	}

	switch trimmed {
	case "f4":
		t.Data = make([]float32, count)
		for i := range t.Data {
			t.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
		}
	case "f8":
		t.Data = make([]float32, count)
		for i := range t.Data {
			t.Data[i] = float32(math.Float64frombits(binary.LittleEndian.Uint64(payload[i*8:])))
		}
	case "i4":
		t.Data = make([]float32, count)
		for i := range t.Data {
			t.Data[i] = float32(int32(binary.LittleEndian.Uint32(payload[i*4:])))
		}
	case "i8":
		t.Data = make([]float32, count)
		for i := range t.Data {
			t.Data[i] = float32(int64(binary.LittleEndian.Uint64(payload[i*8:])))
		}
	case "u1":
		t.Raw = append([]byte(nil), payload[:count]...)
	}

	if hdr.fortranOrder && len(hdr.shape) == 2 {
		transpose2D(t)
	}

	return t, nil
}

// transpose2D rewrites column-major data as row-major. Shape stays the
// logical [rows, cols]; only the element order changes.
func transpose2D(t *Tensor) {
	rows, cols := int(t.Shape[0]), int(t.Shape[1])

	if t.Data != nil {
		out := make([]float32, len(t.Data))
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				out[r*cols+c] = t.Data[c*rows+r]
			}
		}

		t.Data = out
	}

	if t.Raw != nil {
		out := make([]byte, len(t.Raw))
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				out[r*cols+c] = t.Raw[c*rows+r]
			}
		}

		t.Raw = out
	}
}
