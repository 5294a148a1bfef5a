package npz

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// rawRecord builds an array record byte-for-byte so dtype and layout
// variants the writer never produces can still be exercised.
func rawRecord(t *testing.T, major byte, descr string, fortran bool, shape string, payload []byte) []byte {
	t.Helper()

	order := "False"
	if fortran {
		order = "True"
	}

	header := "{'descr': '" + descr + "', 'fortran_order': " + order + ", 'shape': " + shape + ", }\n"

	var buf bytes.Buffer

	buf.Write(magic)
	buf.Write([]byte{major, 0})

	if major < 2 {
		var lenBuf [2]byte
		binary.LittleEndian.PutUint16(lenBuf[:], uint16(len(header)))
		buf.Write(lenBuf[:])
	} else {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(header)))
		buf.Write(lenBuf[:])
	}

	buf.WriteString(header)
	buf.Write(payload)

	return buf.Bytes()
}

// rawArchive zips named records into an in-memory archive.
func rawArchive(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	for name, data := range entries {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}

		if _, err := f.Write(data); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return buf.Bytes()
}

func f32le(t *testing.T, values ...float32) []byte {
	t.Helper()

	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}

	return out
}

func TestWriteLoadRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "voice-a", Shape: []int64{2, 3}, Data: []float32{0.5, -1.25, 3, 4, 5.5, -0}},
		{Name: "voice-b", Shape: []int64{4}, Data: []float32{1, 2, 3, 4}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		t.Fatalf("Write: %v", err)
	}

	a, err := Load(buf.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got, want := a.Names(), []string{"voice-a", "voice-b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v; want %v", got, want)
	}

	for _, e := range entries {
		if !a.Has(e.Name) {
			t.Fatalf("Has(%q) = false", e.Name)
		}

		tensor, err := a.Tensor(e.Name)
		if err != nil {
			t.Fatalf("Tensor(%q): %v", e.Name, err)
		}

		if !reflect.DeepEqual(tensor.Shape, e.Shape) {
			t.Errorf("%s: shape %v; want %v", e.Name, tensor.Shape, e.Shape)
		}

		for i, v := range e.Data {
			if math.Float32bits(tensor.Data[i]) != math.Float32bits(v) {
				t.Errorf("%s: element %d = %v; want bit-exact %v", e.Name, i, tensor.Data[i], v)
			}
		}
	}

	row, err := func() ([]float32, error) {
		tensor, err := a.Tensor("voice-a")
		if err != nil {
			return nil, err
		}

		return tensor.Row(1)
	}()
	if err != nil {
		t.Fatalf("Row(1): %v", err)
	}

	if want := []float32{4, 5.5, 0}; !reflect.DeepEqual(row, want) {
		t.Errorf("Row(1) = %v; want %v", row, want)
	}
}

func TestLoadDtypeConversions(t *testing.T) {
	f8 := make([]byte, 16)
	binary.LittleEndian.PutUint64(f8[0:], math.Float64bits(1.5))
	binary.LittleEndian.PutUint64(f8[8:], math.Float64bits(-2.25))

	negThree := int32(-3)
	i4 := make([]byte, 8)
	binary.LittleEndian.PutUint32(i4[0:], uint32(int32(7)))
	binary.LittleEndian.PutUint32(i4[4:], uint32(negThree))

	negFortyTwo := int64(-42)
	i8 := make([]byte, 16)
	binary.LittleEndian.PutUint64(i8[0:], uint64(int64(123456789)))
	binary.LittleEndian.PutUint64(i8[8:], uint64(negFortyTwo))

	tests := []struct {
		name    string
		descr   string
		payload []byte
		want    []float32
	}{
		{"float64 narrows", "<f8", f8, []float32{1.5, -2.25}},
		{"int32 converts numerically", "<i4", i4, []float32{7, -3}},
		{"int64 narrows", "<i8", i8, []float32{float32(int64(123456789)), -42}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := rawArchive(t, map[string][]byte{
				"v.npy": rawRecord(t, 1, tt.descr, false, "(2,)", tt.payload),
			})

			a, err := Load(archive)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}

			tensor, err := a.Tensor("v")
			if err != nil {
				t.Fatalf("Tensor: %v", err)
			}

			if !reflect.DeepEqual(tensor.Data, tt.want) {
				t.Errorf("Data = %v; want %v", tensor.Data, tt.want)
			}
		})
	}
}

func TestLoadUint8KeptRaw(t *testing.T) {
	payload := []byte{0, 1, 254, 255}

	archive := rawArchive(t, map[string][]byte{
		"blob.npy": rawRecord(t, 1, "|u1", false, "(4,)", payload),
	})

	a, err := Load(archive)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tensor, err := a.Tensor("blob")
	if err != nil {
		t.Fatalf("Tensor: %v", err)
	}

	if tensor.Data != nil {
		t.Errorf("Data = %v; want nil for raw bytes", tensor.Data)
	}

	if !bytes.Equal(tensor.Raw, payload) {
		t.Errorf("Raw = %v; want %v", tensor.Raw, payload)
	}
}

func TestLoadFortranOrderTransposed(t *testing.T) {
	// Column-major [2,3]: columns (1,4), (2,5), (3,6).
	archive := rawArchive(t, map[string][]byte{
		"m.npy": rawRecord(t, 1, "<f4", true, "(2, 3)", f32le(t, 1, 4, 2, 5, 3, 6)),
	})

	a, err := Load(archive)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tensor, err := a.Tensor("m")
	if err != nil {
		t.Fatalf("Tensor: %v", err)
	}

	if want := []float32{1, 2, 3, 4, 5, 6}; !reflect.DeepEqual(tensor.Data, want) {
		t.Errorf("Data = %v; want row-major %v", tensor.Data, want)
	}
}

func TestLoadVersion2Header(t *testing.T) {
	archive := rawArchive(t, map[string][]byte{
		"v.npy": rawRecord(t, 2, "<f4", false, "(2,)", f32le(t, 9, -9)),
	})

	a, err := Load(archive)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tensor, err := a.Tensor("v")
	if err != nil {
		t.Fatalf("Tensor: %v", err)
	}

	if want := []float32{9, -9}; !reflect.DeepEqual(tensor.Data, want) {
		t.Errorf("Data = %v; want %v", tensor.Data, want)
	}
}

func TestLoadScalarShape(t *testing.T) {
	archive := rawArchive(t, map[string][]byte{
		"s.npy": rawRecord(t, 1, "<f4", false, "()", f32le(t, 2.5)),
	})

	a, err := Load(archive)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tensor, err := a.Tensor("s")
	if err != nil {
		t.Fatalf("Tensor: %v", err)
	}

	if len(tensor.Shape) != 0 || tensor.Rows() != 0 {
		t.Errorf("Shape = %v, Rows = %d; want rank-0", tensor.Shape, tensor.Rows())
	}

	if want := []float32{2.5}; !reflect.DeepEqual(tensor.Data, want) {
		t.Errorf("Data = %v; want %v", tensor.Data, want)
	}
}

func TestLoadErrors(t *testing.T) {
	badMagic := rawRecord(t, 1, "<f4", false, "(1,)", f32le(t, 1))
	badMagic[0] ^= 0xff

	shortPayload := rawRecord(t, 1, "<f4", false, "(8,)", f32le(t, 1, 2))

	tests := []struct {
		name        string
		data        []byte
		wantFormat  bool
		wantDtype   bool
		wantEntries bool
	}{
		{"not a zip", []byte("definitely not a zip file"), true, false, false},
		{"empty archive", rawArchive(t, nil), true, false, false},
		{"bad magic", rawArchive(t, map[string][]byte{"v.npy": badMagic}), true, false, false},
		{"truncated record", rawArchive(t, map[string][]byte{"v.npy": magic[:4]}), true, false, false},
		{"short payload", rawArchive(t, map[string][]byte{"v.npy": shortPayload}), true, false, false},
		{"big endian rejected", rawArchive(t, map[string][]byte{"v.npy": rawRecord(t, 1, ">f4", false, "(1,)", f32le(t, 1))}), false, true, false},
		{"unknown dtype rejected", rawArchive(t, map[string][]byte{"v.npy": rawRecord(t, 1, "<f2", false, "(1,)", []byte{0, 0})}), false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Load(tt.data)
			if err == nil {
				t.Fatal("Load succeeded; want error")
			}

			if a != nil {
				t.Error("Load returned a partial archive alongside an error")
			}

			var formatErr *FormatError
			if got := errors.As(err, &formatErr); got != tt.wantFormat {
				t.Errorf("errors.As(FormatError) = %v; want %v (err: %v)", got, tt.wantFormat, err)
			}

			var dtypeErr *UnsupportedDtypeError
			if got := errors.As(err, &dtypeErr); got != tt.wantDtype {
				t.Errorf("errors.As(UnsupportedDtypeError) = %v; want %v (err: %v)", got, tt.wantDtype, err)
			}
		})
	}
}

func TestLoadAbortsOnAnyBadEntry(t *testing.T) {
	// One valid entry must not survive a sibling with an unsupported dtype.
	archive := rawArchive(t, map[string][]byte{
		"good.npy": rawRecord(t, 1, "<f4", false, "(1,)", f32le(t, 1)),
		"bad.npy":  rawRecord(t, 1, ">f8", false, "(1,)", make([]byte, 8)),
	})

	a, err := Load(archive)
	if err == nil {
		t.Fatal("Load succeeded; want whole-archive abort")
	}

	if a != nil {
		t.Error("Load returned a partial archive")
	}

	var dtypeErr *UnsupportedDtypeError
	if !errors.As(err, &dtypeErr) {
		t.Fatalf("err = %v; want UnsupportedDtypeError", err)
	}

	if dtypeErr.Entry != "bad" || dtypeErr.DType != ">f8" {
		t.Errorf("error identifies %q/%q; want bad/>f8", dtypeErr.Entry, dtypeErr.DType)
	}
}

func TestLoadDuplicateEntryKeys(t *testing.T) {
	archive := rawArchive(t, map[string][]byte{
		"v.npy": rawRecord(t, 1, "<f4", false, "(1,)", f32le(t, 1)),
		"v.bin": rawRecord(t, 1, "<f4", false, "(1,)", f32le(t, 2)),
	})

	_, err := Load(archive)

	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("err = %v; want FormatError for duplicate keys", err)
	}
}

func TestTensorRowErrors(t *testing.T) {
	flat := &Tensor{Name: "flat", Shape: []int64{4}, Data: []float32{1, 2, 3, 4}}
	if _, err := flat.Row(0); err == nil {
		t.Error("Row on 1-D tensor succeeded; want error")
	}

	grid := &Tensor{Name: "grid", Shape: []int64{2, 2}, Data: []float32{1, 2, 3, 4}}

	for _, i := range []int{-1, 2} {
		if _, err := grid.Row(i); err == nil {
			t.Errorf("Row(%d) succeeded; want range error", i)
		}
	}
}

func TestWriteShapeMismatch(t *testing.T) {
	err := Write(&bytes.Buffer{}, []Entry{{Name: "v", Shape: []int64{3}, Data: []float32{1}}})
	if err == nil {
		t.Fatal("Write succeeded; want shape/data mismatch error")
	}
}

func TestLoadFile(t *testing.T) {
	entries := []Entry{{Name: "v", Shape: []int64{2}, Data: []float32{1, 2}}}

	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		t.Fatalf("Write: %v", err)
	}

	path := filepath.Join(t.TempDir(), "voices.npz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	a, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if !a.Has("v") {
		t.Error("loaded archive missing entry v")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.npz")); err == nil {
		t.Error("LoadFile on a missing path succeeded; want error")
	}
}
