package npz

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Archive is an immutable mapping from voice key to style tensor, loaded in
// one call. It is safe for concurrent reads after Load returns.
type Archive struct {
	tensors map[string]*Tensor
	names   []string
}

// Load parses a packed voice archive from memory. Entries decode
// concurrently; any malformed or unsupported entry aborts the whole load and
// no partial archive is returned.
func Load(data []byte) (*Archive, error) {
	start := time.Now()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("not a zip container: %v", err)}
	}

	var files []*zip.File

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		files = append(files, f)
	}

	if len(files) == 0 {
		return nil, &FormatError{Reason: "archive contains no entries"}
	}

	tensors := make([]*Tensor, len(files))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			rc, err := f.Open()
			if err != nil {
				return &FormatError{Entry: f.Name, Reason: fmt.Sprintf("open: %v", err)}
			}
			defer rc.Close()

			raw, err := io.ReadAll(rc)
			if err != nil {
				return &FormatError{Entry: f.Name, Reason: fmt.Sprintf("read: %v", err)}
			}

			t, err := parseRecord(entryKey(f.Name), raw)
			if err != nil {
				return err
			}

			tensors[i] = t

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	a := &Archive{
		tensors: make(map[string]*Tensor, len(tensors)),
		names:   make([]string, 0, len(tensors)),
	}

	for _, t := range tensors {
		if _, exists := a.tensors[t.Name]; exists {
			return nil, &FormatError{Entry: t.Name, Reason: "duplicate entry name"}
		}

		a.tensors[t.Name] = t
		a.names = append(a.names, t.Name)
	}

	sort.Strings(a.names)

	slog.Debug("voice archive loaded",
		"entries", len(a.names),
		"ms", time.Since(start).Milliseconds(),
	)

	return a, nil
}

// LoadFile reads and parses an archive from disk.
func LoadFile(filename string) (*Archive, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("npz: read %s: %w", filename, err)
	}

	return Load(data)
}

// entryKey is the voice key for an archive entry: the entry name with any
// file extension stripped.
func entryKey(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// Names returns the sorted voice keys.
func (a *Archive) Names() []string {
	return append([]string(nil), a.names...)
}

// Has reports whether the archive holds an entry for name.
func (a *Archive) Has(name string) bool {
	_, ok := a.tensors[name]
	return ok
}

// Tensor returns the named tensor.
func (a *Archive) Tensor(name string) (*Tensor, error) {
	t, ok := a.tensors[name]
	if !ok {
		return nil, fmt.Errorf("npz: entry %q not found (available: %s)", name, summarizeNames(a.names))
	}

	return t, nil
}

// Close releases the archive's backing memory. Tensors and style rows
// borrowed from the archive must not be used afterwards.
func (a *Archive) Close() {
	a.tensors = nil
	a.names = nil
}

func summarizeNames(names []string) string {
	if len(names) == 0 {
		return "none"
	}

	const maxNames = 8
	if len(names) <= maxNames {
		return strings.Join(names, ", ")
	}

	return strings.Join(names[:maxNames], ", ") + ", ..."
}
