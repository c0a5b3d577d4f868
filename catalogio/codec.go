// Package catalogio implements the concrete on-disk form of the catalog:
// a gzip-compressed gob encoding of the module_id -> catalog.Entry
// mapping, plus the companion database-version text file.
//
// gob is chosen over the pack's other serialization dependencies
// (protobuf, TOML, YAML) because this is a Go-to-Go, round-trip-exact
// persistence need with no cross-language or human-editing requirement —
// exactly what the standard library's own binary codec is built for; see
// DESIGN.md for the full justification.
package catalogio

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jolespin/keggprofiler/catalog"
)

// Encode writes cat to w as a gzip-compressed gob stream.
func Encode(w io.Writer, cat catalog.Catalog) error {
	gz := gzip.NewWriter(w)
	if err := gob.NewEncoder(gz).Encode(cat); err != nil {
		gz.Close()
		return fmt.Errorf("catalogio: encode: %w", err)
	}

	return gz.Close()
}

// Decode reads a catalog.Catalog previously written by Encode. Round-trip
// fidelity is required: Decode(Encode(cat)) must be structurally equal to
// cat (graph, ko_to_edges, optional_kos and metadata all preserved).
func Decode(r io.Reader) (catalog.Catalog, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("catalogio: open gzip stream: %w", err)
	}
	defer gz.Close()

	var cat catalog.Catalog
	if err := gob.NewDecoder(gz).Decode(&cat); err != nil {
		return nil, fmt.Errorf("catalogio: decode: %w", err)
	}

	return cat, nil
}

// EncodeFile is a convenience wrapper around Encode that creates (or
// truncates) path.
func EncodeFile(path string, cat catalog.Catalog) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("catalogio: create %s: %w", path, err)
	}
	defer f.Close()

	return Encode(f, cat)
}

// DecodeFile is a convenience wrapper around Decode that opens path.
func DecodeFile(path string) (catalog.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalogio: open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// WriteVersionFile writes the single-line database version tag to the
// companion text file next to the catalog.
func WriteVersionFile(path, versionTag string) error {
	return os.WriteFile(path, []byte(strings.TrimSpace(versionTag)+"\n"), 0o644)
}

// ReadVersionFile reads the companion database-version text file.
func ReadVersionFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("catalogio: read version file %s: %w", path, err)
	}

	return strings.TrimSpace(string(data)), nil
}
