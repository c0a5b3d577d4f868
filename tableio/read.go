// Package tableio implements the concrete TSV/gzip readers and writers
// for pathway definitions/names/classes, KO lists, and the coverage/
// step-coverage output tables.
package tableio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jolespin/keggprofiler/ko"
)

// openMaybeGzip opens path and transparently wraps it in a gzip reader if
// the file starts with the gzip magic number.
func openMaybeGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tableio: open %s: %w", path, err)
	}

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("tableio: open gzip %s: %w", path, err)
		}
		return &gzipFile{gz: gz, f: f}, nil
	}

	return &plainFile{r: br, f: f}, nil
}

type gzipFile struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.gz.Read(p) }
func (g *gzipFile) Close() error {
	g.gz.Close()
	return g.f.Close()
}

type plainFile struct {
	r *bufio.Reader
	f *os.File
}

func (p *plainFile) Read(b []byte) (int, error) { return p.r.Read(b) }
func (p *plainFile) Close() error                { return p.f.Close() }

// ReadPairTSV reads a headerless two-column TSV file (module_id,
// definition_string | module_id, name | module_id, class_string) into a
// map keyed by the first column.
func ReadPairTSV(path string) (map[string]string, error) {
	rc, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		cols := strings.SplitN(line, "\t", 2)
		if len(cols) != 2 {
			return nil, fmt.Errorf("tableio: %s: expected 2 tab-separated columns, got %q", path, line)
		}
		out[cols[0]] = cols[1]
	}

	return out, scanner.Err()
}

// ReadKOList reads a KO-list input, auto-detecting one-KO-per-line vs a
// two-column (genome_id, ko) table by counting the columns of the first
// non-empty line. Gzip-compressed input is detected transparently.
//
// A one-column file is returned under the single key "" (the conventional
// "no genome id given" bucket) so callers see a uniform map[genome]KO-set
// shape regardless of input form.
func ReadKOList(path string) (map[string]ko.Set, error) {
	rc, err := openMaybeGzip(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	out := make(map[string]ko.Set)
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	columns := -1
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if columns == -1 {
			columns = len(cols)
		}

		var genome, koText string
		switch columns {
		case 1:
			genome, koText = "", cols[0]
		default:
			genome, koText = cols[0], cols[1]
		}

		k, err := ko.New(koText)
		if err != nil {
			return nil, fmt.Errorf("tableio: %s: %w", path, err)
		}
		if out[genome] == nil {
			out[genome] = make(ko.Set)
		}
		out[genome][k] = struct{}{}
	}

	return out, scanner.Err()
}
