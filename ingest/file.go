package ingest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kermit-go/kermit/key"
	"github.com/kermit-go/kermit/keydict"
	"github.com/kermit-go/kermit/relation"
)

// LoadFile loads a relation from path, dispatching on its extension
// (".csv" or ".parquet"). The relation name is the file's
// stem and, for CSV, attribute names default to a1..aN since CSV carries
// no header by default. dict, if non-nil, is consulted per LoadCSV.
func LoadFile(path string, dict *keydict.Dictionary) (relation.Header, []key.Tuple, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return LoadCSV(path, dict)
	case ".parquet":
		return LoadParquet(path)
	default:
		return relation.Header{}, nil, fmt.Errorf("ingest: unsupported file extension %q", ext)
	}
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// LoadCSV reads a CSV file: rows of comma-separated fields, "\" escapes
// the following character (so a literal comma or "#" can appear in a
// field), "#" starts a line comment outside of an escape, no quoting, no
// header by default. All rows must share the same arity; the first row's
// field count fixes it.
//
// Each field is parsed as an int64 first. A field that does not parse as
// an int64 is only accepted when dict is non-nil: it is then interned via
// dict.InternString and the resulting surrogate key.Int64 stands in for
// it, keeping the trie core monomorphic over key.Int64 while letting
// heterogeneous source values (strings, identifiers) through the same
// pipeline. With dict == nil, a non-numeric field is an error, matching
// the behavior before heterogeneous ingestion existed.
func LoadCSV(path string, dict *keydict.Dictionary) (relation.Header, []key.Tuple, error) {
	f, err := os.Open(path)
	if err != nil {
		return relation.Header{}, nil, err
	}
	defer f.Close()

	var tuples []key.Tuple
	arity := -1
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitEscaped(line)
		if arity == -1 {
			arity = len(fields)
		} else if len(fields) != arity {
			return relation.Header{}, nil, fmt.Errorf("ingest: %s:%d: row has %d fields, expected %d", path, lineNo, len(fields), arity)
		}
		tuple := make(key.Tuple, len(fields))
		for i, field := range fields {
			trimmed := strings.TrimSpace(field)
			v, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				if dict == nil {
					return relation.Header{}, nil, fmt.Errorf("ingest: %s:%d: field %d: %w", path, lineNo, i, err)
				}
				surrogate, internErr := dict.InternString(trimmed)
				if internErr != nil {
					return relation.Header{}, nil, fmt.Errorf("ingest: %s:%d: field %d: %w", path, lineNo, i, internErr)
				}
				tuple[i] = surrogate
				continue
			}
			tuple[i] = key.Int64(v)
		}
		tuples = append(tuples, tuple)
	}
	if err := scanner.Err(); err != nil {
		return relation.Header{}, nil, err
	}
	if arity == -1 {
		arity = 0
	}
	attrs := make([]string, arity)
	for i := range attrs {
		attrs[i] = fmt.Sprintf("a%d", i+1)
	}
	return relation.Header{Name: stem(path), Attrs: attrs}, tuples, nil
}

// stripComment removes an unescaped "#" and everything after it.
func stripComment(line string) string {
	escaped := false
	for i, r := range line {
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '#':
			return line[:i]
		}
	}
	return line
}

// splitEscaped splits line on unescaped commas, resolving "\" as an
// escape for the following character.
func splitEscaped(line string) []string {
	var fields []string
	var cur strings.Builder
	escaped := false
	for _, r := range line {
		if escaped {
			cur.WriteRune(r)
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case ',':
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

// LoadParquet would load a relation from a Parquet file, with attribute
// names taken from the file schema and all columns interpreted as the
// key type. No Parquet reader is wired into this module;
// callers needing Parquet ingestion should convert to CSV first.
func LoadParquet(path string) (relation.Header, []key.Tuple, error) {
	return relation.Header{}, nil, fmt.Errorf("ingest: parquet ingestion is not implemented, convert %s to CSV first", path)
}
