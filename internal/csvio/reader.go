// Package csvio reads the keyword-tool CSV/TSV exports this pipeline
// consumes. The exports arrive in whatever encoding the tool felt like
// using that day: UTF-8, BOM-prefixed UTF-8, or UTF-16 in either byte
// order. Rows are surfaced as header-keyed maps so callers stay decoupled
// from column order.
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row is one record keyed by the header names of its file.
type Row map[string]string

// ReadResult carries the parsed rows plus per-file skip accounting.
type ReadResult struct {
	Rows        []Row
	SkippedRows int
}

// ReadFile parses a delimited export with automatic encoding and delimiter
// detection. Malformed rows are counted and skipped, never fatal; a file
// that cannot be decoded at all returns an error so the caller can log and
// move on to the next source.
func ReadFile(path string) (ReadResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(raw, path)
}

// Parse decodes and parses raw export bytes. The name is used only for
// error messages.
func Parse(raw []byte, name string) (ReadResult, error) {
	decoded, err := decode(raw)
	if err != nil {
		return ReadResult{}, fmt.Errorf("decode %s: %w", name, err)
	}

	reader := csv.NewReader(strings.NewReader(decoded))
	reader.Comma = detectDelimiter(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return ReadResult{}, fmt.Errorf("parse %s: empty file", name)
		}
		return ReadResult{}, fmt.Errorf("parse %s header: %w", name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var result ReadResult
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.SkippedRows++
			continue
		}
		if len(record) > len(header) {
			result.SkippedRows++
			continue
		}

		row := make(Row, len(header))
		for i, value := range record {
			row[header[i]] = strings.TrimSpace(value)
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

var (
	bomUTF16LE = []byte{0xff, 0xfe}
	bomUTF16BE = []byte{0xfe, 0xff}
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
)

func decode(raw []byte) (string, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeUTF16(raw, unicode.LittleEndian)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeUTF16(raw, unicode.BigEndian)
	case bytes.HasPrefix(raw, bomUTF8):
		return string(raw[len(bomUTF8):]), nil
	case looksUTF16LE(raw):
		// Some exports omit the BOM but are still little-endian UTF-16.
		return decodeUTF16(raw, unicode.LittleEndian)
	default:
		return string(raw), nil
	}
}

func decodeUTF16(raw []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("utf-16 decode: %w", err)
	}
	return string(decoded), nil
}

// looksUTF16LE sniffs BOM-less UTF-16LE by counting NUL bytes in odd
// positions of the first few hundred bytes. ASCII-heavy text encoded as
// UTF-16LE has a NUL after nearly every byte.
func looksUTF16LE(raw []byte) bool {
	limit := len(raw)
	if limit > 400 {
		limit = 400
	}
	if limit < 4 {
		return false
	}
	nuls := 0
	for i := 1; i < limit; i += 2 {
		if raw[i] == 0 {
			nuls++
		}
	}
	return nuls*3 > limit
}

func detectDelimiter(content string) rune {
	firstLine := content
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		firstLine = content[:idx]
	}
	if strings.Count(firstLine, "\t") > strings.Count(firstLine, ",") {
		return '\t'
	}
	return ','
}
