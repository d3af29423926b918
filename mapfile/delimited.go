// SPDX-License-Identifier: MIT

package mapfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/regroup/relation"
)

// separators in order of preference when the header counts tie.
var separators = []rune{';', '\t', ','}

// ReadDelimited parses delimited text with a header line.
func ReadDelimited(data []byte) (relation.Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	comma, ok := sniff(data)
	if !ok {
		return relation.Table{}, ErrEmpty
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = comma
	r.Comment = '#'
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return relation.Table{}, ErrEmpty
		}
		return relation.Table{}, fmt.Errorf("%w: header: %w", ErrMalformed, err)
	}
	t := relation.Table{Header: trimAll(header)}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return relation.Table{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		t.Records = append(t.Records, trimAll(rec))
	}
	if len(t.Records) == 0 {
		return relation.Table{}, fmt.Errorf("%w: no records", ErrEmpty)
	}
	return t, nil
}

// sniff picks the separator occurring most often in the first non-comment line.
func sniff(data []byte) (rune, bool) {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		best, n := separators[len(separators)-1], 0
		for _, sep := range separators {
			if c := strings.Count(line, string(sep)); c > n {
				best, n = sep, c
			}
		}
		return best, true
	}
	return 0, false
}

func trimAll(cells []string) []string {
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
