// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/regroup/labeled"
)

// ValueColumn is the header of the value column of a long-format array.
const ValueColumn = "value"

var (
	// ErrArrayFormat indicates a long-format array that cannot be read.
	ErrArrayFormat = errors.New("cli: malformed array file")

	// ErrDuplicateCell indicates a coordinate listed twice.
	ErrDuplicateCell = errors.New("cli: duplicate cell")
)

// ReadArray decodes a long-format CSV array:
//
//	region,year,variable,value
//	DEU,2020,pop,83.2
//
// The first three headers name the spatial, temporal and data axes; a header
// "name:a.b" also names the components of compound labels. Labels keep their
// first-appearance order. Cells not listed are NaN, as are empty values.
// Lines starting with "#" are read back as notes.
func ReadArray(r io.Reader) (*labeled.Array, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	body, notes := splitNotes(data)
	cr := csv.NewReader(strings.NewReader(body))
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no header", ErrArrayFormat)
		}
		return nil, fmt.Errorf("%w: header: %w", ErrArrayFormat, err)
	}
	if len(header) != 4 {
		return nil, fmt.Errorf("%w: header has %d columns, want 4", ErrArrayFormat, len(header))
	}

	var axes [3]axisBuilder
	for k := range axes {
		axes[k] = newAxisBuilder(strings.TrimSpace(header[k]))
	}
	type cell struct {
		pos [3]int
		v   float64
	}
	var cells []cell
	seen := make(map[[3]int]struct{})
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArrayFormat, err)
		}
		var c cell
		for k := range axes {
			c.pos[k] = axes[k].add(strings.TrimSpace(rec[k]))
		}
		if _, dup := seen[c.pos]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCell, strings.Join(rec[:3], ", "))
		}
		seen[c.pos] = struct{}{}
		if c.v, err = parseValue(rec[3]); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrArrayFormat, n, err)
		}
		cells = append(cells, c)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrArrayFormat)
	}

	sa, ta, da := axes[0].axis(), axes[1].axis(), axes[2].axis()
	t, d := ta.Len(), da.Len()
	values := make([]float64, sa.Len()*t*d)
	for i := range values {
		values[i] = math.NaN()
	}
	for _, c := range cells {
		values[(c.pos[0]*t+c.pos[1])*d+c.pos[2]] = c.v
	}
	x, err := labeled.NewWithValues(sa, ta, da, values)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArrayFormat, err)
	}
	x.Notes = notes
	return x, nil
}

// WriteArray encodes x in long format, one record per cell in storage
// order. Notes are written first as "#" lines.
func WriteArray(w io.Writer, x *labeled.Array) error {
	if x == nil {
		return fmt.Errorf("%w: nil array", ErrArrayFormat)
	}
	for _, n := range x.Notes {
		if _, err := fmt.Fprintf(w, "# %s\n", strings.ReplaceAll(n, "\n", " ")); err != nil {
			return err
		}
	}
	cw := csv.NewWriter(w)
	header := make([]string, 0, 4)
	for _, a := range labeled.AxisIDs {
		header = append(header, axisHeader(x.Axis(a), a))
	}
	if err := cw.Write(append(header, ValueColumn)); err != nil {
		return err
	}

	sAxis, tAxis, dAxis := x.Axis(labeled.Spatial), x.Axis(labeled.Temporal), x.Axis(labeled.Data)
	values := x.Values()
	i := 0
	for _, sl := range sAxis.Labels {
		for _, tl := range tAxis.Labels {
			for _, dl := range dAxis.Labels {
				rec := []string{sl.String(), tl.String(), dl.String(), formatValue(values[i])}
				if err := cw.Write(rec); err != nil {
					return err
				}
				i++
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

type axisBuilder struct {
	name     string
	subNames []string
	pos      map[string]int
	labels   []string
}

func newAxisBuilder(h string) axisBuilder {
	b := axisBuilder{name: h, pos: make(map[string]int)}
	if name, subs, ok := strings.Cut(h, ":"); ok {
		b.name = strings.TrimSpace(name)
		b.subNames = labeled.ParseLabel(strings.TrimSpace(subs)).Parts()
	}
	return b
}

func (b *axisBuilder) add(label string) int {
	if i, ok := b.pos[label]; ok {
		return i
	}
	i := len(b.labels)
	b.pos[label] = i
	b.labels = append(b.labels, label)
	return i
}

func (b *axisBuilder) axis() labeled.Axis {
	if len(b.subNames) > 0 {
		return labeled.NewCompoundAxis(b.name, b.subNames, b.labels...)
	}
	return labeled.NewAxis(b.name, b.labels...)
}

func axisHeader(a labeled.Axis, id labeled.AxisID) string {
	name := a.Name
	if name == "" {
		name = id.String()
	}
	if len(a.SubNames) > 0 {
		name += ":" + labeled.NewLabel(a.SubNames...).String()
	}
	return name
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// splitNotes separates "#" lines from the CSV body.
func splitNotes(data []byte) (body string, notes []string) {
	var b strings.Builder
	for _, line := range strings.SplitAfter(string(data), "\n") {
		text := strings.TrimSpace(line)
		if strings.HasPrefix(text, "#") {
			notes = append(notes, strings.TrimSpace(strings.TrimPrefix(text, "#")))
			continue
		}
		b.WriteString(line)
	}
	return b.String(), notes
}
