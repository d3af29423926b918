// SPDX-License-Identifier: MIT

package mapfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/regroup/relation"
)

// Column names of a plain from→to mapping.
const (
	FromColumn = "from"
	ToColumn   = "to"
)

// ReadYAML parses a YAML mapping. Two document shapes are accepted:
//
//	# records; the keys of the first record are the columns
//	- {iso: DEU, bloc: EU}
//	- {iso: FRA, bloc: EU}
//
//	# plain mapping; a list value maps one source to several targets
//	DEU: EU
//	NOR: [EFTA, Schengen]
func ReadYAML(data []byte) (relation.Table, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return relation.Table{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return relation.Table{}, ErrEmpty
	}
	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return yamlRecords(root)
	case yaml.MappingNode:
		return yamlPairs(root)
	default:
		return relation.Table{}, fmt.Errorf("%w: line %d: want a list of records or a mapping", ErrMalformed, root.Line)
	}
}

func yamlRecords(seq *yaml.Node) (relation.Table, error) {
	if len(seq.Content) == 0 {
		return relation.Table{}, ErrEmpty
	}
	var t relation.Table
	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return relation.Table{}, fmt.Errorf("%w: line %d: record %d is not a mapping", ErrMalformed, item.Line, i)
		}
		keys, vals, err := scalarPairs(item)
		if err != nil {
			return relation.Table{}, err
		}
		if i == 0 {
			t.Header = keys
		}
		rec, err := arrange(t.Header, keys, vals)
		if err != nil {
			return relation.Table{}, fmt.Errorf("%w: line %d: %w", ErrMalformed, item.Line, err)
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func yamlPairs(m *yaml.Node) (relation.Table, error) {
	if len(m.Content) == 0 {
		return relation.Table{}, ErrEmpty
	}
	t := relation.Table{Header: []string{FromColumn, ToColumn}}
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return relation.Table{}, fmt.Errorf("%w: line %d: key is not a scalar", ErrMalformed, k.Line)
		}
		switch v.Kind {
		case yaml.ScalarNode:
			t.Records = append(t.Records, []string{k.Value, v.Value})
		case yaml.SequenceNode:
			for _, e := range v.Content {
				if e.Kind != yaml.ScalarNode {
					return relation.Table{}, fmt.Errorf("%w: line %d: target is not a scalar", ErrMalformed, e.Line)
				}
				t.Records = append(t.Records, []string{k.Value, e.Value})
			}
		default:
			return relation.Table{}, fmt.Errorf("%w: line %d: value of %q is not a scalar or list", ErrMalformed, v.Line, k.Value)
		}
	}
	if len(t.Records) == 0 {
		return relation.Table{}, ErrEmpty
	}
	return t, nil
}

func scalarPairs(m *yaml.Node) (keys, vals []string, err error) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, nil, fmt.Errorf("%w: line %d: record cells must be scalars", ErrMalformed, k.Line)
		}
		keys = append(keys, k.Value)
		vals = append(vals, v.Value)
	}
	return keys, vals, nil
}

// arrange orders vals by header; the record must carry exactly the header keys.
func arrange(header, keys, vals []string) ([]string, error) {
	if len(keys) != len(header) {
		return nil, fmt.Errorf("record has %d keys, want %d", len(keys), len(header))
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[h] = i
	}
	rec := make([]string, len(header))
	for i, k := range keys {
		j, ok := pos[k]
		if !ok {
			return nil, fmt.Errorf("unexpected key %q", k)
		}
		rec[j] = vals[i]
	}
	return rec, nil
}
