package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tabx/pkg/record"
)

// JSON renders records as a pretty-printed array of objects. Only projected
// headers appear; fields a record never had are omitted, while explicit
// missing values encode as null.
func JSON(records []record.Record, headers []string) (string, error) {
	if err := guard(records, headers); err != nil {
		return "", err
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		obj := make(map[string]any, len(headers))
		for _, header := range headers {
			if v, ok := rec[header]; ok {
				obj[header] = record.Native(v)
			}
		}
		out = append(out, obj)
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b) + "\n", nil
}

// YAML renders records as a sequence of mappings. Mapping keys keep header
// order, which plain map marshaling would sort away, so the sequence is
// built from yaml nodes.
func YAML(records []record.Record, headers []string) (string, error) {
	if err := guard(records, headers); err != nil {
		return "", err
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range records {
		mapping := &yaml.Node{Kind: yaml.MappingNode}
		for _, header := range headers {
			v, ok := rec[header]
			if !ok {
				continue
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: header}
			val := &yaml.Node{}
			if native := record.Native(v); native == nil {
				val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
			} else if err := val.Encode(native); err != nil {
				return "", fmt.Errorf("encode yaml value for %q: %w", header, err)
			}
			mapping.Content = append(mapping.Content, key, val)
		}
		seq.Content = append(seq.Content, mapping)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}
