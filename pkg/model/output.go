package model

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the catalog as the same mapping CatalogFromBytes reads, keeping catalog order
func (catalog *Catalog) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, entry := range catalog.entries {
		if i > 0 {
			buffer.WriteByte(',')
		}
		key, err := json.Marshal(entry.Course)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(newRawCourseRule(entry.Rule))
		if err != nil {
			return nil, err
		}
		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value)
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// MarshalYAML writes the catalog as the same mapping CatalogFromBytes reads, keeping catalog order
func (catalog *Catalog) MarshalYAML() (any, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range catalog.entries {
		var value yaml.Node
		if err := value.Encode(newRawCourseRule(entry.Rule)); err != nil {
			return nil, err
		}
		mapping.Content = append(mapping.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Course}, &value)
	}
	return mapping, nil
}

// newRawCourseRule maps a rule back to its wire shape. Empty fields are written as empty lists
func newRawCourseRule(rule CourseRule) RawCourseRule {
	return RawCourseRule{
		Prereqs: nonNil(rule.Prerequisites),
		Coreqs:  nonNil(rule.Corequisites),
		Either:  nonNil(rule.EitherOf),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
