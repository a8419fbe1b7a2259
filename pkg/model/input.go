package model

import (
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type RawCourseRule struct {
	Prereqs []string `mapstructure:"prereqs" json:"prereqs" yaml:"prereqs" validate:"dive,courseid"`
	Coreqs  []string `mapstructure:"coreqs" json:"coreqs" yaml:"coreqs" validate:"dive,courseid"`
	Either  []string `mapstructure:"either" json:"either" yaml:"either" validate:"dive,courseid"`
}

type RawCatalogEntry struct {
	Course string        `json:"course" validate:"courseid"`
	Rule   RawCourseRule `json:"rule"`
}

type RawTranscript struct {
	CompletedCourses []string `mapstructure:"completedCourses" json:"completedCourses" validate:"dive,courseid"`
}

// CatalogFromFile loads a catalog from a JSON or YAML document mapping course identifiers to rules
func CatalogFromFile(file string) (*Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read catalog file %q", file)
	}
	return CatalogFromBytes(bytes)
}

// CatalogFromBytes parses a JSON or YAML catalog. The document's key order becomes the catalog order, hence a node tree is walked instead of decoding into a map
func CatalogFromBytes(data []byte) (*Catalog, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.MappingNode {
		return nil, &InputError{Err: errors.New("catalog must be a mapping from course identifier to rule")}
	}

	rawCatalog := make([]RawCatalogEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &InputError{Err: errors.Errorf("line %d: course identifier must be a scalar", keyNode.Line)}
		}

		rule, err := decodeRawCourseRule(keyNode.Value, valueNode)
		if err != nil {
			return nil, err
		}
		rawCatalog = append(rawCatalog, RawCatalogEntry{Course: keyNode.Value, Rule: rule})
	}

	return ProcessRawCatalog(rawCatalog)
}

// ProcessRawCatalog cleans and validates raw entries and builds the catalog from them
func ProcessRawCatalog(rawCatalog []RawCatalogEntry) (*Catalog, error) {
	entries := make([]CatalogEntry, 0, len(rawCatalog))
	for _, rawEntry := range rawCatalog {
		rawEntry.Course = CleanIdentifier(rawEntry.Course)
		rawEntry.Rule.Prereqs = cleanIdentifiers(rawEntry.Rule.Prereqs)
		rawEntry.Rule.Coreqs = cleanIdentifiers(rawEntry.Rule.Coreqs)
		rawEntry.Rule.Either = cleanIdentifiers(rawEntry.Rule.Either)

		if err := validateStruct(rawEntry, rawEntry.Course); err != nil {
			return nil, err
		}

		entries = append(entries, CatalogEntry{
			Course: rawEntry.Course,
			Rule: CourseRule{
				Prerequisites: lo.Uniq(rawEntry.Rule.Prereqs),
				Corequisites:  lo.Uniq(rawEntry.Rule.Coreqs),
				EitherOf:      lo.Uniq(rawEntry.Rule.Either),
			},
		})
	}

	return NewCatalog(entries)
}

// CompletedFromFile loads a transcript: either a list of course identifiers or a mapping with a completedCourses list
func CompletedFromFile(file string) (CompletedSet, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read transcript file %q", file)
	}
	return CompletedFromBytes(bytes)
}

func CompletedFromBytes(data []byte) (CompletedSet, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	var document any
	if err := root.Decode(&document); err != nil {
		return nil, &InputError{Err: err}
	}
	// A bare list is shorthand for the completedCourses field
	if _, ok := document.([]any); ok {
		document = map[string]any{"completedCourses": document}
	}

	var transcript RawTranscript
	if err := decode(document, &transcript); err != nil {
		return nil, &InputError{Err: errors.Wrap(err, "transcript must be a list of course identifiers")}
	}
	transcript.CompletedCourses = cleanIdentifiers(transcript.CompletedCourses)
	if err := validateStruct(transcript, ""); err != nil {
		return nil, err
	}

	return NewCompletedSet(transcript.CompletedCourses...), nil
}

// CleanIdentifier trims all leading and trailing white space in a course identifier. Case is left to the caller
func CleanIdentifier(id string) string {
	return strings.TrimSpace(id)
}

func cleanIdentifiers(ids []string) []string {
	return lo.Map(ids, func(id string, _ int) string { return CleanIdentifier(id) })
}

func parseDocument(data []byte) (*yaml.Node, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, &InputError{Err: errors.Wrap(err, "cannot parse document")}
	}
	if document.Kind != yaml.DocumentNode || len(document.Content) == 0 {
		return nil, &InputError{Err: ErrEmptyInput}
	}
	return document.Content[0], nil
}

func decodeRawCourseRule(course string, node *yaml.Node) (RawCourseRule, error) {
	// A course listed without a rule has no constraints
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return RawCourseRule{}, nil
	}
	if node.Kind != yaml.MappingNode {
		return RawCourseRule{}, &InputError{Course: course, Err: errors.Errorf("line %d: rule must be a mapping with prereqs, coreqs and either", node.Line)}
	}

	var fields map[string]any
	if err := node.Decode(&fields); err != nil {
		return RawCourseRule{}, &InputError{Course: course, Err: err}
	}

	var rule RawCourseRule
	if err := decode(fields, &rule); err != nil {
		return RawCourseRule{}, &InputError{Course: course, Err: err}
	}
	return rule, nil
}

// decode is a strict mapstructure decode: unknown fields and scalar/list mismatches are errors
func decode(input any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      result,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
