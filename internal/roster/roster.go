// Package roster loads the list of people an age batch runs over.
//
// A roster file is YAML or JSON and holds either a top-level "people" list or
// a bare list of {name, birthDate} entries. JSON is accepted because it is a
// subset of YAML.
package roster

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agbru/agecalc/internal/age"
	apperrors "github.com/agbru/agecalc/internal/errors"
)

// File is the document form of a roster.
type File struct {
	People []age.Person `json:"people" yaml:"people"`
}

// Sample returns the built-in roster used when no input file is given.
func Sample() []age.Person {
	return []age.Person{
		{Name: "Ana", BirthDate: "1990-01-15"},
		{Name: "Sofia", BirthDate: "1982-06-20"},
		{Name: "Mateo", BirthDate: "2000-11-05"},
		{Name: "David", BirthDate: "2015-03-25"},
	}
}

// Load reads and parses the roster at path. Birth dates are not validated
// here; invalid ones surface when the batch runs.
func Load(path string) ([]age.Person, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a roster document. An empty document is an empty roster.
// Every entry must carry a non-blank name; a missing one yields an
// apperrors.ValidationError.
func Parse(data []byte) ([]age.Person, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return []age.Person{}, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var people []age.Person
		if err := root.Decode(&people); err != nil {
			return nil, fmt.Errorf("failed to decode roster list: %w", err)
		}
		return validate(people)
	case yaml.MappingNode:
		var f File
		if err := root.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode roster: %w", err)
		}
		return validate(f.People)
	default:
		return nil, fmt.Errorf("failed to decode roster: expected a list or a mapping with \"people\", got line %d", root.Line)
	}
}

func validate(people []age.Person) ([]age.Person, error) {
	if people == nil {
		return []age.Person{}, nil
	}
	for i, p := range people {
		if strings.TrimSpace(p.Name) == "" {
			return nil, apperrors.ValidationError{
				Field:   fmt.Sprintf("people[%d].name", i),
				Message: "name is required",
			}
		}
	}
	return people, nil
}
