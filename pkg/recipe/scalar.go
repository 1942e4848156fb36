package recipe

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Scalar is the text form of an arbitrary input value. Scalar nodes keep their
// literal text ("5432", "true", "db.internal"); mappings and sequences are
// rendered as compact JSON, which loses formatting but never fails.
type Scalar struct {
	text string
}

// Text builds a Scalar from a literal.
func Text(s string) Scalar {
	return Scalar{text: s}
}

func (s Scalar) String() string {
	return s.text
}

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode {
		if node.ShortTag() == "!!null" {
			s.text = ""
			return nil
		}
		s.text = node.Value
		return nil
	}

	var v interface{}
	if err := node.Decode(&v); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		// Mappings with non-string keys have no JSON form.
		s.text = fmt.Sprint(v)
		return nil
	}
	s.text = string(data)
	return nil
}
