package schema

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Doc is the YAML shape of one schema definition. Trace files and
// schema context files embed lists of these.
type Doc struct {
	Name           string            `yaml:"name"`
	Elements       map[string]string `yaml:"elements"`
	DefaultElement string            `yaml:"default-element"`
	Attributes     []*AttrDoc        `yaml:"attributes"`
	// DefaultAttribute names the schema for undeclared attribute keys.
	DefaultAttribute string `yaml:"default-attribute"`
}

// AttrDoc is one attribute declaration. Key, when set, registers the
// declaration under a map key other than its name (an alias).
type AttrDoc struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Schema   string `yaml:"schema"`
	Required bool   `yaml:"required"`
	Fixed    bool   `yaml:"fixed"`
	Hidden   bool   `yaml:"hidden"`
}

type contextDoc struct {
	Schemas []*Doc `yaml:"schemas"`
}

// BuildContext defines every doc in a fresh context.
func BuildContext(docs []*Doc) (*Context, error) {
	ctx := NewContext()
	for _, sd := range docs {
		s, err := sd.schema()
		if err != nil {
			return nil, err
		}
		if err := ctx.Define(s); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// LoadContext reads a YAML schema context document:
//
//	schemas:
//	  - name: Session
//	    attributes:
//	      - {name: Processes, schema: ProcessContainer, required: true}
//	    default-attribute: ANY
//	  - name: ProcessContainer
//	    default-element: Process
func LoadContext(r io.Reader) (*Context, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var doc contextDoc
	if err := yaml.Unmarshal(d, &doc); err != nil {
		return nil, fmt.Errorf("schema: decoding context: %w", err)
	}
	return BuildContext(doc.Schemas)
}

func (sd *Doc) schema() (*Schema, error) {
	s := &Schema{
		Name:           sd.Name,
		DefaultElement: sd.DefaultElement,
	}
	if len(sd.Elements) > 0 {
		s.Elements = sd.Elements
	}
	if len(sd.Attributes) > 0 || sd.DefaultAttribute != "" {
		s.Attributes = map[string]*AttributeSchema{}
	}
	for _, ad := range sd.Attributes {
		key := ad.Key
		if key == "" {
			key = ad.Name
		}
		if key == "" {
			return nil, fmt.Errorf("schema %q: attribute with neither key nor name", sd.Name)
		}
		if s.Attributes[key] != nil {
			return nil, fmt.Errorf("schema %q: duplicate attribute key %q", sd.Name, key)
		}
		s.Attributes[key] = &AttributeSchema{
			Name:     ad.Name,
			Schema:   ad.Schema,
			Required: ad.Required,
			Fixed:    ad.Fixed,
			Hidden:   ad.Hidden,
		}
	}
	if sd.DefaultAttribute != "" {
		def := &AttributeSchema{Schema: sd.DefaultAttribute}
		s.DefaultAttribute = def
		if s.Attributes[""] == nil {
			s.Attributes[""] = def
		}
	}
	return s, nil
}
