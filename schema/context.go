package schema

import "fmt"

// Builtin primitive schemas. They have no context and are shared by all
// contexts; Lookup falls back to them by name.
var (
	// Object is the generic, untyped object schema. It is also the
	// degrade-gracefully sentinel for ambiguous schema resolution.
	Object = &Schema{Name: "OBJECT"}
	// Any accepts anything, object or primitive.
	Any = &Schema{Name: "ANY", Primitive: true}
	// Void is the schema of nothing.
	Void = &Schema{Name: "VOID", Primitive: true}

	String = &Schema{Name: "STRING", Primitive: true}
	Int    = &Schema{Name: "INT", Primitive: true}
	Bool   = &Schema{Name: "BOOL", Primitive: true}
	Float  = &Schema{Name: "FLOAT", Primitive: true}
)

var builtins = map[string]*Schema{
	Object.Name: Object,
	Any.Name:    Any,
	Void.Name:   Void,
	String.Name: String,
	Int.Name:    Int,
	Bool.Name:   Bool,
	Float.Name:  Float,
}

// Context is a registry of named schemas. Schemas reference each other
// by name within their context; builtins are visible in every context.
type Context struct {
	schemas map[string]*Schema
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{schemas: map[string]*Schema{}}
}

// Define registers s in the context. Redefinition and builtin shadowing
// are errors.
func (c *Context) Define(s *Schema) error {
	if s.Name == "" {
		return fmt.Errorf("schema: cannot define unnamed schema")
	}
	if builtins[s.Name] != nil {
		return fmt.Errorf("schema: %q shadows a builtin", s.Name)
	}
	if c.schemas[s.Name] != nil {
		return fmt.Errorf("schema: %q already defined", s.Name)
	}
	s.ctx = c
	c.schemas[s.Name] = s
	return nil
}

// Lookup resolves a name to its schema, checking the context then the
// builtins. It returns nil for unknown names.
func (c *Context) Lookup(name string) *Schema {
	if s := c.schemas[name]; s != nil {
		return s
	}
	return builtins[name]
}
