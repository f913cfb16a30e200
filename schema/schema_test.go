package schema

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tracelens/trace-model/go-model/path"
)

const sessionContext = `
schemas:
  - name: Session
    attributes:
      - {name: Processes, schema: ProcessContainer, required: true}
      - {name: _display, schema: STRING, hidden: true}
    default-attribute: VOID
  - name: ProcessContainer
    default-element: Process
  - name: Process
    attributes:
      - {name: Threads, schema: ThreadContainer}
      - {name: Environment, schema: STRING}
      - {key: Env, name: Environment, schema: STRING}
    default-attribute: ANY
  - name: ThreadContainer
    default-element: Thread
  - name: Thread
    attributes:
      - {name: _state, schema: STRING, hidden: true}
`

func loadSession(t *testing.T) *Context {
	t.Helper()
	ctx, err := LoadContext(strings.NewReader(sessionContext))
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	return ctx
}

func TestSuccessor(t *testing.T) {
	ctx := loadSession(t)
	session := ctx.Lookup("Session")
	tests := []struct {
		name string
		p    path.KeyPath
		want string
	}{
		{"root", path.Root, "Session"},
		{"attribute", path.Root.Key("Processes"), "ProcessContainer"},
		{"element", path.Root.Key("Processes").IndexN(0), "Process"},
		{"wildcard element", path.Root.Key("Processes").Index(""), "Process"},
		{"deep", path.Root.Key("Processes").IndexN(0).Key("Threads").IndexN(3), "Thread"},
		{"undeclared attribute falls to default", path.Root.Key("Nope"), "VOID"},
		{"wildcard attribute falls to default", path.Root.Key(""), "VOID"},
		{"primitive attribute", path.Root.Key("_display"), "STRING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := session.Successor(tt.p)
			if got.Name != tt.want {
				t.Errorf("Successor(%q) = %s, want %s", tt.p, got.Name, tt.want)
			}
		})
	}
}

func TestSuccessorWithoutDeclarations(t *testing.T) {
	ctx := loadSession(t)
	// ThreadContainer has no attribute declarations at all: attribute
	// steps degrade to ANY, element steps use the declared default.
	tc := ctx.Lookup("ThreadContainer")
	if got := tc.Child(path.KeySeg("anything")); !got.Equal(Any) {
		t.Errorf("undeclared attribute = %s, want ANY", got)
	}
	// Thread has no element declarations: index steps degrade to OBJECT.
	th := ctx.Lookup("Thread")
	if got := th.Child(path.IndexSegN(0)); !got.Equal(Object) {
		t.Errorf("undeclared element = %s, want OBJECT", got)
	}
}

func TestNamedAttributes(t *testing.T) {
	ctx := loadSession(t)
	proc := ctx.Lookup("Process")
	var names []string
	for _, as := range proc.NamedAttributes() {
		names = append(names, as.Name)
	}
	// The Env alias (key != name) and nothing else is excluded.
	want := []string{"Environment", "Threads"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("NamedAttributes mismatch (-want +got):\n%s", diff)
	}

	// The default entry (empty declared name) is excluded too.
	session := ctx.Lookup("Session")
	names = names[:0]
	for _, as := range session.NamedAttributes() {
		names = append(names, as.Name)
	}
	want = []string{"Processes", "_display"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("NamedAttributes mismatch (-want +got):\n%s", diff)
	}
}

func TestContextDefine(t *testing.T) {
	ctx := NewContext()
	if err := ctx.Define(&Schema{Name: "X"}); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Define(&Schema{Name: "X"}); err == nil {
		t.Errorf("redefinition should fail")
	}
	if err := ctx.Define(&Schema{Name: "OBJECT"}); err == nil {
		t.Errorf("builtin shadowing should fail")
	}
	if ctx.Lookup("ANY") != Any {
		t.Errorf("builtins visible through Lookup")
	}
	if ctx.Lookup("nope") != nil {
		t.Errorf("unknown name should be nil")
	}
}

func TestEqual(t *testing.T) {
	ctx1 := loadSession(t)
	ctx2 := loadSession(t)
	if !ctx1.Lookup("Thread").Equal(ctx1.Lookup("Thread")) {
		t.Errorf("same schema should be equal")
	}
	if ctx1.Lookup("Thread").Equal(ctx2.Lookup("Thread")) {
		t.Errorf("same name in different contexts is a different schema")
	}
	if !Object.Equal(Object) {
		t.Errorf("builtin equals itself")
	}
}
