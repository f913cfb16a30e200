package memtrace

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	model "github.com/tracelens/trace-model/go-model"
	"github.com/tracelens/trace-model/go-model/path"
	"github.com/tracelens/trace-model/go-model/span"
)

// twoThreads builds the scenario used throughout: Processes[0] with two
// thread elements of staggered lifespans, a primitive display string,
// and a link re-parenting ThreadB under Processes[1] later in time.
func twoThreads(t *testing.T) *Trace {
	t.Helper()
	tr := New(nil)
	proc0, err := tr.Insert(path.Root.Key("Processes").IndexN(0), span.Make(0, 30))
	if err != nil {
		t.Fatal(err)
	}
	threadA, err := tr.Insert(path.Root.Key("Processes").IndexN(0).IndexN(0), span.Make(0, 10))
	if err != nil {
		t.Fatal(err)
	}
	_ = threadA
	threadB, err := tr.Insert(path.Root.Key("Processes").IndexN(0).IndexN(1), span.Make(5, 20))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.PutPrimitive(proc0, path.KeySeg("_display"), "bash", span.Make(0, 30)); err != nil {
		t.Fatal(err)
	}
	proc1, err := tr.Insert(path.Root.Key("Processes").IndexN(1), span.Make(21, 30))
	if err != nil {
		t.Fatal(err)
	}
	// ThreadB migrates to Processes[1] after snapshot 20.
	if _, err := tr.PutEdge(proc1, path.IndexSegN(0), threadB, span.Make(21, 30)); err != nil {
		t.Fatal(err)
	}
	return tr
}

func pathStrings(tr *Trace, sp span.Span, query string, t *testing.T) []string {
	t.Helper()
	f, err := path.Parse(query)
	if err != nil {
		t.Fatalf("Parse(%q): %v", query, err)
	}
	var out []string
	for vp := range tr.ValuePaths(sp, f) {
		out = append(out, vp.KeyPath().String())
	}
	return out
}

func TestValuePaths(t *testing.T) {
	tr := twoThreads(t)
	tests := []struct {
		name  string
		query string
		sp    span.Span
		want  []string
	}{
		{
			name:  "elements over early span",
			query: "Processes[0][*]",
			sp:    span.Make(0, 4),
			want:  []string{"Processes[0][0]"},
		},
		{
			name:  "elements over overlap",
			query: "Processes[0][*]",
			sp:    span.Make(5, 10),
			want:  []string{"Processes[0][0]", "Processes[0][1]"},
		},
		{
			name:  "primitive terminal",
			query: "Processes[0]._display",
			sp:    span.Make(0, 30),
			want:  []string{"Processes[0]._display"},
		},
		{
			name:  "root pattern yields the empty path",
			query: "",
			sp:    span.Make(0, 30),
			want:  []string{""},
		},
		{
			name:  "re-parented element",
			query: "Processes[1][*]",
			sp:    span.Make(21, 30),
			want:  []string{"Processes[1][0]"},
		},
		{
			name:  "migrated thread gone from old parent",
			query: "Processes[0][*]",
			sp:    span.Make(21, 30),
			want:  nil,
		},
		{
			name:  "alternation yields each path once",
			query: "Processes[*] | Processes[0]",
			sp:    span.Make(0, 10),
			want:  []string{"Processes[0]"},
		},
		{
			name:  "empty span yields nothing",
			query: "Processes[*]",
			sp:    span.Empty,
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pathStrings(tr, tt.sp, tt.query, t)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("paths mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValuePathsDoesNotYieldPrefixes(t *testing.T) {
	tr := twoThreads(t)
	// A pattern of length 3 must not yield the shorter object paths.
	got := pathStrings(tr, span.Make(0, 10), "Processes[0][0]", t)
	want := []string{"Processes[0][0]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestAncestors(t *testing.T) {
	tr := twoThreads(t)
	threadB := tr.Lookup(path.Root.Key("Processes").IndexN(0).IndexN(1))
	if threadB == nil {
		t.Fatal("ThreadB not placed")
	}

	suffix, err := path.ParsePattern("Processes[*][*]")
	if err != nil {
		t.Fatal(err)
	}
	var origins []string
	for vp := range threadB.Ancestors(span.Make(5, 20), suffix) {
		origins = append(origins, vp.Origin(threadB).CanonicalPath().String())
		if got := vp.KeyPath().String(); got != "Processes[0][1]" {
			t.Errorf("ancestor path = %q", got)
		}
	}
	if len(origins) != 1 || origins[0] != "" {
		t.Errorf("origins = %v, want one root origin", origins)
	}

	// After migration the same suffix resolves through Processes[1].
	var paths []string
	for vp := range threadB.Ancestors(span.Make(21, 30), suffix) {
		paths = append(paths, vp.KeyPath().String())
	}
	if diff := cmp.Diff([]string{"Processes[1][0]"}, paths); diff != "" {
		t.Errorf("migrated ancestors mismatch (-want +got):\n%s", diff)
	}

	// Empty suffix yields the trivial path at the object itself.
	n := 0
	for vp := range threadB.Ancestors(span.Make(0, 30), path.RootPattern) {
		n++
		if vp.Origin(threadB) != model.Object(threadB) {
			t.Errorf("trivial origin should be the object itself")
		}
	}
	if n != 1 {
		t.Errorf("trivial ancestors = %d, want 1", n)
	}
}

func TestCanonicalParent(t *testing.T) {
	tr := twoThreads(t)
	rootEntry := tr.Root().CanonicalParent(0)
	if rootEntry == nil {
		t.Fatal("root must always have its synthetic entry")
	}
	if rootEntry.Parent() != nil {
		t.Errorf("root entry has no parent")
	}
	if obj, ok := rootEntry.Child().Object(); !ok || obj != tr.RootObject() {
		t.Errorf("root entry resolves to the root object")
	}

	threadB := tr.Lookup(path.Root.Key("Processes").IndexN(0).IndexN(1))
	if cp := threadB.CanonicalParent(10); cp == nil {
		t.Errorf("ThreadB placed at snap 10")
	}
	// The migration edge is non-canonical; after ThreadB's canonical
	// placement lapses it has no canonical parent.
	if cp := threadB.CanonicalParent(25); cp != nil {
		t.Errorf("migration edge must not be canonical, got %v", cp)
	}
}

func TestLoad(t *testing.T) {
	const doc = `
root-schema: Session
schemas:
  - name: Session
    attributes:
      - {name: Processes, schema: ProcessContainer}
  - name: ProcessContainer
    default-element: Process
  - name: Process
values:
  - path: Processes[0]
    span: [0, 10]
  - path: Processes[0]._display
    span: [0, 10]
    value: "bash"
  - path: Processes[1]
    span: [5, 20]
  - path: Processes[1].parent
    span: [5, 10]
    link: Processes[0]
`
	tr, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if tr.RootSchema() == nil || tr.RootSchema().Name != "Session" {
		t.Errorf("root schema = %v", tr.RootSchema())
	}
	got := pathStrings(tr, span.Make(0, 10), "Processes[*]", t)
	want := []string{"Processes[0]", "Processes[1]"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	got = pathStrings(tr, span.Make(5, 10), "Processes[1].parent", t)
	if diff := cmp.Diff([]string{"Processes[1].parent"}, got); diff != "" {
		t.Errorf("link paths mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"primitive without parent", "values:\n  - {path: a.b, span: [0, 1], value: 3}\n"},
		{"link target missing", "values:\n  - {path: a, span: [0, 1]}\n  - {path: a.b, span: [0, 1], link: c}\n"},
		{"no span", "values:\n  - {path: a}\n"},
		{"bad path", "values:\n  - {path: 'a[', span: [0, 1]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.doc)); err == nil {
				t.Errorf("Load should fail")
			}
		})
	}
}
