package path

import "testing"

func TestKeyPathBuild(t *testing.T) {
	p := Root.Key("Processes").IndexN(0).Key("Threads").Index("4")
	if p.Len() != 4 {
		t.Fatalf("Len = %d, want 4", p.Len())
	}
	if got := p.String(); got != "Processes[0].Threads[4]" {
		t.Errorf("String = %q", got)
	}
	if p.IsRoot() {
		t.Errorf("non-empty path is not root")
	}
	if !Root.IsRoot() {
		t.Errorf("Root.IsRoot() should hold")
	}
}

func TestParentAppendRoundTrip(t *testing.T) {
	tests := []KeyPath{
		Root.Key("Processes"),
		Root.Key("Processes").IndexN(0),
		Root.Key("Processes").IndexN(0).Key("Threads").IndexN(3),
		Root.Index("x86:pc"),
	}
	for _, p := range tests {
		back := p.Parent().Extend(p.Last())
		if !back.Equal(p) {
			t.Errorf("parent/append round trip: got %q, want %q", back, p)
		}
	}
}

func TestAppendDoesNotAliasParent(t *testing.T) {
	base := Root.Key("a").Key("b")
	p1 := base.Key("c")
	p2 := base.Key("d")
	if p1.Last().Text() != "c" || p2.Last().Text() != "d" {
		t.Fatalf("appends alias: %q vs %q", p1, p2)
	}
	trimmed := p1.RemoveRight(1)
	_ = trimmed.Key("e")
	if p1.Last().Text() != "c" {
		t.Errorf("append after trim clobbered original: %q", p1)
	}
}

func TestRemoveRight(t *testing.T) {
	p := Root.Key("a").IndexN(1).Key("b")
	if got := p.RemoveRight(2); !got.Equal(Root.Key("a")) {
		t.Errorf("RemoveRight(2) = %q", got)
	}
	if got := p.RemoveRight(3); !got.IsRoot() {
		t.Errorf("RemoveRight(len) should be root, got %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("RemoveRight past root should panic")
		}
	}()
	p.RemoveRight(4)
}

func TestParentOfRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Parent of root should panic")
		}
	}()
	Root.Parent()
}

func TestStringQuoting(t *testing.T) {
	tests := []struct {
		p    KeyPath
		want string
	}{
		{Root.Key("plain"), "plain"},
		{Root.Key("has space"), "'has space'"},
		{Root.Key("dot.ted"), "'dot.ted'"},
		{Root.Key("it's"), `'it\'s'`},
		{Root.Key(""), "*"},
		{Root.Index(""), "[*]"},
		{Root.Key("a").Key(""), "a.*"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String = %q, want %q", got, tt.want)
		}
	}
}
