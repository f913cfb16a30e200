package path

import "testing"

func TestKeyMatches(t *testing.T) {
	tests := []struct {
		name     string
		pat, key Segment
		want     bool
	}{
		{"literal key", KeySeg("Threads"), KeySeg("Threads"), true},
		{"literal key mismatch", KeySeg("Threads"), KeySeg("Stack"), false},
		{"any key", KeySeg(""), KeySeg("anything"), true},
		{"any index", IndexSeg(""), IndexSegN(42), true},
		{"kinds never cross: any key vs index", KeySeg(""), IndexSegN(0), false},
		{"kinds never cross: any index vs key", IndexSeg(""), KeySeg("x"), false},
		{"kinds never cross: same text", KeySeg("0"), IndexSeg("0"), false},
		{"literal index", IndexSegN(3), IndexSegN(3), true},
		{"literal index mismatch", IndexSegN(3), IndexSegN(4), false},
		{"range hit low", RangeSeg(2, 5), IndexSegN(2), true},
		{"range hit high", RangeSeg(2, 5), IndexSegN(5), true},
		{"range miss", RangeSeg(2, 5), IndexSegN(6), false},
		{"range vs non-numeric key", RangeSeg(2, 5), IndexSeg("pc"), false},
		{"non-numeric bracketed literal", IndexSeg("x86:pc"), IndexSeg("x86:pc"), true},
		{"range text as literal", IndexSeg("a..b"), IndexSeg("a..b"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KeyMatches(tt.pat, tt.key); got != tt.want {
				t.Errorf("KeyMatches(%s, %s) = %v, want %v", tt.pat, tt.key, got, tt.want)
			}
		})
	}
}

func TestPatternMatches(t *testing.T) {
	pat := MakePattern(Root.Key("Processes").Index("").Key("Threads").Index(""))
	tests := []struct {
		p    KeyPath
		want bool
	}{
		{Root.Key("Processes").IndexN(0).Key("Threads").IndexN(9), true},
		{Root.Key("Processes").IndexN(0).Key("Threads"), false},
		{Root.Key("Processes").IndexN(0).Key("Stack").IndexN(9), false},
		{Root.Key("Processes").IndexN(0).Key("Threads").IndexN(9).Key("x"), false},
		{Root, false},
	}
	for _, tt := range tests {
		if got := pat.Matches(tt.p); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.p, got, tt.want)
		}
	}
	if !RootPattern.Matches(Root) {
		t.Errorf("root pattern matches root path")
	}
}

func TestFilterMatches(t *testing.T) {
	a := MakePattern(Root.Key("A").Index(""))
	b := MakePattern(Root.Key("B"))
	f := MakeFilter(a, b)
	if !f.Matches(Root.Key("A").IndexN(1)) {
		t.Errorf("first alternative should match")
	}
	if !f.Matches(Root.Key("B")) {
		t.Errorf("second alternative should match")
	}
	if f.Matches(Root.Key("C")) {
		t.Errorf("no alternative should match")
	}
	if None.Matches(Root) {
		t.Errorf("None matches nothing")
	}
}

func TestFilterNone(t *testing.T) {
	if !None.IsNone() {
		t.Errorf("None.IsNone() should hold")
	}
	if len(None.Patterns()) != 0 {
		t.Errorf("None has no patterns")
	}
	f := MakeFilter(RootPattern)
	if f.IsNone() {
		t.Errorf("filter with a pattern is not None")
	}
	// isNone iff patterns empty
	if f.IsNone() != (len(f.Patterns()) == 0) {
		t.Errorf("IsNone must agree with Patterns emptiness")
	}
}

func TestFilterEqualOrderSensitive(t *testing.T) {
	a := MakePattern(Root.Key("A"))
	b := MakePattern(Root.Key("B"))
	if !MakeFilter(a, b).Equal(MakeFilter(a, b)) {
		t.Errorf("equal filters")
	}
	if MakeFilter(a, b).Equal(MakeFilter(b, a)) {
		t.Errorf("filter equality is order-sensitive")
	}
	if MakeFilter(a).Equal(None) {
		t.Errorf("singleton != None")
	}
}
