package parser

import "testing"

func TestNormalisationTable(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "  TRAVLE  ", want: "travle"},
		{in: "cross-the   RIVER!!", want: "cross the river"},
		{in: "rest   3d", want: "rest 3d"},
	}
	for _, tc := range tests {
		got := normaliseInput(tc.in)
		if got != tc.want {
			t.Fatalf("normaliseInput(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestAliasInvMapsToSupplies(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "inv")
	if intent.Verb != "supplies" {
		t.Fatalf("expected supplies verb, got %q", intent.Verb)
	}
	if intent.Clarify != nil {
		t.Fatalf("did not expect clarify: %+v", intent.Clarify)
	}
}

func TestTypoTravellMapsToTravel(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "travell")
	if intent.Verb != "travel" {
		t.Fatalf("expected travel verb, got %q", intent.Verb)
	}
	if intent.Confidence < 0.6 {
		t.Fatalf("expected decent confidence for typo correction, got %.2f", intent.Confidence)
	}
}

func TestHuntDefaultsToNormalStyle(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "hunt")
	if intent.Verb != "hunt" {
		t.Fatalf("expected hunt verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "normal" {
		t.Fatalf("expected default style normal, got %+v", intent.Args)
	}
}

func TestHuntStyleTypoResolves(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "hunt agressive")
	if intent.Clarify != nil {
		t.Fatalf("unexpected clarify: %+v", intent.Clarify)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "aggressive" {
		t.Fatalf("expected aggressive style, got %+v", intent.Args)
	}
}

func TestRestWithDays(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "rest 3 days")
	if intent.Verb != "rest" {
		t.Fatalf("expected rest verb, got %q", intent.Verb)
	}
	if intent.Quantity == nil || intent.Quantity.N != 3 || intent.Quantity.Unit != "days" {
		t.Fatalf("expected 3 days quantity, got %+v", intent.Quantity)
	}
}

func TestCrossFordParses(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "cross the river ford")
	if intent.Verb != "cross" {
		t.Fatalf("expected cross verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "ford" {
		t.Fatalf("expected ford method, got %+v", intent.Args)
	}
}

func TestCrossWithoutMethodAsksForOne(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "cross")
	if intent.Verb != "cross" {
		t.Fatalf("expected cross verb, got %q", intent.Verb)
	}
	if len(intent.Args) != 0 {
		t.Fatalf("expected no args without a method, got %+v", intent.Args)
	}
}

func TestFreeTextKeepMovingInference(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "we should keep moving before the snow")
	if intent.Verb != "travel" {
		t.Fatalf("expected travel inference, got %q", intent.Verb)
	}
}

func TestFreeTextResupplyAtSettlement(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{AtSettlement: true}, "time to stock up")
	if intent.Verb != "trade" {
		t.Fatalf("expected trade inference, got %q", intent.Verb)
	}
	if intent.Kind != Query {
		t.Fatalf("expected trade to be a query intent")
	}
}

func TestRouteChoiceParses(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{AtFork: true}, "take route 2")
	if intent.Verb != "route" {
		t.Fatalf("expected route, got %q", intent.Verb)
	}
	if intent.Quantity == nil || intent.Quantity.N != 2 {
		t.Fatalf("expected the choice as a quantity, got %+v", intent.Quantity)
	}
}

func TestFreeTextWhichWayAtFork(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{AtFork: true}, "which way do we go")
	if intent.Verb != "route" {
		t.Fatalf("expected route inference at a fork, got %q", intent.Verb)
	}
}

func TestUnknownInputClarifies(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "xyzzy plugh")
	if intent.Clarify == nil {
		t.Fatalf("expected clarify for unmappable input")
	}
	if intent.Kind != Unknown {
		t.Fatalf("expected unknown kind, got %v", intent.Kind)
	}
}

func TestForageWaterParses(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "forage water")
	if len(intent.Args) != 1 || intent.Args[0] != "water" {
		t.Fatalf("expected water target, got %+v", intent.Args)
	}
}

func TestPaceGruelingTypo(t *testing.T) {
	p := New()
	intent := p.Parse(ParseContext{}, "pace greuling")
	if intent.Clarify != nil {
		t.Fatalf("unexpected clarify: %+v", intent.Clarify)
	}
	if len(intent.Args) != 1 || intent.Args[0] != "grueling" {
		t.Fatalf("expected grueling, got %+v", intent.Args)
	}
}
