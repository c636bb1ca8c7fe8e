package adapter

import "testing"

func TestReadInform6ParsesTaggedLinesAndMetadata(t *testing.T) {
	// H: lines for a routine are listed before that routine's "size:"
	// metadata line summarizes its code bytes, per the transcript's own
	// convention: routineID advances only once a routine's size line is
	// seen, so H: lines preceding it share the still-current id.
	transcript := "I:[Compiled Z-machine version 5]\n" +
		"O:Class\n" +
		"O:Object\n" +
		"O:Routine\n" +
		"O:String\n" +
		"O:a shiny brass lamp\n" +
		"G:you are standing in an open field\n" +
		"H:the lamp flickers\n" +
		"I: without inline strings size: 42\n" +
		"A:some non-indexed action text\n"

	corpus, _, err := ReadInform6([]byte(transcript), CharsetAuto)
	if err != nil {
		t.Fatalf("ReadInform6: %v", err)
	}
	if corpus.ZVersion != 5 {
		t.Fatalf("ZVersion = %d, want 5", corpus.ZVersion)
	}
	if corpus.RoutineSizes[0] != 42 {
		t.Fatalf("RoutineSizes[0] = %d, want 42", corpus.RoutineSizes[0])
	}
	// Class/Object/Routine/String are the four dropped metaclass artifacts.
	if len(corpus.Strings) != 3 {
		t.Fatalf("len(Strings) = %d, want 3 (object, global, inline; metaclasses dropped; A: ignored)", len(corpus.Strings))
	}

	obj := corpus.Strings[0]
	if !obj.ObjectDescription || obj.Packed {
		t.Fatalf("O: line must be object-description, not packed: %+v", obj)
	}
	g := corpus.Strings[1]
	if !g.Packed {
		t.Fatalf("G: line must be packed")
	}
	h := corpus.Strings[2]
	if h.Packed || h.ObjectDescription {
		t.Fatalf("H: line must be inline")
	}
	if h.RoutineID != 0 {
		t.Fatalf("H: line RoutineID = %d, want 0 (the routine whose size metadata line follows it)", h.RoutineID)
	}
}

func TestReadInform6SentinelMapping(t *testing.T) {
	transcript := "G:say^hello~world~ now\n"
	corpus, _, err := ReadInform6([]byte(transcript), CharsetAuto)
	if err != nil {
		t.Fatalf("ReadInform6: %v", err)
	}
	if len(corpus.Strings) != 1 {
		t.Fatalf("expected 1 string record, got %d", len(corpus.Strings))
	}
	got := restoreSentinelsInform6(string(corpus.Strings[0].Text))
	if want := "say^hello~world~ now"; got != want {
		t.Fatalf("sentinel round-trip = %q, want %q", got, want)
	}
}

func TestFirstToken(t *testing.T) {
	cases := map[string]string{
		"5]":      "5",
		"42 more": "42",
		"7, rest": "7",
		"abc":     "abc",
	}
	for in, want := range cases {
		if got := firstToken(in); got != want {
			t.Fatalf("firstToken(%q) = %q, want %q", in, got, want)
		}
	}
}
