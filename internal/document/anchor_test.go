package document

import (
	"testing"

	"docs2mcp/internal/gdocs"
	"docs2mcp/internal/model"
)

func TestResolveTextSingleFragment(t *testing.T) {
	// One run holding two occurrences; instance selects the exact one.
	frags := Flatten(docWith(para(1, "Hello World. Hello Moon.\n")))

	tests := []struct {
		name      string
		target    string
		instance  int
		wantStart int64
		wantEnd   int64
		wantErr   string
	}{
		{name: "first occurrence", target: "Hello", instance: 1, wantStart: 1, wantEnd: 6},
		{name: "second occurrence same fragment", target: "Hello", instance: 2, wantStart: 14, wantEnd: 19},
		{name: "instance past count", target: "Hello", instance: 3, wantErr: model.CodeAnchorNotFound},
		{name: "zero instance", target: "Hello", instance: 0, wantErr: model.CodeAnchorNotFound},
		{name: "negative instance", target: "Hello", instance: -2, wantErr: model.CodeAnchorNotFound},
		{name: "absent target", target: "Pluto", instance: 1, wantErr: model.CodeAnchorNotFound},
		{name: "empty target", target: "", instance: 1, wantErr: model.CodeAnchorNotFound},
		{name: "mid-word", target: "World", instance: 1, wantStart: 7, wantEnd: 12},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := ResolveText(frags, tc.target, tc.instance)
			if tc.wantErr != "" {
				if model.CodeOf(err) != tc.wantErr {
					t.Fatalf("err=%v want code %s", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.StartIndex != tc.wantStart || r.EndIndex != tc.wantEnd {
				t.Fatalf("range=[%d,%d) want [%d,%d)", r.StartIndex, r.EndIndex, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestResolveTextAcrossFragments(t *testing.T) {
	frags := Flatten(docWith(
		para(1, "one fish\n"),   // occurrence 1 of "fish"
		para(10, "two fish\n"),  // occurrence 2
		para(19, "red herring\n"),
		para(31, "blue fish\n"), // occurrence 3
	))

	r, err := ResolveText(frags, "fish", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.StartIndex != 36 || r.EndIndex != 40 {
		t.Fatalf("range=[%d,%d) want [36,40)", r.StartIndex, r.EndIndex)
	}
	if _, err := ResolveText(frags, "fish", 4); model.CodeOf(err) != model.CodeAnchorNotFound {
		t.Fatalf("err=%v want %s", err, model.CodeAnchorNotFound)
	}
}

func TestResolveTextRangeInvariants(t *testing.T) {
	doc := docWith(para(1, "aaa aaa aaa\n"))
	frags := Flatten(doc)
	length := Length(doc)

	for k := 1; k <= 3; k++ {
		r, err := ResolveText(frags, "aaa", k)
		if err != nil {
			t.Fatalf("instance %d: %v", k, err)
		}
		if r.StartIndex >= r.EndIndex {
			t.Fatalf("instance %d: degenerate range [%d,%d)", k, r.StartIndex, r.EndIndex)
		}
		if r.EndIndex > length+1 {
			t.Fatalf("instance %d: end %d exceeds document length %d", k, r.EndIndex, length)
		}
	}
}

func TestResolveParagraph(t *testing.T) {
	// Target only in the middle paragraph; the resolved range is the full
	// paragraph regardless of the target's sub-position.
	doc := docWith(
		para(1, "Alpha one\n"),
		para(11, "Beta target two\n"),
		para(27, "Gamma three\n"),
	)
	frags := Flatten(doc)

	r, err := ResolveParagraph(frags, "target", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.StartIndex != 11 || r.EndIndex != 27 {
		t.Fatalf("range=[%d,%d) want [11,27)", r.StartIndex, r.EndIndex)
	}

	if _, err := ResolveParagraph(frags, "target", 2); model.CodeOf(err) != model.CodeAnchorNotFound {
		t.Fatalf("err=%v want %s", err, model.CodeAnchorNotFound)
	}
}

func TestResolveParagraphCountsPerParagraphNotPerHit(t *testing.T) {
	// Paragraph 1 holds the target twice but counts once; instance 2 is
	// paragraph 2.
	doc := docWith(
		para(1, "ping ping ping\n"),
		para(16, "one ping only\n"),
	)
	frags := Flatten(doc)

	r, err := ResolveParagraph(frags, "ping", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.StartIndex != 16 || r.EndIndex != 30 {
		t.Fatalf("range=[%d,%d) want [16,30)", r.StartIndex, r.EndIndex)
	}
}

func TestResolveParagraphMultiRunParagraph(t *testing.T) {
	// A paragraph split into several runs still counts once even when two
	// of its runs match.
	doc := docWith(gdocs.StructuralElement{
		StartIndex: 1,
		EndIndex:   22,
		Paragraph: &gdocs.Paragraph{
			Elements: []gdocs.ParagraphElement{
				{StartIndex: 1, EndIndex: 11, TextRun: &gdocs.TextRun{Content: "match one "}},
				{StartIndex: 11, EndIndex: 22, TextRun: &gdocs.TextRun{Content: "match two.\n"}},
			},
		},
	}, para(22, "match three\n"))
	frags := Flatten(doc)

	r, err := ResolveParagraph(frags, "match", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.StartIndex != 22 || r.EndIndex != 34 {
		t.Fatalf("range=[%d,%d) want [22,34)", r.StartIndex, r.EndIndex)
	}
}
