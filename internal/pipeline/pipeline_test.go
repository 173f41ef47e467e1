package pipeline

import (
	"errors"
	"strings"
	"testing"
)

// TestRunOrderAndShortCircuit verifies that stages run in registration
// order and that a failure halts the chain before later stages execute.
func TestRunOrderAndShortCircuit(t *testing.T) {
	var ran []string
	record := func(name string, fail bool) StageFunc {
		return func(res Result) (Result, error) {
			ran = append(ran, name)
			if fail {
				return Result{}, errors.New("boom")
			}
			return res, nil
		}
	}

	p := New("test").
		Append("first", record("first", false)).
		Append("second", record("second", true)).
		Append("third", record("third", false))

	res, err := p.Run("body")
	if err == nil {
		t.Fatal("expected error from failing stage")
	}

	var stageErr *StageError
	if !errors.As(err, &stageErr) {
		t.Fatalf("expected *StageError, got %T", err)
	}
	if stageErr.Stage != "second" {
		t.Errorf("failed stage: got %q, want %q", stageErr.Stage, "second")
	}

	if len(ran) != 2 || ran[0] != "first" || ran[1] != "second" {
		t.Errorf("stages ran: %v, want [first second]", ran)
	}

	// No partial result on failure.
	if res.Body != "" || res.HTML != "" || res.Summary != "" || res.Outline != nil {
		t.Errorf("expected zero result on failure, got %+v", res)
	}
}

// TestArticlePipelineDeterminism verifies that identical input produces
// identical derived output across repeated runs.
func TestArticlePipelineDeterminism(t *testing.T) {
	p := ForArticles()
	raw := "# Title\n\nFirst paragraph with **bold** text.\n\n## Section\n\nMore prose here."

	first, err := p.Run(raw)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := p.Run(raw)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if again.HTML != first.HTML {
			t.Errorf("run %d: HTML differs", i)
		}
		if again.Summary != first.Summary {
			t.Errorf("run %d: summary differs", i)
		}
		if len(again.Outline) != len(first.Outline) {
			t.Errorf("run %d: outline differs", i)
		}
	}
}

// TestSanitizeRemovesScriptBeforeRender verifies that a script tag in the
// raw markdown never reaches the rendered output.
func TestSanitizeRemovesScriptBeforeRender(t *testing.T) {
	p := ForArticles()
	res, err := p.Run("Hello <script>alert('x')</script> world.\n\nSecond line.")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(res.HTML, "<script") {
		t.Errorf("rendered output contains script tag: %q", res.HTML)
	}
	if strings.Contains(res.HTML, "alert(") {
		t.Errorf("rendered output contains script body: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "Hello") {
		t.Errorf("rendered output lost surrounding text: %q", res.HTML)
	}
}

// TestOutlineExtraction verifies heading collection with levels, order,
// and anchor IDs.
func TestOutlineExtraction(t *testing.T) {
	p := ForArticles()
	res, err := p.Run("# Intro\n\ntext\n\n## Details\n\nmore\n\n#### Too Deep\n\n### Fine")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []struct {
		level int
		text  string
	}{
		{1, "Intro"},
		{2, "Details"},
		{3, "Fine"},
	}
	if len(res.Outline) != len(want) {
		t.Fatalf("outline length: got %d, want %d (%+v)", len(res.Outline), len(want), res.Outline)
	}
	for i, w := range want {
		if res.Outline[i].Level != w.level || res.Outline[i].Text != w.text {
			t.Errorf("outline[%d]: got level %d text %q, want level %d text %q",
				i, res.Outline[i].Level, res.Outline[i].Text, w.level, w.text)
		}
		if res.Outline[i].ID == "" {
			t.Errorf("outline[%d]: missing anchor id", i)
		}
	}
}

// TestSummaryShortBodyUnchanged verifies that bodies under the limit are
// returned whole, stripped of markup.
func TestSummaryShortBodyUnchanged(t *testing.T) {
	got := summarize("Some **bold** and a [link](https://example.com).", 200)
	want := "Some bold and a link."
	if got != want {
		t.Errorf("summary: got %q, want %q", got, want)
	}
}

// TestSummaryPrefersSentenceBoundary verifies the cut lands on a sentence
// end inside the tolerance window instead of mid-word.
func TestSummaryPrefersSentenceBoundary(t *testing.T) {
	first := strings.Repeat("a", 150) + ". "
	body := first + strings.Repeat("b", 300)
	got := summarize(body, 200)

	if !strings.HasSuffix(got, ".") {
		t.Errorf("expected sentence-boundary cut, got %q...", got[len(got)-10:])
	}
	if strings.Contains(got, "b") {
		t.Errorf("summary leaked past the boundary: %q", got)
	}
}

// TestSummaryFallsBackToEllipsis verifies hard truncation when no sentence
// boundary exists within the tolerance window.
func TestSummaryFallsBackToEllipsis(t *testing.T) {
	body := strings.Repeat("word ", 100) // no sentence enders at all
	got := summarize(body, 200)

	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis fallback, got %q", got)
	}
	if len([]rune(got)) > 201 {
		t.Errorf("summary too long: %d runes", len([]rune(got)))
	}
}

// TestMaskTerms verifies case-insensitive whole-word masking and that the
// comment pipeline applies it before rendering.
func TestMaskTerms(t *testing.T) {
	mask := MaskTerms([]string{"spam", "casino"})
	res, err := mask(Result{Body: "Buy SPAM at the casino, not spammy things."})
	if err != nil {
		t.Fatalf("mask: %v", err)
	}
	want := "Buy **** at the ******, not spammy things."
	if res.Body != want {
		t.Errorf("masked body: got %q, want %q", res.Body, want)
	}
}

// TestCommentPipelineMasksAndRenders runs the full comment chain.
func TestCommentPipelineMasksAndRenders(t *testing.T) {
	p := ForComments([]string{"viagra"})
	res, err := p.Run("Totally *legit* Viagra offer")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if strings.Contains(strings.ToLower(res.HTML), "viagra") {
		t.Errorf("masked term leaked into HTML: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "<em>legit</em>") {
		t.Errorf("markdown not rendered: %q", res.HTML)
	}
}

// TestMaskEmptyVocabulary verifies the pass-through behaviour.
func TestMaskEmptyVocabulary(t *testing.T) {
	mask := MaskTerms(nil)
	res, err := mask(Result{Body: "unchanged"})
	if err != nil {
		t.Fatalf("mask: %v", err)
	}
	if res.Body != "unchanged" {
		t.Errorf("body: got %q, want %q", res.Body, "unchanged")
	}
}
