package verify

import (
	"context"
	"testing"
)

func TestScoreDeterministic(t *testing.T) {
	in := Input{Title: "Overflowing bins", Description: "plastic bags everywhere", WasteType: "plastic"}
	a := Score(in)
	b := Score(in)
	if a != b {
		t.Fatalf("score must be deterministic: %+v vs %+v", a, b)
	}
	if a.Confidence < 40 || a.Confidence > 100 {
		t.Fatalf("confidence out of range: %d", a.Confidence)
	}
	if a.Verified != (a.Confidence >= 55) {
		t.Fatalf("verified flag inconsistent with confidence: %+v", a)
	}
}

func TestScoreImageBoost(t *testing.T) {
	base := Input{Title: "dump", Description: "site", WasteType: "mixed"}
	withImage := base
	withImage.Image = "data:image/jpeg;base64,AAAA"

	plain := Score(base)
	boosted := Score(withImage)
	if boosted.Confidence < plain.Confidence {
		t.Fatalf("image must not lower confidence: %d < %d", boosted.Confidence, plain.Confidence)
	}
	if boosted.Confidence > 100 {
		t.Fatalf("confidence must cap at 100, got %d", boosted.Confidence)
	}
}

func TestScoreFloor(t *testing.T) {
	// empty text hashes to zero; the floor must lift it to 40
	got := Score(Input{})
	if got.Confidence != 40 {
		t.Fatalf("expected floor of 40, got %d", got.Confidence)
	}
	if got.Verified {
		t.Fatal("floored score must not verify")
	}
}

func TestVerifyHonorsCancellation(t *testing.T) {
	h := NewHeuristic() // default delay
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Verify(ctx, Input{Title: "x"}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestVerifyZeroDelay(t *testing.T) {
	h := NewHeuristic(WithDelay(0))
	res, err := h.Verify(context.Background(), Input{Title: "garbage pile", Description: "by the road", WasteType: "organic"})
	if err != nil {
		t.Fatal(err)
	}
	if res != Score(Input{Title: "garbage pile", Description: "by the road", WasteType: "organic"}) {
		t.Fatal("Verify must agree with Score")
	}
}
