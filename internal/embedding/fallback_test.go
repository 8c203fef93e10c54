package embedding

import (
	"context"
	"math"
	"testing"
)

func TestFallbackEmbed_Deterministic(t *testing.T) {
	p := NewFallbackProvider()
	a, err := p.Embed(context.Background(), "Plan the quarterly project review")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := p.Embed(context.Background(), "Plan the quarterly project review")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != FallbackDim || len(b) != FallbackDim {
		t.Fatalf("expected %d dims, got %d and %d", FallbackDim, len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("vectors differ at dim %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFallbackEmbed_UnitNorm(t *testing.T) {
	p := NewFallbackProvider()
	vec, err := p.Embed(context.Background(), "learn to play the guitar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	if math.Abs(norm-1.0) > 1e-3 {
		t.Errorf("expected unit norm, got %f", norm)
	}
}

func TestFallbackEmbed_BlankInput(t *testing.T) {
	p := NewFallbackProvider()
	vec, err := p.Embed(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vec != nil {
		t.Errorf("expected nil vector for blank input, got %d dims", len(vec))
	}
}

func TestFallbackEmbed_SignalWords(t *testing.T) {
	p := NewFallbackProvider()
	vec, err := p.Embed(context.Background(), "urgent work meeting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "work" is the first signal word, "meeting" the third, "urgent" the last
	for _, dim := range []int{1, 3, 9} {
		if vec[dim] <= 0 {
			t.Errorf("expected signal dim %d to be set", dim)
		}
	}

	plain, err := p.Embed(context.Background(), "zzz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i <= 9; i++ {
		if plain[i] != 0 {
			t.Errorf("expected signal dim %d to stay zero for neutral text", i)
		}
	}
}

func TestFallbackEmbed_DistinctTexts(t *testing.T) {
	p := NewFallbackProvider()
	a, _ := p.Embed(context.Background(), "morning jog in the park")
	b, _ := p.Embed(context.Background(), "quarterly budget meeting")
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Errorf("expected different texts to embed differently")
	}
}
