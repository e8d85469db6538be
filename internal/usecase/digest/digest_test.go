package digest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"oryx-daily/internal/domain/entity"
)

type stubGenerator struct {
	body string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ []string, _ Options) (string, error) {
	return s.body, s.err
}

type panicGenerator struct{}

func (p *panicGenerator) Generate(_ context.Context, _ []string, _ Options) (string, error) {
	panic("nil map write")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPlaceholder_ListsEveryCountry(t *testing.T) {
	countries := []string{"Benin", "Morocco", "Côte d’Ivoire"}

	body, err := NewPlaceholder().Generate(context.Background(), countries, DefaultOptions())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if body == "" {
		t.Fatal("placeholder body must be non-empty")
	}
	for _, c := range countries {
		if !strings.Contains(body, c) {
			t.Errorf("placeholder body missing country %q", c)
		}
	}
	if !strings.Contains(body, "placeholder") {
		t.Error("placeholder body should be marked as placeholder content")
	}
	if !strings.Contains(body, "past 24h") {
		t.Errorf("placeholder header should embed the window, got %q", body)
	}
}

func TestPlaceholder_Deterministic(t *testing.T) {
	countries := []string{"Austria", "Malta"}
	a, _ := NewPlaceholder().Generate(context.Background(), countries, DefaultOptions())
	b, _ := NewPlaceholder().Generate(context.Background(), countries, DefaultOptions())
	if a != b {
		t.Error("placeholder output must be deterministic for identical inputs")
	}
}

func TestResolve_PrefersFirstConstructible(t *testing.T) {
	candidates := []Candidate{
		{
			Name:   "gnews",
			Source: entity.DigestSourcePrimary,
			New:    func() (Generator, error) { return nil, errors.New("network disabled") },
		},
		{
			Name:   "curated",
			Source: entity.DigestSourcePrimary,
			New:    func() (Generator, error) { return &stubGenerator{body: "curated body"}, nil },
		},
	}

	binding := Resolve(discardLogger(), candidates)
	if binding.Name != "curated" {
		t.Fatalf("bound generator = %q, want curated", binding.Name)
	}

	result, err := binding.Digest(context.Background(), []string{"Ghana"}, DefaultOptions())
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if result.Source != entity.DigestSourcePrimary || result.Body != "curated body" {
		t.Errorf("Digest() = %+v, want primary curated body", result)
	}
}

func TestResolve_FallsBackToPlaceholder(t *testing.T) {
	candidates := []Candidate{
		{
			Name:   "gnews",
			Source: entity.DigestSourcePrimary,
			New:    func() (Generator, error) { return nil, errors.New("unavailable") },
		},
	}

	binding := Resolve(discardLogger(), candidates)
	if binding.Name != "placeholder" {
		t.Fatalf("bound generator = %q, want placeholder", binding.Name)
	}

	result, err := binding.Digest(context.Background(), []string{"Serbia"}, DefaultOptions())
	if err != nil {
		t.Fatalf("Digest() error = %v", err)
	}
	if result.Source != entity.DigestSourceFallback {
		t.Errorf("Source = %q, want fallback", result.Source)
	}
	if !strings.Contains(result.Body, "Serbia") {
		t.Errorf("fallback body missing country, got %q", result.Body)
	}
}

func TestResolve_NoCandidates(t *testing.T) {
	binding := Resolve(discardLogger(), nil)
	if binding.Name != "placeholder" || binding.Source != entity.DigestSourceFallback {
		t.Errorf("Resolve(nil) = %+v, want placeholder fallback", binding)
	}
}

func TestBinding_GenerationErrorIsReturned(t *testing.T) {
	wantErr := errors.New("feed timeout")
	binding := NewBinding("gnews", entity.DigestSourcePrimary, &stubGenerator{err: wantErr})

	_, err := binding.Digest(context.Background(), []string{"Tunisia"}, DefaultOptions())
	if !errors.Is(err, wantErr) {
		t.Errorf("Digest() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestBinding_RecoversPanic(t *testing.T) {
	binding := NewBinding("broken", entity.DigestSourcePrimary, &panicGenerator{})

	_, err := binding.Digest(context.Background(), []string{"Jordan"}, DefaultOptions())
	if err == nil {
		t.Fatal("expected panic to surface as error")
	}
	if !strings.Contains(err.Error(), "panicked") {
		t.Errorf("error = %v, want panic detail", err)
	}
}
