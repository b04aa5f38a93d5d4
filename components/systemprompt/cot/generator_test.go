package cot

import (
	"strings"
	"testing"
)

type stubProvider struct {
	title string
	info  string
}

func (p stubProvider) Title() string { return p.title }
func (p stubProvider) Info() string  { return p.info }

func TestGenerate(t *testing.T) {
	gen := New(
		WithBackground([]string{"- You are a flight specialist."}),
		WithSteps([]string{"- Read the findings."}),
		WithOutputInstructs([]string{"- Keep it short."}),
		WithContextProviders(stubProvider{title: "Weather Forecast", info: "- sunny all week"}),
	)
	prompt := gen.Generate()
	for _, want := range []string{
		"# IDENTITY and PURPOSE",
		"- You are a flight specialist.",
		"# INTERNAL ASSISTANT STEPS",
		"# OUTPUT INSTRUCTIONS",
		"- Keep it short.",
		"- Always respond using the proper JSON schema.",
		"# EXTRA INFORMATION AND CONTEXT",
		"## Weather Forecast",
		"- sunny all week",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGenerateSkipsEmptyProviders(t *testing.T) {
	gen := New(WithContextProviders(stubProvider{title: "Empty", info: ""}))
	prompt := gen.Generate()
	if strings.Contains(prompt, "## Empty") {
		t.Errorf("empty provider should be skipped:\n%s", prompt)
	}
}

func TestGenerateDefaultBackground(t *testing.T) {
	prompt := New().Generate()
	if !strings.Contains(prompt, "helpful and friendly AI assistant") {
		t.Errorf("expected default background:\n%s", prompt)
	}
}

func TestContextProviderRegistration(t *testing.T) {
	gen := New()
	gen.AddContextProviders(stubProvider{title: "A", info: "a"})
	if provider, err := gen.ContextProvider("A"); err != nil || provider.Info() != "a" {
		t.Fatalf("provider not registered: %v", err)
	}
	gen.RemoveContextProviders("A")
	if _, err := gen.ContextProvider("A"); err == nil {
		t.Fatal("provider should be gone after removal")
	}
}
