package analysis_test

import (
	"strings"
	"testing"

	"github.com/brandnewmax/searchintentanalyze/internal/domain/analysis"
)

func TestBuildPrompt_ContainsMandatedSections(t *testing.T) {
	prompt := analysis.BuildPrompt("best running shoes", "some context", "")

	if prompt.System != analysis.DefaultSystemPrompt {
		t.Errorf("expected default system prompt, got %q", prompt.System)
	}
	if !strings.Contains(prompt.User, `"best running shoes"`) {
		t.Error("keyword missing from user prompt")
	}
	if !strings.Contains(prompt.User, "some context") {
		t.Error("search context missing from user prompt")
	}

	for _, section := range []string{
		"Intent Core",
		"SERP Feature Analysis",
		"Audience Profile",
		"Competitive Landscape",
		"Differentiation Opportunity",
	} {
		if !strings.Contains(prompt.User, section) {
			t.Errorf("mandated section %q missing from user prompt", section)
		}
	}
}

func TestBuildPrompt_SystemOverride(t *testing.T) {
	prompt := analysis.BuildPrompt("kw", "ctx", "You are a pirate analyst.")

	if prompt.System != "You are a pirate analyst." {
		t.Errorf("system override not applied, got %q", prompt.System)
	}
}
