package analysis

import "fmt"

// DefaultSystemPrompt frames the model as a search-intent analyst. Operators
// can replace it wholesale via configuration.
const DefaultSystemPrompt = "You are a search-intent analysis expert. You study search keywords, SERP landscapes and audience behavior, and you produce sharp, actionable intent reports grounded in the reference material you are given."

const userPromptTemplate = `Analyze the search intent behind the keyword: "%s"

Reference material gathered from live search results:
%s

Write a structured report with exactly these five sections:

1. Intent Core
   What the searcher fundamentally wants; classify the dominant intent (informational, navigational, transactional, commercial investigation) and any secondary intents.

2. SERP Feature Analysis
   Which content formats and SERP features dominate for this keyword, and what that implies about how the engine interprets the intent.

3. Audience Profile
   Who is searching, their expertise level, their situation, and the stage of their journey.

4. Competitive Landscape
   What the ranking pages have in common, where they are strong, and where they are thin.

5. Differentiation Opportunity
   The concrete angle a new page could take to serve the intent better than what already ranks.

Ground every claim in the reference material where possible, and say so explicitly when you are reasoning from general knowledge instead.`

// BuildPrompt combines the keyword and assembled search context into the
// fixed-structure analysis prompt. Pure function, no side effects.
func BuildPrompt(keyword, searchContext, systemOverride string) Prompt {
	system := DefaultSystemPrompt
	if systemOverride != "" {
		system = systemOverride
	}
	return Prompt{
		System: system,
		User:   fmt.Sprintf(userPromptTemplate, keyword, searchContext),
	}
}
