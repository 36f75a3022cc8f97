package docgraph

import "fmt"

// AnalysisPrompt returns step-by-step instructions for an LLM agent that
// wants to learn a framework from its documentation. The agent is expected
// to have access to the crawl and extend operations.
func AnalysisPrompt(framework, baseURL string) string {
	return fmt.Sprintf(`Analyze the %[1]s framework using its documentation at %[2]s.

Follow these steps:

1. Fetch the documentation root at %[2]s in links mode to see how the
   site is organized, and pick the sections that cover core concepts,
   guides, and API reference material.

2. Build a knowledge graph for %[1]s rooted at %[2]s. Use depth 2 and
   narrow the traversal with link patterns matching the sections you
   selected, so the page budget is spent on substantive pages.

3. Study the graph:
   - Read the concepts of the shallowest nodes first; they describe the
     framework's mental model.
   - Use the api_surface entries to inventory the public API and the
     code_samples to see idiomatic usage.
   - Follow the relationships to understand which pages explain the
     prerequisites of which others.
   - Note the dependencies field to learn what the framework itself
     builds on.

4. Summarize: the framework's purpose, its core abstractions, the
   essential API calls with their signatures, and a minimal working
   example assembled from the code samples.`, framework, baseURL)
}
