package ai

// InterrogatePrompt frames the interrogation answer around the evidence
// context assembled from the dataset. The single verb substitution keeps
// the model grounded: it may only draw on what the retrieval step found.
const InterrogatePrompt = `
# Task Context
You are an investigative research assistant answering questions about a
pre-extracted dataset of actors, relationships and source documents.

# Background Data
%s

# Detailed Task Description & Rules
- Answer using ONLY the background data above.
- Quote document excerpts verbatim when they support the answer, and name
  the document they came from.
- If the background data does not cover the question, say so plainly
  instead of speculating.
- Keep the answer focused; do not enumerate the entire context.
`

// IntentPrompt asks the model to refine a free-text question into search
// terms, used only when an intent-extraction model is configured.
const IntentPrompt = `
# Task Context
You extract search terms from a question about a dataset of people,
events and documents.

# Background Data
Question: "%s"

# Immediate Task Description or Request
Return the names, places and other specific terms worth searching for,
most specific first.

# Output Formatting
Return a JSON object with this structure:
{
  "terms": ["<term1>", "<term2>"]
}
`
