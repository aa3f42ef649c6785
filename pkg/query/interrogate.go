package query

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/parallax-vis/parallax/internal/util"
	"github.com/parallax-vis/parallax/pkg/ai"
	"github.com/parallax-vis/parallax/pkg/common"
	"github.com/parallax-vis/parallax/pkg/logger"
	"github.com/parallax-vis/parallax/pkg/store"
)

// MaxParallelSearches caps the deep-search fan-out per question.
const MaxParallelSearches = 5

// chatTries bounds retries against the chat backend before giving up and
// returning the fallback.
const chatTries = 2

// FallbackAnswer is the fixed user-visible reply when the language model
// is unreachable or returns nothing. A UX contract, not an error path.
const FallbackAnswer = "No comment. The assistant could not be reached; the dataset views remain fully usable."

// InterrogateClient answers free-text questions by retrieving matching
// records from the dataset and forwarding them as evidence context to the
// external language model.
type InterrogateClient struct {
	storage  store.DatasetStorage
	aiClient ai.ChatClient

	useIntentExtraction bool
}

// NewInterrogateClientParams contains the collaborators of a new client.
type NewInterrogateClientParams struct {
	Storage  store.DatasetStorage
	AIClient ai.ChatClient

	// UseIntentExtraction enables an extra structured-output model call
	// that refines the question into search terms before the regex
	// extraction results.
	UseIntentExtraction bool
}

// NewInterrogateClient creates an interrogation client.
func NewInterrogateClient(params NewInterrogateClientParams) *InterrogateClient {
	return &InterrogateClient{
		storage:             params.Storage,
		aiClient:            params.AIClient,
		useIntentExtraction: params.UseIntentExtraction,
	}
}

// Ask answers a question against the loaded relationship set. Search
// failures for individual terms are logged and dropped; a language-model
// failure yields FallbackAnswer. Ask never returns an error to the
// caller; every failure mode has a defined user-visible fallback.
func (c *InterrogateClient) Ask(ctx context.Context, question string, rels []common.Relationship) string {
	terms := ExtractTerms(question)
	if c.useIntentExtraction {
		terms = c.refineTerms(ctx, question, terms)
	}
	if len(terms) > MaxParallelSearches {
		terms = terms[:MaxParallelSearches]
	}

	// Every lookup must finish (or fail) before merging: the first-seen
	// dedup depends on issue order, not completion order.
	results := make([]common.SearchResult, len(terms))
	eg, gCtx := errgroup.WithContext(ctx)
	for i, term := range terms {
		eg.Go(func() error {
			res, err := c.storage.DeepSearch(gCtx, term, true)
			if err != nil {
				logger.Warn("deep search failed, dropping term", "term", term, "err", err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	_ = eg.Wait()

	merged := MergeResults(results)
	evidence := BuildContext(merged, rels)

	systemPrompt := fmt.Sprintf(ai.InterrogatePrompt, evidence)
	answer, err := util.RetryWithContext(ctx, chatTries, func(ctx context.Context) (string, error) {
		return c.aiClient.GenerateChat(
			ctx,
			[]ai.ChatMessage{{Role: "user", Message: question}},
			ai.WithSystemPrompts(systemPrompt),
		)
	})
	if err != nil || answer == "" {
		logger.Warn("language model unavailable, returning fallback", "err", err)
		return FallbackAnswer
	}
	return answer
}

// refineTerms asks the model for additional search terms. Extraction
// failures fall back to the regex terms alone.
func (c *InterrogateClient) refineTerms(ctx context.Context, question string, terms []string) []string {
	var out struct {
		Terms []string `json:"terms"`
	}
	err := c.aiClient.GenerateCompletionWithFormat(
		ctx,
		"search_terms",
		"Search terms extracted from the question",
		fmt.Sprintf(ai.IntentPrompt, question),
		&out,
	)
	if err != nil {
		logger.Debug("intent extraction failed, keeping regex terms", "err", err)
		return terms
	}

	// Model terms lead, regex terms follow, without duplicates.
	seen := make(map[string]bool, len(out.Terms))
	refined := make([]string, 0, len(out.Terms)+len(terms))
	for _, t := range append(out.Terms, terms...) {
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		refined = append(refined, t)
	}
	return refined
}
