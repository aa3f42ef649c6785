package query

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/parallax-vis/parallax/pkg/ai"
	"github.com/parallax-vis/parallax/pkg/common"
)

type fakeStorage struct {
	mu        sync.Mutex
	searched  []string
	searchErr error
	results   map[string]common.SearchResult
}

func (s *fakeStorage) FetchRelationships(context.Context, common.FilterState) ([]common.Relationship, error) {
	return nil, nil
}

func (s *fakeStorage) SearchActors(context.Context, string) ([]common.Entity, error) {
	return nil, nil
}

func (s *fakeStorage) GetDocument(context.Context, int64) (common.Document, error) {
	return common.Document{}, nil
}

func (s *fakeStorage) GetDocumentText(context.Context, int64) (string, error) {
	return "", nil
}

func (s *fakeStorage) DeepSearch(_ context.Context, term string, _ bool) (common.SearchResult, error) {
	s.mu.Lock()
	s.searched = append(s.searched, term)
	s.mu.Unlock()
	if s.searchErr != nil {
		return common.SearchResult{}, s.searchErr
	}
	return s.results[term], nil
}

func (s *fakeStorage) ListTagClusters(context.Context) (map[int64]string, error) {
	return nil, nil
}

func (s *fakeStorage) ListCategories(context.Context) ([]string, error) {
	return nil, nil
}

type fakeChat struct {
	reply      string
	err        error
	lastSystem []string
	calls      int
}

func (c *fakeChat) GenerateCompletion(context.Context, string, ...ai.GenerateOption) (string, error) {
	return c.reply, c.err
}

func (c *fakeChat) GenerateChat(_ context.Context, _ []ai.ChatMessage, opts ...ai.GenerateOption) (string, error) {
	c.calls++
	var o ai.GenerateOptions
	for _, opt := range opts {
		opt(&o)
	}
	c.lastSystem = o.SystemPrompts
	return c.reply, c.err
}

func (c *fakeChat) GenerateCompletionWithFormat(context.Context, string, string, string, any, ...ai.GenerateOption) error {
	return errors.New("structured output unavailable")
}

func TestAskReturnsModelAnswer(t *testing.T) {
	storage := &fakeStorage{
		results: map[string]common.SearchResult{
			"flights": {Events: []common.EventHit{{ID: 1, Summary: "flight to the island"}}},
		},
	}
	chat := &fakeChat{reply: "The records show two flights."}
	client := NewInterrogateClient(NewInterrogateClientParams{Storage: storage, AIClient: chat})

	answer := client.Ask(context.Background(), "what about the flights", nil)
	if answer != "The records show two flights." {
		t.Errorf("answer = %q, want the model reply", answer)
	}
	if len(chat.lastSystem) != 1 || !strings.Contains(chat.lastSystem[0], "flight to the island") {
		t.Errorf("system prompt missing retrieved evidence: %v", chat.lastSystem)
	}
}

func TestAskModelFailureYieldsFallback(t *testing.T) {
	tests := []struct {
		name string
		chat *fakeChat
	}{
		{name: "transport error", chat: &fakeChat{err: errors.New("connection refused")}},
		{name: "empty reply", chat: &fakeChat{reply: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewInterrogateClient(NewInterrogateClientParams{
				Storage:  &fakeStorage{},
				AIClient: tt.chat,
			})
			answer := client.Ask(context.Background(), "what happened", nil)
			if answer != FallbackAnswer {
				t.Errorf("answer = %q, want the fixed fallback", answer)
			}
		})
	}
}

func TestAskSearchFailuresAreDropped(t *testing.T) {
	storage := &fakeStorage{searchErr: errors.New("db gone")}
	chat := &fakeChat{reply: "Nothing in the records."}
	client := NewInterrogateClient(NewInterrogateClientParams{Storage: storage, AIClient: chat})

	answer := client.Ask(context.Background(), "who visited the ranch", nil)
	if answer != "Nothing in the records." {
		t.Errorf("answer = %q; search failures must not block the reply", answer)
	}
	if chat.calls != 1 {
		t.Errorf("chat calls = %d, want 1", chat.calls)
	}
}

func TestAskCapsParallelSearches(t *testing.T) {
	storage := &fakeStorage{}
	chat := &fakeChat{reply: "ok"}
	client := NewInterrogateClient(NewInterrogateClientParams{Storage: storage, AIClient: chat})

	client.Ask(context.Background(), "alpha bravo charlie delta echoes foxtrot golfing hotels", nil)

	storage.mu.Lock()
	defer storage.mu.Unlock()
	if len(storage.searched) != MaxParallelSearches {
		t.Errorf("issued %d searches, want %d", len(storage.searched), MaxParallelSearches)
	}
}

func TestAskIntentExtractionFailureFallsBack(t *testing.T) {
	// The structured-output call always fails in the fake; the regex terms
	// must still drive the search.
	storage := &fakeStorage{}
	chat := &fakeChat{reply: "ok"}
	client := NewInterrogateClient(NewInterrogateClientParams{
		Storage:             storage,
		AIClient:            chat,
		UseIntentExtraction: true,
	})

	client.Ask(context.Background(), "payments to pilots", nil)

	storage.mu.Lock()
	defer storage.mu.Unlock()
	if len(storage.searched) != 2 {
		t.Errorf("searched %v, want the two regex terms", storage.searched)
	}
}
