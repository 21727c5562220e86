package extract

import (
	"context"
	"testing"

	"jobtrail/internal/llm/processors"
	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
)

func newTestExtractor() *Extractor {
	return &Extractor{
		cache:   NewMemoryCache(),
		cleaner: processors.NewEmailCleaner(),
		logger:  logging.GetGlobalLogger(),
	}
}

func testEmail() *models.EmailMessage {
	return &models.EmailMessage{
		ID:      "msg-1",
		Subject: "Your application was sent to Acme Corp",
		Snippet: "Thanks for applying",
	}
}

func TestExtractFallsBackWithoutOracle(t *testing.T) {
	e := newTestExtractor()

	job := e.Extract(context.Background(), testEmail())

	if job.Company != "Acme Corp" {
		t.Errorf("company = %q, want Acme Corp", job.Company)
	}
	if job.Location != models.DefaultLocation {
		t.Errorf("location = %q, want default", job.Location)
	}
}

func TestExtractCachedReturnsCachedResult(t *testing.T) {
	e := newTestExtractor()
	ctx := context.Background()
	email := testEmail()

	first := e.ExtractCached(ctx, email, false)

	// Poison the cache entry to prove the second call reads it
	key := cacheKey(email.Subject, email.Snippet)
	cached, ok := e.cache.Get(ctx, key)
	if !ok {
		t.Fatal("expected result to be cached after first extraction")
	}
	cached.Company = "Cached Company"

	second := e.ExtractCached(ctx, email, false)
	if second.Company != "Cached Company" {
		t.Errorf("company = %q, want cached value", second.Company)
	}
	_ = first
}

func TestExtractCachedForceBypassesCache(t *testing.T) {
	e := newTestExtractor()
	ctx := context.Background()
	email := testEmail()

	e.ExtractCached(ctx, email, false)

	key := cacheKey(email.Subject, email.Snippet)
	cached, _ := e.cache.Get(ctx, key)
	cached.Company = "Stale Company"

	job := e.ExtractCached(ctx, email, true)
	if job.Company != "Acme Corp" {
		t.Errorf("company = %q, want fresh extraction", job.Company)
	}
}

func TestClearCache(t *testing.T) {
	e := newTestExtractor()
	ctx := context.Background()
	email := testEmail()

	e.ExtractCached(ctx, email, false)

	if err := e.ClearCache(ctx); err != nil {
		t.Fatalf("ClearCache() error: %v", err)
	}

	key := cacheKey(email.Subject, email.Snippet)
	if _, ok := e.cache.Get(ctx, key); ok {
		t.Error("cache entry survived ClearCache")
	}
}

func TestCacheKeyTruncatesSnippet(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	key := cacheKey("subject", string(long))
	want := "subject::" + string(long[:100])
	if key != want {
		t.Errorf("cacheKey length = %d, want %d", len(key), len(want))
	}
}

func TestCacheKeyStableAcrossBodyChanges(t *testing.T) {
	a := cacheKey("Application sent", "snippet text")
	b := cacheKey("Application sent", "snippet text")
	if a != b {
		t.Errorf("keys differ for identical inputs: %q vs %q", a, b)
	}
}
