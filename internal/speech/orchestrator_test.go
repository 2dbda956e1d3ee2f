package speech

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/let-userName-Brian/language-learner-sub000/internal/audiocache"
	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

type fakeProvider struct {
	calls   atomic.Int64
	block   chan struct{} // when non-nil, Synthesize waits until closed
	err     error
	lastReq SynthesisRequest
	mu      sync.Mutex
}

func (f *fakeProvider) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.lastReq = req
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &SynthesisResult{Audio: []byte("mp3-bytes"), ContentType: "audio/mpeg"}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

type fakeStore struct {
	mu         sync.Mutex
	assets     map[string]*models.AudioAsset
	blobs      map[string][]byte
	lookups    int
	failInsert bool
	failLookup error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		assets: make(map[string]*models.AudioAsset),
		blobs:  make(map[string][]byte),
	}
}

func (f *fakeStore) Lookup(ctx context.Context, fp string) (*models.AudioAsset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.failLookup != nil {
		return nil, f.failLookup
	}
	if a, ok := f.assets[fp]; ok {
		return a, nil
	}
	return nil, audiocache.ErrNotFound
}

func (f *fakeStore) PutBlob(ctx context.Context, fp string, audio []byte, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := "audio/" + fp + ".mp3"
	f.blobs[path] = audio
	return path, nil
}

func (f *fakeStore) Insert(ctx context.Context, asset *models.AudioAsset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert {
		return errors.New("db down")
	}
	if _, ok := f.assets[asset.Fingerprint]; !ok {
		f.assets[asset.Fingerprint] = asset
	}
	return nil
}

func (f *fakeStore) PublicURL(path string) string {
	return "https://cdn.test/" + path
}

type recordingPropagator struct {
	mu   sync.Mutex
	urls []string
}

func (r *recordingPropagator) Enqueue(itemID uuid.UUID, d models.Dialect, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, url)
}

func testProfiles() map[models.Dialect]VoiceProfile {
	return map[models.Dialect]VoiceProfile{
		models.DialectClassical:      {VoiceID: "voice-classical"},
		models.DialectEcclesiastical: {VoiceID: "voice-eccl"},
	}
}

func TestGetOrSynthesizeColdThenWarm(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	provider := &fakeProvider{}
	o := NewOrchestrator(store, provider, nil, testProfiles())

	req := models.SpeechRequest{Text: "Puella amat.", Dialect: "classical"}

	cold, err := o.GetOrSynthesize(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, cold.Cached)
	assert.Contains(t, cold.URL, "https://cdn.test/audio/")
	assert.Positive(t, cold.DurationMs)
	assert.EqualValues(t, 1, provider.calls.Load())

	warm, err := o.GetOrSynthesize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, warm.Cached)
	assert.Equal(t, cold.URL, warm.URL)
	assert.EqualValues(t, 1, provider.calls.Load(), "warm request must not hit the provider")
}

func TestGetOrSynthesizeNormalizationCollapsesVariants(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	provider := &fakeProvider{}
	o := NewOrchestrator(store, provider, nil, testProfiles())

	a, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "Puella  amat!", Dialect: "classical"})
	require.NoError(t, err)
	b, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "puella amat", Dialect: "classical"})
	require.NoError(t, err)

	assert.Equal(t, a.URL, b.URL)
	assert.True(t, b.Cached)
	assert.EqualValues(t, 1, provider.calls.Load())
}

func TestGetOrSynthesizeSingleFlight(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	provider := &fakeProvider{block: make(chan struct{})}
	o := NewOrchestrator(store, provider, nil, testProfiles())

	req := models.SpeechRequest{Text: "lingua latina", Dialect: "classical"}

	const callers = 5
	results := make([]*Result, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = o.GetOrSynthesize(context.Background(), req)
		}(i)
	}

	// Let every caller join the in-flight synthesis before it completes.
	time.Sleep(50 * time.Millisecond)
	close(provider.block)
	wg.Wait()

	assert.EqualValues(t, 1, provider.calls.Load(), "concurrent identical requests must share one synthesis")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0].URL, results[i].URL)
	}
}

func TestGetOrSynthesizeDistinctDialects(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	provider := &fakeProvider{}
	o := NewOrchestrator(store, provider, nil, testProfiles())

	cl, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "caelum", Dialect: "classical"})
	require.NoError(t, err)
	ec, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "caelum", Dialect: "ecclesiastical"})
	require.NoError(t, err)

	assert.NotEqual(t, cl.URL, ec.URL)
	assert.EqualValues(t, 2, provider.calls.Load())
}

func TestGetOrSynthesizeValidation(t *testing.T) {
	t.Parallel()

	o := NewOrchestrator(newFakeStore(), &fakeProvider{}, nil, testProfiles())

	_, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "   ", Dialect: "classical"})
	assert.ErrorIs(t, err, ErrTextRequired)

	_, err = o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "salve"})
	assert.ErrorIs(t, err, ErrDialectRequired)

	_, err = o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "salve", Dialect: "medieval"})
	assert.Error(t, err)

	_, err = o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "123 !!!", Dialect: "classical"})
	assert.ErrorIs(t, err, ErrTextRequired, "text with no letters normalizes to empty")
}

func TestGetOrSynthesizeProviderFailure(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{err: errors.New("upstream 500")}
	o := NewOrchestrator(newFakeStore(), provider, nil, testProfiles())

	_, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "salve", Dialect: "classical"})
	require.Error(t, err)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "fake", perr.Provider)
}

func TestGetOrSynthesizeInsertFailureDegrades(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failInsert = true
	provider := &fakeProvider{}
	o := NewOrchestrator(store, provider, nil, testProfiles())

	req := models.SpeechRequest{Text: "salve", Dialect: "classical"}

	res, err := o.GetOrSynthesize(context.Background(), req)
	require.NoError(t, err, "metadata insert failure must not fail the request")
	assert.False(t, res.Cached)
	assert.NotEmpty(t, res.URL)

	// Nothing was cached, so the next identical request synthesizes again.
	_, err = o.GetOrSynthesize(context.Background(), req)
	require.NoError(t, err)
	assert.EqualValues(t, 2, provider.calls.Load())
}

func TestGetOrSynthesizeLookupFailureDegrades(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failLookup = errors.New("redis down")
	provider := &fakeProvider{}
	o := NewOrchestrator(store, provider, nil, testProfiles())

	res, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "salve", Dialect: "classical"})
	require.NoError(t, err, "unreachable cache degrades to synthesis")
	assert.False(t, res.Cached)
	assert.EqualValues(t, 1, provider.calls.Load())
}

func TestGetOrSynthesizePropagatesReference(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	prop := &recordingPropagator{}
	o := NewOrchestrator(store, &fakeProvider{}, prop, testProfiles())

	itemID := uuid.NewString()
	req := models.SpeechRequest{ItemID: itemID, Text: "puella", Dialect: "classical"}

	cold, err := o.GetOrSynthesize(context.Background(), req)
	require.NoError(t, err)
	warm, err := o.GetOrSynthesize(context.Background(), req)
	require.NoError(t, err)

	prop.mu.Lock()
	defer prop.mu.Unlock()
	require.Len(t, prop.urls, 2, "both miss and hit paths propagate the reference")
	assert.Equal(t, cold.URL, prop.urls[0])
	assert.Equal(t, warm.URL, prop.urls[1])
}

func TestGetOrSynthesizeIgnoresBadItemID(t *testing.T) {
	t.Parallel()

	prop := &recordingPropagator{}
	o := NewOrchestrator(newFakeStore(), &fakeProvider{}, prop, testProfiles())

	_, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{ItemID: "not-a-uuid", Text: "puella", Dialect: "classical"})
	require.NoError(t, err)

	prop.mu.Lock()
	defer prop.mu.Unlock()
	assert.Empty(t, prop.urls)
}

func TestGetOrSynthesizePassesIPATranscript(t *testing.T) {
	t.Parallel()

	provider := &fakeProvider{}
	o := NewOrchestrator(newFakeStore(), provider, nil, testProfiles())

	_, err := o.GetOrSynthesize(context.Background(), models.SpeechRequest{Text: "cena", Dialect: "ecclesiastical"})
	require.NoError(t, err)

	provider.mu.Lock()
	defer provider.mu.Unlock()
	assert.Equal(t, "cena", provider.lastReq.Text)
	assert.Equal(t, "ˈtʃena", provider.lastReq.Transcript)
	assert.Equal(t, "voice-eccl", provider.lastReq.Voice.VoiceID)
}

func TestKindFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, models.KindWord, kindFor("", "puella"))
	assert.Equal(t, models.KindSentence, kindFor("", "puella amat"))
	assert.Equal(t, models.KindWord, kindFor(models.KindWord, "puella amat"))
}

func TestEstimateDurationMs(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, 0, estimateDurationMs("", 1.0))
	assert.EqualValues(t, 400, estimateDurationMs("puella", 1.0))
	assert.EqualValues(t, 800, estimateDurationMs("puella amat", 1.0))
	assert.EqualValues(t, 1600, estimateDurationMs("puella amat", 0.5))
}
