package items

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/let-userName-Brian/language-learner-sub000/internal/models"
)

type fakeMediaWriter struct {
	mu     sync.Mutex
	fields map[uuid.UUID]map[string]string
	err    error
	done   chan struct{}
}

func newFakeMediaWriter(expected int) *fakeMediaWriter {
	f := &fakeMediaWriter{
		fields: make(map[uuid.UUID]map[string]string),
		done:   make(chan struct{}, expected),
	}
	return f
}

func (f *fakeMediaWriter) SetMediaField(ctx context.Context, itemID uuid.UUID, key, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.done <- struct{}{} }()
	if f.err != nil {
		return f.err
	}
	if f.fields[itemID] == nil {
		f.fields[itemID] = make(map[string]string)
	}
	f.fields[itemID][key] = url
	return nil
}

func (f *fakeMediaWriter) wait(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for propagation")
		}
	}
}

func TestPropagatorWritesPerDialectKeys(t *testing.T) {
	t.Parallel()

	writer := newFakeMediaWriter(2)
	p := NewPropagator(writer)

	id := uuid.New()
	p.Enqueue(id, models.DialectClassical, "https://cdn.test/a.mp3")
	p.Enqueue(id, models.DialectEcclesiastical, "https://cdn.test/b.mp3")
	writer.wait(t, 2)

	writer.mu.Lock()
	defer writer.mu.Unlock()
	require.Contains(t, writer.fields, id)
	assert.Equal(t, "https://cdn.test/a.mp3", writer.fields[id]["classical"])
	assert.Equal(t, "https://cdn.test/b.mp3", writer.fields[id]["ecclesiastical"])
}

func TestPropagatorSwallowsWriteFailure(t *testing.T) {
	t.Parallel()

	writer := newFakeMediaWriter(1)
	writer.err = errors.New("item gone")
	p := NewPropagator(writer)

	// Must not panic or block the caller.
	p.Enqueue(uuid.New(), models.DialectClassical, "https://cdn.test/a.mp3")
	writer.wait(t, 1)
}
