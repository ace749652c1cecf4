// internal/domain/cart/writer_test.go
package cart

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSaver struct {
	mu     sync.Mutex
	writes []Items
	done   chan struct{}
}

func newCountingSaver() *countingSaver {
	return &countingSaver{done: make(chan struct{}, 16)}
}

func (c *countingSaver) save(ctx context.Context, items Items) error {
	c.mu.Lock()
	c.writes = append(c.writes, items.Clone())
	c.mu.Unlock()
	c.done <- struct{}{}
	return nil
}

func (c *countingSaver) writeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.writes)
}

func (c *countingSaver) lastWrite() Items {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.writes) == 0 {
		return nil
	}
	return c.writes[len(c.writes)-1]
}

func TestWriterCoalescesRapidMutations(t *testing.T) {
	saver := newCountingSaver()
	w := NewWriter(30*time.Millisecond, saver.save, testLogger())
	defer w.Stop()

	// N rapid schedules within one window -> exactly one write holding the
	// final coalesced state.
	for i := 1; i <= 10; i++ {
		w.Schedule(Items{"p1": i})
	}

	select {
	case <-saver.done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced write never fired")
	}

	assert.Equal(t, 1, saver.writeCount())
	assert.Equal(t, Items{"p1": 10}, saver.lastWrite())
}

func TestWriterFiresAgainAfterQuiescence(t *testing.T) {
	saver := newCountingSaver()
	w := NewWriter(20*time.Millisecond, saver.save, testLogger())
	defer w.Stop()

	w.Schedule(Items{"a": 1})
	<-saver.done
	w.Schedule(Items{"a": 2})
	<-saver.done

	assert.Equal(t, 2, saver.writeCount())
	assert.Equal(t, Items{"a": 2}, saver.lastWrite())
}

func TestWriterFlushWritesImmediately(t *testing.T) {
	saver := newCountingSaver()
	w := NewWriter(time.Hour, saver.save, testLogger())
	defer w.Stop()

	w.Schedule(Items{"p": 3})
	require.NoError(t, w.Flush(context.Background()))

	assert.Equal(t, 1, saver.writeCount())
	assert.Equal(t, Items{"p": 3}, saver.lastWrite())

	// Nothing pending anymore; a second flush is a no-op.
	require.NoError(t, w.Flush(context.Background()))
	assert.Equal(t, 1, saver.writeCount())
}

func TestWriterStopCancelsPendingWrite(t *testing.T) {
	saver := newCountingSaver()
	w := NewWriter(20*time.Millisecond, saver.save, testLogger())

	w.Schedule(Items{"p": 1})
	w.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, saver.writeCount())
}
