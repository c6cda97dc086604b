package listing

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	values []string
}

func (r *recorder) record(v string) func() {
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.values = append(r.values, v)
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}

func TestDebounceCoalescesRapidInput(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	rec := &recorder{}

	// Keystrokes arrive well inside the quiet window.
	for _, v := range []string{"r", "ro", "ros", "rosa"} {
		d.Trigger(rec.record(v))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"rosa"}, rec.snapshot())
}

func TestDebounceFiresPerEventWhenSpacedOut(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	rec := &recorder{}

	d.Trigger(rec.record("first"))
	time.Sleep(40 * time.Millisecond)
	d.Trigger(rec.record("second"))
	time.Sleep(40 * time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebounceStopCancelsPending(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	rec := &recorder{}

	d.Trigger(rec.record("never"))
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	assert.Empty(t, rec.snapshot())
}
