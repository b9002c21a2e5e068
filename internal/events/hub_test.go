package events

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_NotifiesEverySubscriberOnce(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	var first, second [][]byte
	unsubA := hub.Subscribe("erudite-liked-posts", func(_ string, v []byte) { first = append(first, v) })
	defer unsubA()
	unsubB := hub.Subscribe("erudite-liked-posts", func(_ string, v []byte) { second = append(second, v) })
	defer unsubB()

	hub.Notify("erudite-liked-posts", []byte(`["p1"]`))

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.JSONEq(t, `["p1"]`, string(first[0]))
	assert.JSONEq(t, `["p1"]`, string(second[0]))
}

func TestHub_OnlyMatchingKey(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	calls := 0
	defer hub.Subscribe("erudite-profile", func(string, []byte) { calls++ })()

	hub.Notify("erudite-teach-skills", []byte(`[]`))
	assert.Equal(t, 0, calls)
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	calls := 0
	unsub := hub.Subscribe("k", func(string, []byte) { calls++ })
	unsub()
	unsub()

	hub.Notify("k", []byte(`1`))
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, hub.ListenerCount("k"))
}

func TestHub_ListenerMayUnsubscribeDuringNotify(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	calls := 0
	var unsub func()
	unsub = hub.Subscribe("k", func(string, []byte) {
		calls++
		unsub()
	})

	hub.Notify("k", []byte(`1`))
	hub.Notify("k", []byte(`2`))
	assert.Equal(t, 1, calls)
}

func TestHub_ListenerMayNotifyReentrantly(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	var derived []string
	defer hub.Subscribe("source", func(_ string, v []byte) {
		hub.Notify("derived", v)
	})()
	defer hub.Subscribe("derived", func(_ string, v []byte) {
		derived = append(derived, string(v))
	})()

	hub.Notify("source", []byte(`"x"`))
	assert.Equal(t, []string{`"x"`}, derived)
}

func TestHub_ListenersGetIndependentCopies(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	var seen []byte
	defer hub.Subscribe("k", func(_ string, v []byte) { v[0] = 'X' })()
	defer hub.Subscribe("k", func(_ string, v []byte) { seen = v })()

	raw := []byte(`[1]`)
	hub.Notify("k", raw)
	assert.Equal(t, `[1]`, string(raw))
	assert.Equal(t, byte('['), seen[0])
}

func TestHub_StreamReceivesMatchingKeys(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	sub := hub.Stream("s1", "erudite-profile")
	defer hub.Unstream("s1")

	hub.Notify("erudite-teach-skills", []byte(`[]`))
	hub.Notify("erudite-profile", []byte(`{"name":"Ada"}`))

	select {
	case ev := <-sub.Events:
		assert.Equal(t, "erudite-profile", ev.Key)
		assert.JSONEq(t, `{"name":"Ada"}`, string(ev.Value))
	default:
		t.Fatal("expected a buffered event")
	}
	assert.Len(t, sub.Events, 0)
}

func TestHub_StreamRemovalIsNull(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	sub := hub.Stream("s1")
	defer hub.Unstream("s1")

	hub.Notify("k", nil)
	ev := <-sub.Events
	assert.Equal(t, "null", string(ev.Value))
}

func TestHub_CloseClosesStreams(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	sub := hub.Stream("s1")
	hub.Close()

	_, ok := <-sub.Events
	assert.False(t, ok)
	<-sub.Done
}

func TestEvent_Format(t *testing.T) {
	t.Parallel()

	ev := &Event{Key: "k", Value: []byte(`[1]`)}
	out := ev.Format()
	assert.True(t, strings.HasPrefix(out, "event: change\ndata: "))
	assert.Contains(t, out, `"key":"k"`)
	assert.True(t, strings.HasSuffix(out, "\n\n"))
}
