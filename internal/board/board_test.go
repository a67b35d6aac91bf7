// SPDX-License-Identifier: EPL-2.0

package board

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ik5/soundbind"
	"github.com/ik5/soundbind/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type handle struct {
	src string
	eng *fakeEngine
}

func (h *handle) Play()          { h.eng.record("play " + h.src) }
func (h *handle) Stop()          { h.eng.record("stop " + h.src) }
func (h *handle) Dispose() error { h.eng.record("dispose " + h.src); return nil }

// fakeEngine loads instantly and fails for sources starting with "bad".
type fakeEngine struct {
	mu    sync.Mutex
	loads int
	log   []string
}

func (e *fakeEngine) Load(_ context.Context, req soundbind.LoadRequest) (soundbind.Handle, error) {
	e.mu.Lock()
	e.loads++
	e.mu.Unlock()

	src := req.Sources[0]
	if strings.HasPrefix(src, "bad") {
		return nil, errors.New("cannot decode " + src)
	}
	return &handle{src: src, eng: e}, nil
}

func (e *fakeEngine) record(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *fakeEngine) snapshot() (int, []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loads, append([]string(nil), e.log...)
}

func el(id, src, play, stop string) config.ElementConfig {
	return config.ElementConfig{
		ID: id,
		Sound: config.SoundSpec{
			Src:    []string{src},
			Events: config.EventsSpec{Play: play, Stop: stop},
		},
	}
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestBoard_ApplyAndDispatch(t *testing.T) {
	eng := &fakeEngine{}
	b := New(eng, zerolog.Nop())
	defer b.Close()

	ch, err := b.Apply([]config.ElementConfig{
		el("play", "hover.wav", "mouseenter", "mouseleave"),
		el("close", "click.wav", "click", ""),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"play", "close"}, ch.Added)
	require.NoError(t, b.Wait(waitCtx(t)))

	n, err := b.Dispatch("play", "mouseenter")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = b.Dispatch("close", "mouseenter")
	require.NoError(t, err)
	require.Zero(t, n)

	_, err = b.Dispatch("missing", "click")
	require.ErrorIs(t, err, ErrUnknownElement)

	_, log := eng.snapshot()
	require.Equal(t, []string{"play hover.wav"}, log)

	items := b.Items()
	require.Len(t, items, 2)
	require.Equal(t, "play", items[0].ID)
	require.Equal(t, []string{"mouseenter", "mouseleave"}, items[0].Events)
	require.True(t, items[0].Loaded)
	require.Equal(t, []string{"click"}, items[1].Events)
}

func TestBoard_ApplyDiffs(t *testing.T) {
	eng := &fakeEngine{}
	b := New(eng, zerolog.Nop())
	defer b.Close()

	_, err := b.Apply([]config.ElementConfig{
		el("a", "a.wav", "click", ""),
		el("b", "b.wav", "click", ""),
		el("c", "c.wav", "click", ""),
	})
	require.NoError(t, err)
	require.NoError(t, b.Wait(waitCtx(t)))

	relabeled := el("a", "a.wav", "click", "")
	relabeled.Label = "Alpha"

	ch, err := b.Apply([]config.ElementConfig{
		el("c", "c2.wav", "click", ""),
		relabeled,
		el("d", "d.wav", "focus", ""),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"d"}, ch.Added)
	require.Equal(t, []string{"c"}, ch.Updated)
	require.Equal(t, []string{"b"}, ch.Removed)
	require.Equal(t, []string{"c", "a", "d"}, b.IDs())
	require.Equal(t, "Alpha", b.Items()[1].Label)
	require.NoError(t, b.Wait(waitCtx(t)))

	loads, log := eng.snapshot()
	require.Equal(t, 5, loads, "a is not reloaded for a label change")
	require.Contains(t, log, "dispose b.wav")
	require.Contains(t, log, "dispose c.wav")
	require.NotContains(t, log, "dispose a.wav")

	ch, err = b.Apply([]config.ElementConfig{
		el("c", "c2.wav", "click", ""),
		relabeled,
		el("d", "d.wav", "focus", ""),
	})
	require.NoError(t, err)
	require.True(t, ch.Empty())
}

func TestBoard_LoadErrors(t *testing.T) {
	b := New(&fakeEngine{}, zerolog.Nop())
	defer b.Close()

	_, err := b.Apply([]config.ElementConfig{
		el("good", "good.wav", "click", ""),
		el("broken", "bad.wav", "click", ""),
	})
	require.NoError(t, err)

	err = b.Wait(waitCtx(t))
	var le *soundbind.LoadError
	require.ErrorAs(t, err, &le)
	require.ErrorContains(t, err, `element "broken"`)
	require.NotContains(t, err.Error(), `"good"`)
}

func TestBoard_ApplyRejectsInvalid(t *testing.T) {
	b := New(&fakeEngine{}, zerolog.Nop())
	defer b.Close()

	_, err := b.Apply([]config.ElementConfig{
		el("ok", "ok.wav", "click", ""),
		el("nosound", "ok.wav", "", ""),
		el("ok", "other.wav", "click", ""),
	})
	require.ErrorIs(t, err, soundbind.ErrMissingPlayEvent)
	require.ErrorIs(t, err, config.ErrDuplicateID)
	require.Equal(t, []string{"ok"}, b.IDs())
}

func TestBoard_PlayStop(t *testing.T) {
	eng := &fakeEngine{}
	b := New(eng, zerolog.Nop())
	defer b.Close()

	_, err := b.Apply([]config.ElementConfig{el("a", "a.wav", "click", "")})
	require.NoError(t, err)
	require.NoError(t, b.Wait(waitCtx(t)))

	require.NoError(t, b.Play("a"))
	require.NoError(t, b.Stop("a"))
	require.ErrorIs(t, b.Play("zzz"), ErrUnknownElement)
	require.ErrorIs(t, b.Stop("zzz"), ErrUnknownElement)

	_, log := eng.snapshot()
	require.Equal(t, []string{"play a.wav", "stop a.wav"}, log)
}

func TestBoard_Close(t *testing.T) {
	eng := &fakeEngine{}
	b := New(eng, zerolog.Nop())

	_, err := b.Apply([]config.ElementConfig{el("a", "a.wav", "click", "")})
	require.NoError(t, err)
	require.NoError(t, b.Wait(waitCtx(t)))

	require.NoError(t, b.Close())
	require.Empty(t, b.Items())
	require.NoError(t, b.Wait(waitCtx(t)))

	_, log := eng.snapshot()
	require.Contains(t, log, "dispose a.wav")
}
