// SPDX-License-Identifier: EPL-2.0

package soundbind_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ik5/soundbind"
)

// fakeHandle counts the calls a Player makes on it.
type fakeHandle struct {
	req soundbind.LoadRequest

	mu       sync.Mutex
	plays    int
	stops    int
	disposed int
}

func (h *fakeHandle) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.plays++
}

func (h *fakeHandle) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stops++
}

func (h *fakeHandle) Dispose() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.disposed++
	return nil
}

func (h *fakeHandle) counts() (plays, stops, disposed int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.plays, h.stops, h.disposed
}

// instantEngine hands out a new fakeHandle for every load, or fails with err.
type instantEngine struct {
	err error

	mu      sync.Mutex
	handles []*fakeHandle
}

func (e *instantEngine) Load(_ context.Context, req soundbind.LoadRequest) (soundbind.Handle, error) {
	if e.err != nil {
		return nil, e.err
	}

	h := &fakeHandle{req: req}
	e.mu.Lock()
	e.handles = append(e.handles, h)
	e.mu.Unlock()
	return h, nil
}

func (e *instantEngine) all() []*fakeHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*fakeHandle(nil), e.handles...)
}

func (e *instantEngine) last(t *testing.T) *fakeHandle {
	t.Helper()
	hs := e.all()
	if len(hs) == 0 {
		t.Fatal("no handle loaded")
	}
	return hs[len(hs)-1]
}

type loadResult struct {
	handle soundbind.Handle
	err    error
}

// pendingLoad is a Load call parked until the test resolves it.
type pendingLoad struct {
	req   soundbind.LoadRequest
	ctx   context.Context
	reply chan loadResult
}

func (p *pendingLoad) resolve() *fakeHandle {
	h := &fakeHandle{req: p.req}
	p.reply <- loadResult{handle: h}
	return h
}

func (p *pendingLoad) fail(err error) {
	p.reply <- loadResult{err: err}
}

// manualEngine parks every Load until the test answers it. It ignores
// cancellation on purpose so late completions can be produced.
type manualEngine struct {
	loads chan *pendingLoad
}

func newManualEngine() *manualEngine {
	return &manualEngine{loads: make(chan *pendingLoad, 16)}
}

func (e *manualEngine) Load(ctx context.Context, req soundbind.LoadRequest) (soundbind.Handle, error) {
	p := &pendingLoad{req: req, ctx: ctx, reply: make(chan loadResult, 1)}
	e.loads <- p
	r := <-p.reply
	return r.handle, r.err
}

func (e *manualEngine) next(t *testing.T) *pendingLoad {
	t.Helper()
	select {
	case p := <-e.loads:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a load request")
		return nil
	}
}

// recordingTarget remembers every listener ever added so tests can invoke
// one after it was removed.
type recordingTarget struct {
	mu      sync.Mutex
	live    map[string][]soundbind.EventListener
	history []soundbind.EventListener
}

func newRecordingTarget() *recordingTarget {
	return &recordingTarget{live: make(map[string][]soundbind.EventListener)}
}

func (r *recordingTarget) AddEventListener(typ string, l soundbind.EventListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live[typ] = append(r.live[typ], l)
	r.history = append(r.history, l)
}

func (r *recordingTarget) RemoveEventListener(typ string, l soundbind.EventListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ls := r.live[typ]
	for i := range ls {
		if ls[i] == l {
			r.live[typ] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

func (r *recordingTarget) added() []soundbind.EventListener {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]soundbind.EventListener(nil), r.history...)
}

func waitLoaded(t *testing.T, w interface{ Wait(context.Context) error }) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := w.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}
