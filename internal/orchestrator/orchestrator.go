// Package orchestrator owns conversation state for the comparison dashboard:
// it fans a single prompt out to every enabled model, consumes each model's
// event stream and merges partial results into shared turn state while
// keeping per-model failures isolated.
package orchestrator

import (
	"context"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/reaxo/reaxo/internal/catalog"
	"github.com/reaxo/reaxo/pkg/api"
)

// ModelResponse is one model's cell inside a turn. Content is append-only
// until the terminal update; a response is streaming, succeeded or failed,
// never both succeeded and failed.
type ModelResponse struct {
	ModelID   string
	Content   string
	IsLoading bool
	Err       string
}

// Turn is one prompt plus the responses it produced. Participant set is
// fixed at submission time.
type Turn struct {
	ID        string
	Prompt    string
	Responses []ModelResponse
}

// Snapshot is an immutable view of the conversation handed to subscribers.
type Snapshot struct {
	Turns      []Turn
	Submitting bool
}

// Completer streams one model's completion for the given context, invoking
// onDelta for every incremental text fragment. It returns only after the
// stream has fully drained or failed.
type Completer interface {
	Stream(ctx context.Context, messages []api.ChatMessage, modelID string, onDelta func(string)) error
}

// Orchestrator serializes every conversation mutation through one mutex and
// expresses each as a whole-value copy-on-write replacement, so concurrently
// settling model streams can never lose each other's updates. Within one
// model only that model's goroutine writes its (turn, model) cell, which
// keeps per-model content strictly append-only.
type Orchestrator struct {
	completer Completer

	mu         sync.RWMutex
	turns      []Turn
	enabled    map[string]bool
	order      []string // catalog order, fixes snapshot iteration
	submitting bool

	updates chan Snapshot
}

// New builds an orchestrator over the catalog's model ordering with the
// given ids enabled.
func New(completer Completer, enabledIDs []string) *Orchestrator {
	o := &Orchestrator{
		completer: completer,
		enabled:   make(map[string]bool),
		updates:   make(chan Snapshot, 1),
	}
	for _, m := range catalog.Models() {
		o.order = append(o.order, m.ID)
	}
	for _, id := range enabledIDs {
		o.enabled[id] = true
	}
	return o
}

// Updates delivers conversation snapshots as streams progress. Each value
// carries the full current state, so intermediate drops are harmless.
func (o *Orchestrator) Updates() <-chan Snapshot { return o.updates }

// notifyLocked publishes the current snapshot, replacing a stale pending one.
func (o *Orchestrator) notifyLocked() {
	snap := Snapshot{Turns: o.turns, Submitting: o.submitting}
	for {
		select {
		case o.updates <- snap:
			return
		default:
			select {
			case <-o.updates:
			default:
			}
		}
	}
}

// Turns returns the current conversation value.
func (o *Orchestrator) Turns() []Turn {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.turns
}

// Submitting reports whether a turn is still in flight.
func (o *Orchestrator) Submitting() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.submitting
}

// EnabledIDs returns the enabled set in catalog order.
func (o *Orchestrator) EnabledIDs() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.enabledIDsLocked()
}

func (o *Orchestrator) enabledIDsLocked() []string {
	var ids []string
	for _, id := range o.order {
		if o.enabled[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// EnabledCount returns the number of models selected for future turns.
func (o *Orchestrator) EnabledCount() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.enabledIDsLocked())
}

// Enabled reports whether a model participates in future turns.
func (o *Orchestrator) Enabled(id string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.enabled[id]
}

// ToggleModel flips a model's membership in the enabled set. Historical
// turns are untouched.
func (o *Orchestrator) ToggleModel(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.enabled[id] {
		delete(o.enabled, id)
	} else {
		o.enabled[id] = true
	}
	o.notifyLocked()
}

// EnableAll selects every catalog model for future turns.
func (o *Orchestrator) EnableAll() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, id := range o.order {
		o.enabled[id] = true
	}
	o.notifyLocked()
}

// DisableAll empties the enabled set.
func (o *Orchestrator) DisableAll() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enabled = make(map[string]bool)
	o.notifyLocked()
}

// ClearHistory drops the whole conversation. The enabled set survives.
func (o *Orchestrator) ClearHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.turns = nil
	o.notifyLocked()
}

// RemoveModelFromTurn deletes a model's response from one turn, prunes the
// turn when it empties, and drops the model from future participation. This
// is the only operation coupling history with the enabled set. A stream
// still in flight for the removed cell keeps running; its later updates
// find no matching entry and vanish silently.
func (o *Orchestrator) RemoveModelFromTurn(turnID, modelID string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next := make([]Turn, 0, len(o.turns))
	for _, t := range o.turns {
		if t.ID != turnID {
			next = append(next, t)
			continue
		}
		kept := make([]ModelResponse, 0, len(t.Responses))
		for _, r := range t.Responses {
			if r.ModelID != modelID {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			continue
		}
		t.Responses = kept
		next = append(next, t)
	}
	o.turns = next

	delete(o.enabled, modelID)
	o.notifyLocked()
}

// SubmitTurn fans prompt out to every enabled model. A blank prompt, an
// in-flight submission or an empty enabled set is a silent no-op, reported
// via ok=false. On success the returned channel closes once every
// participant has settled.
func (o *Orchestrator) SubmitTurn(ctx context.Context, prompt string) (done <-chan struct{}, ok bool) {
	prompt = strings.TrimSpace(prompt)

	o.mu.Lock()
	if prompt == "" || o.submitting {
		o.mu.Unlock()
		return nil, false
	}
	participants := o.enabledIDsLocked()
	if len(participants) == 0 {
		o.mu.Unlock()
		return nil, false
	}

	turnID := ulid.Make().String()

	responses := make([]ModelResponse, len(participants))
	for i, id := range participants {
		responses[i] = ModelResponse{ModelID: id, IsLoading: true}
	}

	// Context seeds are computed against the turn preceding this one.
	var prev *Turn
	if n := len(o.turns); n > 0 {
		prev = &o.turns[n-1]
	}
	shared := sharedContext(prev, prompt)
	perModel := make(map[string][]api.ChatMessage, len(participants))
	for _, id := range participants {
		perModel[id] = modelContext(prev, id, prompt, shared)
	}

	next := make([]Turn, len(o.turns), len(o.turns)+1)
	copy(next, o.turns)
	o.turns = append(next, Turn{ID: turnID, Prompt: prompt, Responses: responses})
	o.submitting = true
	o.notifyLocked()
	o.mu.Unlock()

	settled := make(chan struct{})
	var wg sync.WaitGroup
	for _, id := range participants {
		wg.Add(1)
		go func(modelID string, messages []api.ChatMessage) {
			defer wg.Done()
			o.streamOne(ctx, turnID, modelID, messages)
		}(id, perModel[id])
	}

	// All-settled join: input re-enables only after every model reached a
	// terminal state, so one slow or failing model never hides the others.
	go func() {
		wg.Wait()
		o.mu.Lock()
		o.submitting = false
		o.notifyLocked()
		o.mu.Unlock()
		close(settled)
	}()

	return settled, true
}

// streamOne drives a single participant to its terminal state.
func (o *Orchestrator) streamOne(ctx context.Context, turnID, modelID string, messages []api.ChatMessage) {
	content := ""
	err := o.completer.Stream(ctx, messages, modelID, func(delta string) {
		content += delta
		o.updateResponse(turnID, modelID, func(r ModelResponse) ModelResponse {
			r.Content = content
			r.IsLoading = true
			return r
		})
	})

	if err != nil {
		o.updateResponse(turnID, modelID, func(r ModelResponse) ModelResponse {
			r.Content = ""
			r.Err = err.Error()
			r.IsLoading = false
			return r
		})
		return
	}

	o.updateResponse(turnID, modelID, func(r ModelResponse) ModelResponse {
		r.IsLoading = false
		return r
	})
}

// updateResponse rewrites the (turnID, modelID) cell through copy-on-write
// replacement of the turn list. A target that no longer exists makes the
// whole update a no-op, which is the de facto cancellation mechanism for
// removed cells.
func (o *Orchestrator) updateResponse(turnID, modelID string, fn func(ModelResponse) ModelResponse) {
	o.mu.Lock()
	defer o.mu.Unlock()

	next := make([]Turn, len(o.turns))
	for i, t := range o.turns {
		if t.ID != turnID {
			next[i] = t
			continue
		}
		rs := make([]ModelResponse, len(t.Responses))
		for j, r := range t.Responses {
			if r.ModelID == modelID {
				rs[j] = fn(r)
			} else {
				rs[j] = r
			}
		}
		t.Responses = rs
		next[i] = t
	}
	o.turns = next
	o.notifyLocked()
}
