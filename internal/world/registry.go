// Package world holds the set of live participants and the collision pass
// that runs over it.
package world

import (
	"iter"

	"github.com/tomz197/asteroids-classic/internal/object"
)

// Registry owns every participant in play, in insertion order. Participants
// added while an iteration is running are held back until it finishes, and
// expired participants are dropped by Flush.
type Registry struct {
	nextID    object.ID
	live      []object.Participant
	pending   []object.Participant
	byID      map[object.ID]object.Participant
	iterating int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[object.ID]object.Participant)}
}

// Add registers p, assigning its ID.
func (r *Registry) Add(p object.Participant) object.ID {
	r.nextID++
	p.SetID(r.nextID)
	r.byID[r.nextID] = p
	if r.iterating > 0 {
		r.pending = append(r.pending, p)
	} else {
		r.live = append(r.live, p)
	}
	return r.nextID
}

// Expire takes p out of play. It stays in the backing list until Flush.
func (r *Registry) Expire(p object.Participant) {
	p.Expire()
}

// Flush drops expired participants. Call it between ticks.
func (r *Registry) Flush() {
	if r.iterating > 0 {
		return
	}
	r.applyPending()
	kept := r.live[:0]
	for _, p := range r.live {
		if p.Expired() {
			delete(r.byID, p.ID())
			continue
		}
		kept = append(kept, p)
	}
	clear(r.live[len(kept):])
	r.live = kept
}

// Clear expires every participant, including ones not yet applied.
func (r *Registry) Clear() {
	r.expireWhere(func(object.Participant) bool { return true })
}

// ClearAsteroids expires every asteroid.
func (r *Registry) ClearAsteroids() {
	r.expireWhere(func(p object.Participant) bool {
		return p.Kind() == object.KindAsteroid
	})
}

func (r *Registry) expireWhere(match func(object.Participant) bool) {
	for _, list := range [][]object.Participant{r.live, r.pending} {
		for _, p := range list {
			if match(p) {
				p.Expire()
			}
		}
	}
}

// CountAsteroids counts asteroids in play, including ones not yet applied.
func (r *Registry) CountAsteroids() int {
	return r.Count(object.KindAsteroid)
}

// Count counts unexpired participants of kind, including ones not yet applied.
func (r *Registry) Count(kind object.Kind) int {
	n := 0
	for _, list := range [][]object.Participant{r.live, r.pending} {
		for _, p := range list {
			if p.Kind() == kind && !p.Expired() {
				n++
			}
		}
	}
	return n
}

// Len counts every unexpired participant.
func (r *Registry) Len() int {
	n := 0
	for _, list := range [][]object.Participant{r.live, r.pending} {
		for _, p := range list {
			if !p.Expired() {
				n++
			}
		}
	}
	return n
}

// Lookup finds an unexpired participant by ID.
func (r *Registry) Lookup(id object.ID) (object.Participant, bool) {
	p, ok := r.byID[id]
	if !ok || p.Expired() {
		return nil, false
	}
	return p, true
}

// All yields the unexpired participants in insertion order. The sequence is
// restartable; participants added during a pass show up in the next one.
func (r *Registry) All() iter.Seq[object.Participant] {
	return func(yield func(object.Participant) bool) {
		r.begin()
		defer r.end()
		for _, p := range r.live {
			if p.Expired() {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

func (r *Registry) begin() { r.iterating++ }

func (r *Registry) end() {
	r.iterating--
	if r.iterating == 0 {
		r.applyPending()
	}
}

func (r *Registry) applyPending() {
	if len(r.pending) == 0 {
		return
	}
	r.live = append(r.live, r.pending...)
	clear(r.pending)
	r.pending = r.pending[:0]
}
