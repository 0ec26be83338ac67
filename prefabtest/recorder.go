// Package prefabtest provides a recording host for testing code that builds
// and spawns prefabs.
package prefabtest

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phanxgames/prefab"
)

// ErrInjected is returned by a Recorder when a failure was requested with
// FailSpawnAt or FailInsertAt.
var ErrInjected = errors.New("prefabtest: injected failure")

// Op identifies a recorded host command.
type Op string

const (
	OpSpawn  Op = "spawn"  // a new entity was created
	OpInsert Op = "insert" // a bundle was attached to an entity
	OpScope  Op = "scope"  // a child scope was opened on an entity
)

// Command is one recorded host call. Entity IDs start at 1; Parent is 0 for
// root spawns and unused for other ops.
type Command[B any] struct {
	Op     Op  `json:"op"`
	Entity int `json:"entity"`
	Parent int `json:"parent,omitempty"`
	Bundle B   `json:"bundle,omitempty"`
}

func (c Command[B]) String() string {
	switch c.Op {
	case OpSpawn:
		return fmt.Sprintf("spawn %d parent=%d", c.Entity, c.Parent)
	case OpInsert:
		return fmt.Sprintf("insert %d %v", c.Entity, c.Bundle)
	default:
		return fmt.Sprintf("%s %d", c.Op, c.Entity)
	}
}

// Recorder is an in-memory host that records every command it receives.
// The zero value is ready to use.
type Recorder[B any] struct {
	// FailSpawnAt makes the Nth spawn (1-based) fail with ErrInjected.
	// Zero disables.
	FailSpawnAt int
	// FailInsertAt makes the Nth insert (1-based) fail with ErrInjected.
	// Zero disables.
	FailInsertAt int

	log     []Command[B]
	nextID  int
	spawns  int
	inserts int
}

// NewRecorder returns an empty recorder.
func NewRecorder[B any]() *Recorder[B] {
	return &Recorder[B]{}
}

// Spawn creates a root entity.
func (r *Recorder[B]) Spawn() (prefab.EntityCommands[B], error) {
	return r.spawnCommands(0)
}

// Commands returns the recorded command log. The returned slice MUST NOT be
// mutated.
func (r *Recorder[B]) Commands() []Command[B] {
	return r.log
}

// Reset clears the log and entity counter. Failure settings are kept.
// Slices returned by earlier Commands calls are left intact.
func (r *Recorder[B]) Reset() {
	r.log = nil
	r.nextID = 0
	r.spawns = 0
	r.inserts = 0
}

// JSON returns the command log encoded as a JSON array.
func (r *Recorder[B]) JSON() ([]byte, error) {
	data, err := json.Marshal(r.log)
	if err != nil {
		return nil, fmt.Errorf("encode command log: %w", err)
	}
	return data, nil
}

// spawnCommands keeps a failed spawn from returning a typed nil.
func (r *Recorder[B]) spawnCommands(parent int) (prefab.EntityCommands[B], error) {
	e, err := r.spawn(parent)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *Recorder[B]) spawn(parent int) (*Entity[B], error) {
	r.spawns++
	if r.FailSpawnAt > 0 && r.spawns == r.FailSpawnAt {
		return nil, fmt.Errorf("spawn #%d: %w", r.spawns, ErrInjected)
	}
	r.nextID++
	r.log = append(r.log, Command[B]{Op: OpSpawn, Entity: r.nextID, Parent: parent})
	return &Entity[B]{rec: r, id: r.nextID}, nil
}

// Entity is the recorder's per-entity command target.
type Entity[B any] struct {
	rec *Recorder[B]
	id  int
}

// ID returns the entity's ID.
func (e *Entity[B]) ID() int {
	return e.id
}

// Insert records an insert command.
func (e *Entity[B]) Insert(bundle B) error {
	r := e.rec
	r.inserts++
	if r.FailInsertAt > 0 && r.inserts == r.FailInsertAt {
		return fmt.Errorf("insert #%d into %d: %w", r.inserts, e.id, ErrInjected)
	}
	r.log = append(r.log, Command[B]{Op: OpInsert, Entity: e.id, Bundle: bundle})
	return nil
}

// ChildBuilder records a scope command and returns a spawner for children
// of e.
func (e *Entity[B]) ChildBuilder() prefab.Spawner[B] {
	e.rec.log = append(e.rec.log, Command[B]{Op: OpScope, Entity: e.id})
	return &scope[B]{rec: e.rec, parent: e.id}
}

type scope[B any] struct {
	rec    *Recorder[B]
	parent int
}

func (s *scope[B]) Spawn() (prefab.EntityCommands[B], error) {
	return s.rec.spawnCommands(s.parent)
}

// ID returns the recorder entity ID behind ec. It panics if ec did not come
// from a Recorder.
func ID[B any](ec prefab.EntityCommands[B]) int {
	return ec.(*Entity[B]).ID()
}
