package prefab

import "fmt"

// SpawnPrefab spawns one entity through s and realizes p into it. s may be
// the host's top-level buffer or a child scope; ordering and structure are
// the same either way.
//
// p is consumed. Host errors are returned wrapped; commands issued before the
// failure are left in the host as they are. The returned commands target the
// root entity and are non-nil whenever the root was spawned.
func SpawnPrefab[B any](s Spawner[B], p Prefab[B]) (EntityCommands[B], error) {
	checkFree(p, "SpawnPrefab")
	ec, err := s.Spawn()
	if err != nil {
		return nil, fmt.Errorf("prefab: spawn root: %w", err)
	}
	if _, err := p.InsertInto(ec); err != nil {
		return ec, fmt.Errorf("prefab: realize: %w", err)
	}
	return ec, nil
}

// InsertPrefab realizes p into an entity that already exists. p is consumed.
func InsertPrefab[B any](ec EntityCommands[B], p Prefab[B]) (EntityCommands[B], error) {
	checkFree(p, "InsertPrefab")
	if _, err := p.InsertInto(ec); err != nil {
		return ec, fmt.Errorf("prefab: realize: %w", err)
	}
	return ec, nil
}

// checkFree panics before any command is issued if p cannot be realized.
func checkFree[B any](p Prefab[B], op string) {
	if p == nil {
		panic("prefab: " + op + " with nil prefab")
	}
	if t, ok := p.(tracked[B]); ok && t.current() != stateFree {
		panic(fmt.Sprintf("prefab: %s on %s prefab", op, t.current()))
	}
}
