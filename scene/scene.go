package scene

// Scene owns a node tree, the tweens animating it, and an optional per-frame
// callback.
type Scene struct {
	// ClearColor fills the screen before each Draw. A zero alpha skips the fill.
	ClearColor Color

	root       *Node
	tweens     []*TweenGroup
	updateFunc func() error
	quadBuf    []quad
}

// NewScene creates a new scene with a pre-created root node.
func NewScene() *Scene {
	return &Scene{root: NewNode("root")}
}

// Root returns the scene's root node.
func (s *Scene) Root() *Node {
	return s.root
}

// Commands returns a prefab host whose top-level spawns become children of
// the root node.
func (s *Scene) Commands() *Commands {
	return &Commands{scene: s}
}

// SetUpdateFunc sets a callback invoked once per Update, after tweens advance.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// AddTween registers a tween group to be advanced by Update. Finished groups
// are dropped.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// NumTweens returns the number of tween groups still running.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

// Update advances tweens by dt seconds, runs the update callback, and
// refreshes world transforms.
func (s *Scene) Update(dt float32) error {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.UpdateTransforms()
	return nil
}

// UpdateTransforms recomputes world transforms for dirty subtrees.
func (s *Scene) UpdateTransforms() {
	s.root.refresh(identityTransform, 1, false)
}

// SetDebugMode enables or disables debug checks for every scene in the
// process. When enabled, attaching a disposed node panics and deep or wide
// trees print warnings to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	globalDebug = enabled
}
