package loop

// Gestures turns per-frame input into playback actions. Audio may only start
// after a user gesture, so the first click, Space or Enter unlocks it; later
// Space presses toggle pause.
type Gestures struct {
	unlock   func()
	toggle   func()
	unlocked bool
}

func NewGestures(unlock, toggle func()) *Gestures {
	return &Gestures{unlock: unlock, toggle: toggle}
}

// Unlock records that playback already started without a gesture, as with
// autoplay. It does not call the unlock callback.
func (g *Gestures) Unlock() { g.unlocked = true }

func (g *Gestures) Unlocked() bool { return g.unlocked }

// Press handles one frame of input. pressed is true for a click, Space or
// Enter; space is true for Space.
func (g *Gestures) Press(pressed, space bool) {
	if !pressed && !space {
		return
	}
	if !g.unlocked {
		g.unlocked = true
		if g.unlock != nil {
			g.unlock()
		}
		return
	}
	if space && g.toggle != nil {
		g.toggle()
	}
}
