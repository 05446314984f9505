package core

// Input accumulates the events of one frame. Edges (presses, releases,
// typed text, wheel) are cleared by EndFrame; held state persists.
type Input struct {
	keys           map[Key]bool
	mouseX, mouseY float64
	buttons        [mouseButtons]bool
	pressed        [mouseButtons]bool
	released       [mouseButtons]bool
	scrollY        float64
	text           []rune
	keyPresses     []Key
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
		if e.Down {
			in.keyPresses = append(in.keyPresses, e.Key)
		}
	case EventChar:
		in.text = append(in.text, e.Rune)
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if e.Button < 0 || e.Button >= mouseButtons {
			return
		}
		if e.Down && !in.buttons[e.Button] {
			in.pressed[e.Button] = true
		}
		if !e.Down && in.buttons[e.Button] {
			in.released[e.Button] = true
		}
		in.buttons[e.Button] = e.Down
	case EventScroll:
		in.scrollY += e.Yoff
	}
}

// EndFrame forgets this frame's edges.
func (in *Input) EndFrame() {
	in.pressed = [mouseButtons]bool{}
	in.released = [mouseButtons]bool{}
	in.scrollY = 0
	in.text = in.text[:0]
	in.keyPresses = in.keyPresses[:0]
}

func (in *Input) IsKeyDown(k Key) bool              { return in.keys[k] }
func (in *Input) Mouse() (float64, float64)         { return in.mouseX, in.mouseY }
func (in *Input) ButtonDown(b MouseButton) bool     { return in.buttons[b] }
func (in *Input) ButtonPressed(b MouseButton) bool  { return in.pressed[b] }
func (in *Input) ButtonReleased(b MouseButton) bool { return in.released[b] }
func (in *Input) Scroll() float64                   { return in.scrollY }
func (in *Input) Typed() []rune                     { return in.text }
func (in *Input) KeyPresses() []Key                 { return in.keyPresses }
