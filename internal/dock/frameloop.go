package dock

// FrameRequester schedules a single callback for the next display frame.
// The owner of the frame clock calls FrameLoop.Frame when it fires.
type FrameRequester interface {
	RequestFrame()
}

// LoopState is the state of a FrameLoop.
type LoopState uint8

const (
	Idle LoopState = iota
	Scheduled
)

func (s LoopState) String() string {
	if s == Scheduled {
		return "scheduled"
	}
	return "idle"
}

// FrameLoop runs step once per frame until it reports convergence. At most
// one frame is pending at any time.
type FrameLoop struct {
	state LoopState
	req   FrameRequester
	step  func() bool
}

// NewFrameLoop creates an idle loop.
func NewFrameLoop(req FrameRequester, step func() bool) *FrameLoop {
	return &FrameLoop{req: req, step: step}
}

// State returns the loop state.
func (l *FrameLoop) State() LoopState {
	return l.state
}

// Start requests a frame unless one is already pending.
func (l *FrameLoop) Start() {
	if l.state == Scheduled {
		return
	}
	l.state = Scheduled
	l.req.RequestFrame()
}

// Frame runs one step. It requests the next frame while step reports
// unfinished work and goes idle otherwise. Frames delivered while idle are
// ignored. The return value reports whether another frame was requested.
func (l *FrameLoop) Frame() bool {
	if l.state != Scheduled {
		return false
	}
	if l.step() {
		l.req.RequestFrame()
		return true
	}
	l.state = Idle
	return false
}
