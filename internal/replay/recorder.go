package replay

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/trampoline-arcade/internal/games/trampoline"
)

// Sink receives finished tapes.
type Sink func(Tape)

// Recorder captures sessions as tapes. It implements trampoline.Recorder.
// Each Begin starts a new tape; End or Close hands it to the sink.
type Recorder struct {
	mu     sync.Mutex
	gameID string
	config []byte
	sink   Sink
	now    func() time.Time
	tape   *Tape
}

var _ trampoline.Recorder = (*Recorder)(nil)

// NewRecorder creates a recorder. cfg is the encoded configuration stored on
// every tape (see EncodeConfig).
func NewRecorder(gameID string, cfg []byte, sink Sink) *Recorder {
	return &Recorder{
		gameID: gameID,
		config: cfg,
		sink:   sink,
		now:    time.Now,
	}
}

// Begin starts a new tape, closing any tape in progress.
func (r *Recorder) Begin(seed int64, width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.flushLocked()
	r.tape = &Tape{
		ID:        uuid.NewString(),
		GameID:    r.gameID,
		Seed:      seed,
		Width:     width,
		Height:    height,
		Config:    r.config,
		CreatedAt: r.now().UTC(),
	}
}

// Frame appends one engine step.
func (r *Recorder) Frame(dtMs float64, in trampoline.Input) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tape == nil {
		return
	}
	r.tape.Frames = append(r.tape.Frames, Frame{DtMs: dtMs, Flags: InputFlags(in)})
}

// Resize appends a viewport change.
func (r *Recorder) Resize(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tape == nil {
		return
	}
	r.tape.Frames = append(r.tape.Frames, Frame{Flags: FlagResize, Width: width, Height: height})
}

// End finishes the current tape.
func (r *Recorder) End(trampoline.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
}

// Close finishes a tape left open by a quit mid-session.
func (r *Recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushLocked()
}

func (r *Recorder) flushLocked() {
	if r.tape == nil {
		return
	}
	tape := *r.tape
	r.tape = nil
	if r.sink != nil && len(tape.Frames) > 0 {
		r.sink(tape)
	}
}
