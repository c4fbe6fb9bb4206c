package physics

import "fmt"

const (
	DefaultTraceNum       = 200
	DefaultTracePrelocate = 5
)

// TraceConfig sizes a body trail. A zero field selects its default.
type TraceConfig struct {
	Num       int `json:"num"`
	Prelocate int `json:"prelocate"`
}

func (c TraceConfig) withDefaults() TraceConfig {
	if c.Num == 0 {
		c.Num = DefaultTraceNum
	}
	if c.Prelocate == 0 {
		c.Prelocate = DefaultTracePrelocate
	}
	return c
}

// Trail is a sliding window over the most recent Num positions. The backing
// store is Num*Prelocate samples long so that the window only has to be
// shifted back to the front once every (Prelocate-1)*Num appends.
type Trail struct {
	buf   []Vec3
	start int
	end   int
	num   int
}

// NewTrail allocates a trail holding at most num samples.
func NewTrail(num, prelocate int) (*Trail, error) {
	if num <= 0 {
		return nil, fmt.Errorf("trace num %d: %w", num, ErrInvalidTrace)
	}
	if prelocate < 1 {
		return nil, fmt.Errorf("trace prelocate %d: %w", prelocate, ErrInvalidTrace)
	}
	return &Trail{
		buf: make([]Vec3, num*prelocate),
		num: num,
	}, nil
}

// Append pushes p as the newest sample, dropping the oldest one when the
// window is full.
func (t *Trail) Append(p Vec3) {
	if t.end == len(t.buf) {
		t.compact()
	}
	t.buf[t.end] = p
	t.end++
	if t.end-t.start > t.num {
		t.start = t.end - t.num
	}
}

// compact moves the newest num-1 live samples to the front of the buffer,
// leaving room for exactly one append.
func (t *Trail) compact() {
	keep := t.end - t.start
	if keep > t.num-1 {
		keep = t.num - 1
	}
	copy(t.buf, t.buf[t.end-keep:t.end])
	t.start = 0
	t.end = keep
}

// Window exposes the live samples as buf[start:end]. The slice is shared
// with the trail and must not be modified.
func (t *Trail) Window() (start, end int, samples []Vec3) {
	return t.start, t.end, t.buf
}

// Samples returns the live window, oldest first.
func (t *Trail) Samples() []Vec3 {
	return t.buf[t.start:t.end]
}

func (t *Trail) Len() int { return t.end - t.start }

func (t *Trail) Cap() int { return t.num }

// Latest returns the newest sample; ok is false for an empty trail.
func (t *Trail) Latest() (p Vec3, ok bool) {
	if t.end == t.start {
		return Vec3{}, false
	}
	return t.buf[t.end-1], true
}
