package memory

import "sync"

// Sequence is a scripted integer source. Each Next returns the following
// scripted value; once exhausted the last value repeats. An empty sequence
// yields zero. Safe for concurrent use.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
	reads  int
}

// NewSequence scripts values in order.
func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

// Next returns the next scripted value.
func (s *Sequence) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

// Set replaces the script with a constant.
func (s *Sequence) Set(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = []int{v}
	s.next = 0
}

// Reads is how many times Next was called.
func (s *Sequence) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// LineSensor implements ports.LineSensor from a Sequence.
type LineSensor struct {
	Values *Sequence
}

// Brightness returns the next scripted brightness.
func (l *LineSensor) Brightness() int { return l.Values.Next() }

// ColorSensor implements ports.ColorSensor from one Sequence per channel.
type ColorSensor struct {
	R, G, B, A *Sequence
}

func (c *ColorSensor) Red() int   { return c.R.Next() }
func (c *ColorSensor) Green() int { return c.G.Next() }
func (c *ColorSensor) Blue() int  { return c.B.Next() }
func (c *ColorSensor) Alpha() int { return c.A.Next() }

// RangeSensor implements ports.RangeSensor. Refresh samples both scripted
// sequences into a cache; Optical and Ultrasonic read the cache, so reads
// without a refresh are stale.
type RangeSensor struct {
	OpticalValues    *Sequence
	UltrasonicValues *Sequence

	mu         sync.RWMutex
	optical    int
	ultrasonic int
	refreshes  int
}

// Refresh samples both channels.
func (r *RangeSensor) Refresh() {
	opt, us := r.OpticalValues.Next(), r.UltrasonicValues.Next()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.optical, r.ultrasonic = opt, us
	r.refreshes++
}

func (r *RangeSensor) Optical() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.optical
}

func (r *RangeSensor) Ultrasonic() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ultrasonic
}

// Refreshes is how many times Refresh was called.
func (r *RangeSensor) Refreshes() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshes
}
