package sim

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/truman/pkg/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidScenario is returned for scenarios that fail validation.
var ErrInvalidScenario = errors.New("invalid scenario")

//go:embed scenarios/default.yaml
var defaultScenario []byte

// Frame is the field as the sensors see it. Unset fields take the value of
// the scenario default frame.
type Frame struct {
	// Ticks is how many ticks the frame holds. Zero means one.
	Ticks int `yaml:"ticks"`

	Brightness *int `yaml:"brightness"`
	Red        *int `yaml:"red"`
	Green      *int `yaml:"green"`
	Blue       *int `yaml:"blue"`
	Alpha      *int `yaml:"alpha"`
	Optical    *int `yaml:"optical"`
	Ultrasonic *int `yaml:"ultrasonic"`
}

// Scenario scripts the sensors per state. While the controller is in a
// state, the frames listed for it play in order counted in ticks spent in
// that state; the last frame repeats.
type Scenario struct {
	Name    string             `yaml:"name"`
	Config  domain.Config      `yaml:"config"`
	Tick    time.Duration      `yaml:"tick"`
	Limit   time.Duration      `yaml:"limit"`
	Default Frame              `yaml:"default"`
	States  map[string][]Frame `yaml:"states"`

	frames map[domain.State][]Frame
}

// Default returns the embedded competition scenario.
func Default() *Scenario {
	s, err := Parse(defaultScenario)
	if err != nil {
		panic(fmt.Sprintf("embedded scenario: %v", err))
	}
	return s
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML scenario. Unknown fields are errors.
func Parse(data []byte) (*Scenario, error) {
	s := &Scenario{Config: domain.DefaultConfig()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) normalize() error {
	if s.Tick == 0 {
		s.Tick = 20 * time.Millisecond
	}
	if s.Limit == 0 {
		s.Limit = 30 * time.Second
	}
	if s.Tick < 0 || s.Limit < s.Tick {
		return fmt.Errorf("%w: tick %s, limit %s", ErrInvalidScenario, s.Tick, s.Limit)
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	s.frames = make(map[domain.State][]Frame, len(s.States))
	for name, frames := range s.States {
		st, err := domain.ParseState(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
		}
		for _, f := range frames {
			if f.Ticks < 0 {
				return fmt.Errorf("%w: %s: negative ticks", ErrInvalidScenario, name)
			}
		}
		s.frames[st] = frames
	}
	return nil
}

// FrameAt returns the sensor frame for the n-th tick (from zero) spent in
// state st, with defaults filled in.
func (s *Scenario) FrameAt(st domain.State, n int) Frame {
	f := s.Default
	frames := s.frames[st]
	if len(frames) > 0 {
		pick := frames[len(frames)-1]
		for _, fr := range frames {
			hold := max(fr.Ticks, 1)
			if n < hold {
				pick = fr
				break
			}
			n -= hold
		}
		f = overlay(f, pick)
	}
	return f
}

func overlay(base, top Frame) Frame {
	pick := func(a, b *int) *int {
		if b != nil {
			return b
		}
		return a
	}
	return Frame{
		Ticks:      top.Ticks,
		Brightness: pick(base.Brightness, top.Brightness),
		Red:        pick(base.Red, top.Red),
		Green:      pick(base.Green, top.Green),
		Blue:       pick(base.Blue, top.Blue),
		Alpha:      pick(base.Alpha, top.Alpha),
		Optical:    pick(base.Optical, top.Optical),
		Ultrasonic: pick(base.Ultrasonic, top.Ultrasonic),
	}
}

func value(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
