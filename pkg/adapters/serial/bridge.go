package serial

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/aretw0/truman/internal/logging"
	"github.com/aretw0/truman/pkg/ports"
	"go.bug.st/serial"
)

// Port is the minimal interface needed for a serial port.
type Port interface {
	io.ReadWriter
	io.Closer
}

// Bridge exposes a serial-attached robot as ports.Hardware.
type Bridge struct {
	port   Port
	logger *slog.Logger
	out    chan string

	mu     sync.RWMutex
	latest Sample
	frozen Sample
	lines  int
	bad    int

	closeOnce sync.Once
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger used for dropped writes and bad lines.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// WithQueueSize sets how many actuator writes may be pending.
func WithQueueSize(n int) Option {
	return func(b *Bridge) {
		b.out = make(chan string, n)
	}
}

// Open opens the device at path.
func Open(path string, opts PortOptions, options ...Option) (*Bridge, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return New(port, options...), nil
}

// New wraps an already open port.
func New(port Port, opts ...Option) *Bridge {
	b := &Bridge{
		port: port,
		out:  make(chan string, 256),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	return b
}

// send queues a line without blocking.
func (b *Bridge) send(line string) {
	select {
	case b.out <- line:
	default:
		b.logger.Warn("serial: write queue full, dropping command", "line", line)
	}
}

// Latest returns the most recent sample received from the device.
func (b *Bridge) Latest() Sample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.latest
}

// Frozen returns the sample captured by the last range refresh. Every
// sensor port reads it, so all reads of one tick see the same device sample.
func (b *Bridge) Frozen() Sample {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frozen
}

func (b *Bridge) freeze() {
	b.mu.Lock()
	b.frozen = b.latest
	b.mu.Unlock()
}

// Stats reports how many lines were received and how many were rejected.
func (b *Bridge) Stats() (lines, malformed int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines, b.bad
}

func (b *Bridge) handle(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines++
	if err := b.latest.apply(line); err != nil {
		b.bad++
		b.logger.Debug("serial: ignoring line", "err", err)
	}
}

// Monitor reads device lines into the sample cache and writes queued
// commands until ctx is done or the port fails. Whatever the reason it
// returns, the commands still queued are written first and the writer has
// stopped, so a final stop reaches the device.
func (b *Bridge) Monitor(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	writeErr := make(chan error, 1)
	written := make(chan struct{})
	defer func() {
		cancel()
		<-written
	}()
	go func() {
		defer close(written)
		for {
			select {
			case <-ctx.Done():
				b.drain()
				return
			case line := <-b.out:
				if _, err := io.WriteString(b.port, line); err != nil {
					writeErr <- fmt.Errorf("serial write: %w", err)
					return
				}
			}
		}
	}()

	scan := bufio.NewScanner(b.port)
	lineChan := make(chan string)
	scanErrChan := make(chan error, 1)
	go func() {
		defer close(lineChan)
		for scan.Scan() {
			select {
			case lineChan <- scan.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			scanErrChan <- err
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return parent.Err()
		case err := <-writeErr:
			return err
		case err := <-scanErrChan:
			return fmt.Errorf("serial read: %w", err)
		case line, ok := <-lineChan:
			if !ok {
				select {
				case err := <-scanErrChan:
					return fmt.Errorf("serial read: %w", err)
				default:
					return io.EOF
				}
			}
			b.handle(line)
		}
	}
}

// drain writes whatever is queued without waiting for more.
func (b *Bridge) drain() {
	for {
		select {
		case line := <-b.out:
			if _, err := io.WriteString(b.port, line); err != nil {
				return
			}
		default:
			return
		}
	}
}

// Close closes the port.
func (b *Bridge) Close() error {
	var err error
	b.closeOnce.Do(func() {
		err = b.port.Close()
	})
	return err
}

// Hardware exposes the bridge through the controller's ports.
func (b *Bridge) Hardware(telemetry ports.Telemetry) ports.Hardware {
	return ports.Hardware{
		Drive:         &drivetrain{b: b},
		FlywheelLeft:  &actuator{b: b, tag: "F", channel: "L"},
		FlywheelRight: &actuator{b: b, tag: "F", channel: "R"},
		Slide:         &actuator{b: b, tag: "S"},
		Guard:         &actuator{b: b, tag: "G"},
		Arm:           &actuator{b: b, tag: "A"},
		Bottom:        &lineSensor{b: b},
		Front:         &colorSensor{b: b},
		Range:         &rangeSensor{b: b},
		Telemetry:     telemetry,
	}
}

type drivetrain struct{ b *Bridge }

func (d *drivetrain) SetFrontRightPower(p float64) { d.b.send(powerLine("M", "FR", p)) }
func (d *drivetrain) SetFrontLeftPower(p float64)  { d.b.send(powerLine("M", "FL", p)) }
func (d *drivetrain) SetBackRightPower(p float64)  { d.b.send(powerLine("M", "BR", p)) }
func (d *drivetrain) SetBackLeftPower(p float64)   { d.b.send(powerLine("M", "BL", p)) }

// actuator serves both power and position setters.
type actuator struct {
	b       *Bridge
	tag     string
	channel string
}

func (a *actuator) SetPower(p float64)      { a.b.send(powerLine(a.tag, a.channel, p)) }
func (a *actuator) SetPosition(pos float64) { a.b.send(powerLine(a.tag, a.channel, pos)) }

type lineSensor struct{ b *Bridge }

func (l *lineSensor) Brightness() int { return l.b.Frozen().Brightness }

type colorSensor struct{ b *Bridge }

func (c *colorSensor) Red() int   { return c.b.Frozen().Red }
func (c *colorSensor) Green() int { return c.b.Frozen().Green }
func (c *colorSensor) Blue() int  { return c.b.Frozen().Blue }
func (c *colorSensor) Alpha() int { return c.b.Frozen().Alpha }

// rangeSensor freezes the whole latest sample on Refresh, which the
// controller calls before any other read of a tick, and asks the device for
// a new range reading.
type rangeSensor struct{ b *Bridge }

func (r *rangeSensor) Refresh() {
	r.b.freeze()
	r.b.send("R\n")
}

func (r *rangeSensor) Optical() int    { return r.b.Frozen().Optical }
func (r *rangeSensor) Ultrasonic() int { return r.b.Frozen().Ultrasonic }
