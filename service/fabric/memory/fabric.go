package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bistro/maitre/service/fabric"
)

var (
	// ErrClosed is returned by every operation after the fabric was closed.
	ErrClosed = errors.New("fabric is closed")

	// ErrSaturated is returned when a strict binary semaphore is released
	// while its token is still undelivered. The protocol guarantees at most
	// one outstanding signal per semaphore, so saturation always indicates
	// a misbehaving participant.
	ErrSaturated = errors.New("semaphore already signalled")

	// ErrUnknownName is returned by operations on a semaphore requested
	// with an out-of-range group or table id.
	ErrUnknownName = errors.New("unknown semaphore name")
)

// Config for the in-memory fabric.
type Config struct {
	// Groups is the number of per-group "table granted" semaphores.
	Groups int
	// Tables is the number of per-table "table vacated" semaphores.
	Tables int
}

// DefaultConfig returns a fabric sized for the default simulation.
func DefaultConfig() Config {
	return Config{Groups: 3, Tables: 2}
}

// semaphore is a binary semaphore built on a token channel of capacity one.
// Strict semaphores fail when released while still signalled; latched ones
// coalesce repeated releases instead.
type semaphore struct {
	name    string
	tokens  chan struct{}
	latched bool
	done    <-chan struct{}
}

// Acquire takes the token, blocking until one is deposited. It fails when the
// fabric is closed or the context is cancelled.
func (s *semaphore) Acquire(ctx context.Context) error {
	select {
	case <-s.done:
		return fmt.Errorf("%s: %w", s.name, ErrClosed)
	default:
	}
	select {
	case <-s.tokens:
		return nil
	case <-s.done:
		return fmt.Errorf("%s: %w", s.name, ErrClosed)
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", s.name, ctx.Err())
	}
}

// Release deposits the token without blocking.
func (s *semaphore) Release() error {
	select {
	case <-s.done:
		return fmt.Errorf("%s: %w", s.name, ErrClosed)
	default:
	}
	select {
	case s.tokens <- struct{}{}:
		return nil
	default:
		if s.latched {
			return nil
		}
		return fmt.Errorf("%s: %w", s.name, ErrSaturated)
	}
}

// invalid stands in for a semaphore requested under an out-of-range name so
// that the misuse surfaces as an error on first use instead of a panic.
type invalid struct{ name string }

func (s invalid) Acquire(context.Context) error {
	return fmt.Errorf("%s: %w", s.name, ErrUnknownName)
}

func (s invalid) Release() error {
	return fmt.Errorf("%s: %w", s.name, ErrUnknownName)
}

// Service implements fabric.Fabric with in-process token channels.
type Service struct {
	mutex        *semaphore
	requestReady *semaphore
	slotFree     *semaphore
	granted      []*semaphore
	vacated      []*semaphore
	done         chan struct{}
	closeOnce    sync.Once
}

// New creates an in-memory fabric. The mutex and the slot-free semaphores
// start signalled (the record is unlocked and the slot is writable); every
// other semaphore starts empty.
func New(config Config) *Service {
	if config.Groups <= 0 {
		config.Groups = DefaultConfig().Groups
	}
	if config.Tables <= 0 {
		config.Tables = DefaultConfig().Tables
	}
	done := make(chan struct{})
	s := &Service{
		mutex:        newSemaphore("mutex", 1, false, done),
		requestReady: newSemaphore("requestReady", 0, false, done),
		slotFree:     newSemaphore("slotFree", 1, false, done),
		granted:      make([]*semaphore, config.Groups),
		vacated:      make([]*semaphore, config.Tables),
		done:         done,
	}
	for g := range s.granted {
		s.granted[g] = newSemaphore(fmt.Sprintf("tableGranted[%d]", g), 0, false, done)
	}
	for t := range s.vacated {
		s.vacated[t] = newSemaphore(fmt.Sprintf("tableVacated[%d]", t), 0, true, done)
	}
	return s
}

func newSemaphore(name string, initial int, latched bool, done <-chan struct{}) *semaphore {
	s := &semaphore{name: name, tokens: make(chan struct{}, 1), latched: latched, done: done}
	if initial > 0 {
		s.tokens <- struct{}{}
	}
	return s
}

func (s *Service) Mutex() fabric.Semaphore        { return s.mutex }
func (s *Service) RequestReady() fabric.Semaphore { return s.requestReady }
func (s *Service) SlotFree() fabric.Semaphore     { return s.slotFree }

func (s *Service) TableGranted(group int) fabric.Semaphore {
	if group < 0 || group >= len(s.granted) {
		return invalid{name: fmt.Sprintf("tableGranted[%d]", group)}
	}
	return s.granted[group]
}

func (s *Service) TableVacated(table int) fabric.Semaphore {
	if table < 0 || table >= len(s.vacated) {
		return invalid{name: fmt.Sprintf("tableVacated[%d]", table)}
	}
	return s.vacated[table]
}

// Close releases every blocked participant with ErrClosed. It is safe to
// call more than once.
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return nil
}

// ensure Service implements the fabric.Fabric interface
var _ fabric.Fabric = (*Service)(nil)
