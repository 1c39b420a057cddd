package controller

import "sync/atomic"

// StopSignal is polled by the engine once per control cycle
type StopSignal interface {
	Stopped() bool
}

// Stopper is a StopSignal that can be triggered from any goroutine,
// f.ex. a signal handler. Only the supervisor should call Stop.
type Stopper struct {
	stopped atomic.Bool
}

func NewStopper() *Stopper {
	return &Stopper{}
}

func (s *Stopper) Stop() {
	s.stopped.Store(true)
}

func (s *Stopper) Stopped() bool {
	return s.stopped.Load()
}
