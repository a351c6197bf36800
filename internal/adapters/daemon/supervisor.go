// Package daemon runs the line protocol loop and watches the process environment.
package daemon

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// initPID is the pid orphaned processes are reparented to.
const initPID = 1

// Shutdown reasons not caused by a signal.
const (
	ReasonOrphaned = "parent exited"
	ReasonStopped  = "stopped"
)

// shutdownSignals all end the daemon cleanly.
var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGHUP,
	syscall.SIGPIPE,
	syscall.SIGCHLD,
	syscall.SIGTERM,
}

// Supervisor tracks the parent process and converts termination signals into a single
// shutdown notification.
type Supervisor struct {
	getppid func() int
	ppid    int

	signals      chan os.Signal
	shutdownChan chan struct{}
	shutdownOnce sync.Once

	mu     sync.Mutex
	reason string
}

// NewSupervisor records the current parent pid.
func NewSupervisor() *Supervisor {
	return newSupervisor(os.Getppid)
}

func newSupervisor(getppid func() int) *Supervisor {
	return &Supervisor{
		getppid:      getppid,
		ppid:         getppid(),
		signals:      make(chan os.Signal, 1),
		shutdownChan: make(chan struct{}),
	}
}

// Orphaned reports whether the parent that started the daemon is gone.
func (s *Supervisor) Orphaned() bool {
	ppid := s.getppid()
	return ppid == initPID || ppid != s.ppid
}

// Start subscribes to the shutdown signals.
func (s *Supervisor) Start() {
	signal.Notify(s.signals, shutdownSignals...)
	go s.watch()
}

func (s *Supervisor) watch() {
	select {
	case sig := <-s.signals:
		s.Shutdown(sig.String())
	case <-s.shutdownChan:
	}
}

// Stop unsubscribes from signals and releases the watcher.
func (s *Supervisor) Stop() {
	signal.Stop(s.signals)
	s.Shutdown(ReasonStopped)
}

// Shutdown closes Done (idempotent). Only the first reason is kept.
func (s *Supervisor) Shutdown(reason string) {
	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		s.reason = reason
		s.mu.Unlock()
		close(s.shutdownChan)
	})
}

// Done returns a channel that closes when shutdown is triggered.
func (s *Supervisor) Done() <-chan struct{} {
	return s.shutdownChan
}

// Reason returns why the supervisor shut down, or "" while running.
func (s *Supervisor) Reason() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}
