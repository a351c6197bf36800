package daemon

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
	"syscall"
	"time"

	slogcontext "github.com/veqryn/slog-context"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/zerr"
)

// State is the lifecycle state of a Dispatcher.
type State int

// Dispatcher states. Terminated is absorbing.
const (
	Running State = iota
	Terminated
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// readResult is one line handed from the reader goroutine to the dispatch loop.
type readResult struct {
	line string
	err  error
}

// Dispatcher answers protocol commands read from in, one response line per query.
type Dispatcher struct {
	resolver ports.PackageResolver
	sup      *Supervisor
	in       *bufio.Reader
	out      *bufio.Writer
	poll     time.Duration

	mu    sync.Mutex
	state State
}

// NewDispatcher creates a Dispatcher. poll is how often the parent is re-checked while
// waiting for input.
func NewDispatcher(
	resolver ports.PackageResolver,
	sup *Supervisor,
	in io.Reader,
	out io.Writer,
	poll time.Duration,
) *Dispatcher {
	if poll <= 0 {
		poll = domain.DefaultOrphanPollInterval
	}
	return &Dispatcher{
		resolver: resolver,
		sup:      sup,
		in:       bufio.NewReader(in),
		out:      bufio.NewWriter(out),
		poll:     poll,
	}
}

// State returns the current lifecycle state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dispatcher) terminate() {
	d.mu.Lock()
	d.state = Terminated
	d.mu.Unlock()
}

// Serve runs the protocol loop until EOF, a blank line, orphaning, a shutdown signal or a
// fatal error. Clean endings return nil, including a shutdown that interrupts an index
// build. Protocol violations are classified with domain.ErrProtocolViolation.
func (d *Dispatcher) Serve(ctx context.Context) error {
	if d.State() == Terminated {
		return nil
	}
	defer d.terminate()

	// A supervisor shutdown also cancels the query in flight.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-d.sup.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	log := slogcontext.FromCtx(ctx)
	requests := make(chan struct{}, 1)
	lines := make(chan readResult, 1)
	defer close(requests)
	go d.readLines(requests, lines)

	ticker := time.NewTicker(d.poll)
	defer ticker.Stop()

	for {
		if d.sup.Orphaned() {
			d.sup.Shutdown(ReasonOrphaned)
		}
		select {
		case <-d.sup.Done():
			log.Debug("shutting down", "reason", d.sup.Reason())
			return nil
		default:
		}

		requests <- struct{}{}
		res, ok := d.await(ctx, ticker, lines)
		if !ok {
			log.Debug("shutting down", "reason", d.sup.Reason())
			return nil
		}

		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return zerr.Wrap(res.err, domain.ErrInputReadFailed.Error())
		}

		cmd, ok := domain.ParseCommand(res.line)
		if !ok {
			// Blank line or EOF.
			return nil
		}

		done, err := d.dispatch(ctx, cmd)
		if err != nil || done {
			return err
		}
		if res.err != nil {
			return nil
		}
	}
}

// await blocks until the next line arrives. It returns false when the daemon should stop
// instead.
func (d *Dispatcher) await(ctx context.Context, ticker *time.Ticker, lines <-chan readResult) (readResult, bool) {
	for {
		select {
		case res := <-lines:
			return res, true
		case <-d.sup.Done():
			return readResult{}, false
		case <-ctx.Done():
			d.sup.Shutdown(context.Cause(ctx).Error())
			return readResult{}, false
		case <-ticker.C:
			if d.sup.Orphaned() {
				d.sup.Shutdown(ReasonOrphaned)
				return readResult{}, false
			}
		}
	}
}

// readLines reads one line per request until requests is closed.
func (d *Dispatcher) readLines(requests <-chan struct{}, lines chan<- readResult) {
	for range requests {
		line, err := d.in.ReadString('\n')
		lines <- readResult{line: line, err: err}
		if err != nil {
			return
		}
	}
}

// dispatch handles one command and writes its response. done reports a clean stop caused
// by a shutdown during the query or a closed output pipe. Nothing is written once shutdown
// has been observed.
func (d *Dispatcher) dispatch(ctx context.Context, cmd domain.Command) (done bool, err error) {
	resp, ok, err := d.Handle(ctx, cmd)
	if d.stopping(ctx) {
		slogcontext.FromCtx(ctx).Debug("shutting down", "reason", d.sup.Reason(), "interrupted", cmd.Keyword)
		return true, nil
	}
	if err != nil || !ok {
		return false, err
	}

	// A bufio.Writer keeps its first error, so Flush reports a failed write too.
	_, _ = d.out.WriteString(resp + "\n")
	if err := d.out.Flush(); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			d.sup.Shutdown("broken pipe")
			slogcontext.FromCtx(ctx).Debug("shutting down", "reason", d.sup.Reason())
			return true, nil
		}
		return false, zerr.Wrap(err, domain.ErrResponseWriteFailed.Error())
	}
	return false, nil
}

// stopping reports whether the daemon is shutting down, recording a cancelled context as
// the shutdown reason.
func (d *Dispatcher) stopping(ctx context.Context) bool {
	if ctx.Err() != nil {
		d.sup.Shutdown(context.Cause(ctx).Error())
		return true
	}
	select {
	case <-d.sup.Done():
		return true
	default:
		return false
	}
}

// Handle executes one command and returns its response line. ok is false for commands
// without a response.
func (d *Dispatcher) Handle(ctx context.Context, cmd domain.Command) (resp string, ok bool, err error) {
	var state domain.InstallState
	switch cmd.Keyword {
	case domain.CmdWhatInstalled:
		state = domain.Installed
	case domain.CmdWhatAvailable:
		state = domain.Available
	case domain.CmdFlushCache:
		d.resolver.Flush()
		slogcontext.FromCtx(ctx).Debug("package index invalidated")
		return "", false, nil
	default:
		return "", false, protocolError(domain.ErrUnknownCommand, cmd)
	}

	if cmd.Spec == "" {
		return "", false, protocolError(domain.ErrMissingArgument, cmd)
	}

	ctx = slogcontext.With(ctx, "command", cmd.Keyword, "spec", cmd.Spec)
	pkg, err := d.resolver.Resolve(ctx, cmd.Spec, state)
	if err != nil {
		return "", false, err
	}
	if pkg == nil {
		return domain.FormatNoMatch(cmd.Lead), true, nil
	}
	return domain.FormatMatch(pkg), true, nil
}

func protocolError(sentinel error, cmd domain.Command) error {
	return errors.Join(domain.ErrProtocolViolation, zerr.With(sentinel, "command", cmd.Keyword))
}
