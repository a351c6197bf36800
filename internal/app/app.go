// Package app implements the application layer for sackd.
package app

import (
	"context"
	"io"
	"os"
	"strings"

	"go.trai.ch/sackd/internal/adapters/daemon"
	"go.trai.ch/sackd/internal/adapters/detector"
	"go.trai.ch/sackd/internal/core/domain"
	"go.trai.ch/sackd/internal/core/ports"
	"go.trai.ch/sackd/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	detector     ports.ArchDetector
	factory      ports.LoaderFactory
	supervisor   *daemon.Supervisor
	stdin        io.Reader
	stdout       io.Writer
}

// New creates a new App instance reading commands from os.Stdin and answering on
// os.Stdout.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	detector ports.ArchDetector,
	factory ports.LoaderFactory,
	supervisor *daemon.Supervisor,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		detector:     detector,
		factory:      factory,
		supervisor:   supervisor,
		stdin:        os.Stdin,
		stdout:       os.Stdout,
	}
}

// WithIO replaces the protocol streams. This is primarily used for testing.
func (a *App) WithIO(in io.Reader, out io.Writer) *App {
	a.stdin = in
	a.stdout = out
	return a
}

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	ConfigPath string
}

// Serve runs the line protocol on the app's streams until the peer hangs up.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	a.supervisor.Start()
	defer a.supervisor.Stop()

	ctx, cfg, res, err := a.prepare(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	if f, ok := a.stdin.(*os.File); ok && detector.Interactive(f) {
		a.logger.Info("reading commands from a terminal, enter a blank line to exit")
	}

	d := daemon.NewDispatcher(res, a.supervisor, a.stdin, a.stdout, cfg.OrphanPollInterval)
	return d.Serve(ctx)
}

// QueryOptions configuration for the Query method.
type QueryOptions struct {
	ConfigPath string
	Keyword    string
	Args       []string
}

// Query answers a single protocol command and writes the response line to the app's
// output.
func (a *App) Query(ctx context.Context, opts QueryOptions) error {
	cmd, ok := domain.ParseCommand(opts.Keyword + " " + strings.Join(opts.Args, " "))
	if !ok {
		return domain.ErrMissingArgument
	}

	ctx, cfg, res, err := a.prepare(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	d := daemon.NewDispatcher(res, a.supervisor, strings.NewReader(""), a.stdout, cfg.OrphanPollInterval)
	resp, ok, err := d.Handle(ctx, cmd)
	if err != nil || !ok {
		return err
	}
	if _, err := io.WriteString(a.stdout, resp+"\n"); err != nil {
		return zerr.Wrap(err, domain.ErrResponseWriteFailed.Error())
	}
	return nil
}

// prepare loads the configuration, applies the log settings and builds the resolver.
// The index itself is built lazily on the first query.
func (a *App) prepare(ctx context.Context, configPath string) (context.Context, *domain.Config, *resolver.Resolver, error) {
	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return ctx, nil, nil, err
	}

	if err := a.logger.Configure(cfg.Log); err != nil {
		return ctx, nil, nil, err
	}
	ctx = a.logger.Attach(ctx)

	resolved := *cfg
	if resolved.Arch == "" {
		arch, err := a.detector.DetectArch()
		if err != nil {
			return ctx, nil, nil, err
		}
		resolved.Arch = arch
	}

	loader, err := a.factory.NewLoader(&resolved)
	if err != nil {
		return ctx, nil, nil, err
	}

	a.logger.Debug("configuration loaded",
		"arch", resolved.Arch,
		"repos", len(resolved.Repos),
		"reposdirs", resolved.ReposDirs,
	)
	return ctx, &resolved, resolver.New(resolver.NewHandle(loader), resolved.Arch), nil
}
