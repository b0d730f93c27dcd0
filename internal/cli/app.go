package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/userregistry/internal/config"
	"github.com/dmitrijs2005/userregistry/internal/cryptox"
	"github.com/dmitrijs2005/userregistry/internal/logging"
	"github.com/dmitrijs2005/userregistry/internal/registry"
)

type App struct {
	logger   logging.Logger
	registry *registry.Registry
	input    io.Reader
	reader   *bufio.Reader
	out      io.Writer
}

// NewApp wires the logger, the password hasher and an empty registry.
// Logs go to stderr so they do not interleave with REPL output.
func NewApp(c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogLevel, c.LogFormat, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	hasher, err := cryptox.NewPasswordHasher(c.HashParams())
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	return newApp(logger, registry.New(hasher, logger), os.Stdin, os.Stdout), nil
}

func newApp(logger logging.Logger, reg *registry.Registry, in io.Reader, out io.Writer) *App {
	return &App{
		logger:   logger,
		registry: reg,
		input:    in,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the REPL until the user leaves or a termination signal arrives.
//
// On cancellation the input is closed when it is an io.Closer so the REPL
// goroutine unblocks. A read blocked on a terminal stdin may outlive Run;
// the process is expected to exit right after.
func (a *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	a.logger.Info(ctx, "Starting registry...")
	a.initSignalHandler(cancelFunc)

	fmt.Fprintln(a.out, "User registry (type 'help' for commands)")

	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.reader, a.out)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	if ctx.Err() != nil {
		if c, ok := a.input.(io.Closer); ok {
			_ = c.Close()
		}
	}

	a.logger.Info(ctx, "Registry stopped", "users", a.registry.Len())
}
