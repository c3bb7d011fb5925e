// Package app wires configuration, the NPC roster, the readiness coordinator,
// the probe server and the terminal presentation into one run.
package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/npcready/internal/cli"
	"github.com/agbru/npcready/internal/config"
	apperrors "github.com/agbru/npcready/internal/errors"
	"github.com/agbru/npcready/internal/logging"
	"github.com/agbru/npcready/internal/metrics"
	"github.com/agbru/npcready/internal/npc"
	"github.com/agbru/npcready/internal/orchestration"
	"github.com/agbru/npcready/internal/server"
	"github.com/agbru/npcready/internal/ui"
)

// Application represents one npcready run.
type Application struct {
	Config    config.AppConfig
	Roster    *config.Roster
	Clock     clockwork.Clock
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithClock sets the clock driving the deadline and the simulated subsystems.
func WithClock(c clockwork.Clock) AppOption {
	return func(a *Application) { a.Clock = c }
}

// WithLogger sets the structured logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates an application for a resolved configuration. A nil roster
// selects the built-in NPC roster.
func New(cfg config.AppConfig, roster *config.Roster, errWriter io.Writer, opts ...AppOption) *Application {
	app := &Application{Config: cfg, Roster: roster, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Roster == nil {
		app.Roster = npc.DefaultRoster()
	}
	if app.Clock == nil {
		app.Clock = clockwork.NewRealClock()
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "npcready")
	}
	return app
}

// Run performs one readiness attempt and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if level, err := zerolog.ParseLevel(a.Config.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}
	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	roster := npc.Build(a.Roster, a.Clock)
	roster.SetLogger(a.Logger)
	exporter := metrics.NewCoordination()
	observers := []orchestration.Observer{exporter}
	if !a.Config.Quiet {
		observers = append(observers, cli.NewReadinessProgress(out))
		cli.PrintRunConfig(a.Config, roster.Entity, roster.Names(), out)
	}

	ctrl := npc.NewController(roster, []orchestration.Option{
		orchestration.WithClock(a.Clock),
		orchestration.WithLogger(a.Logger),
		orchestration.WithObserver(orchestration.Observers(observers...)),
	}, npc.WithDeadline(a.Config.Deadline))

	var outcome orchestration.Outcome
	g, gctx := errgroup.WithContext(ctx)
	serverCtx, stopServer := context.WithCancel(gctx)
	defer stopServer()

	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, ctrl.Coordinator(), exporter.Registry(), a.Logger)
		g.Go(func() error {
			if err := srv.Run(serverCtx); err != nil {
				return fmt.Errorf("probe server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		o, err := a.coordinate(gctx, ctrl)
		if err != nil {
			stopServer()
			return err
		}
		outcome = o
		a.present(roster.Entity, o, out)
		if a.Config.Hold {
			a.Logger.Info("holding probe server until interrupted", logging.String("addr", a.Config.MetricsAddr))
		} else {
			stopServer()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return cli.HandleError(err, a.ErrWriter)
	}
	return apperrors.ExitCode(outcome.Err())
}

func (a *Application) coordinate(ctx context.Context, ctrl *npc.Controller) (orchestration.Outcome, error) {
	if err := ctrl.Initialize(ctx); err != nil {
		return orchestration.Outcome{}, err
	}
	return ctrl.Wait(ctx)
}

func (a *Application) present(entity string, o orchestration.Outcome, out io.Writer) {
	if a.Config.Quiet {
		fmt.Fprintln(out, cli.FormatQuietOutcome(entity, o))
		return
	}
	fmt.Fprintln(out)
	cli.PresentOutcome(entity, o, out)
}
