package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	reactiontime "github.com/daiboyi110/ReactionTime"
	"github.com/daiboyi110/ReactionTime/internal/i18n"
	"github.com/daiboyi110/ReactionTime/internal/production"
	"github.com/daiboyi110/ReactionTime/internal/ui"
	"github.com/daiboyi110/ReactionTime/realtime"
)

var startMode string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play reaction-time trials (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd.Context())
	},
}

func init() {
	playCmd.Flags().StringVarP(&startMode, "mode", "m", "", "Starting mode: simple, reach, choice, go-no-go")
}

// game routes UI inputs through the runtime and reads state from the machine.
type game struct {
	rt *realtime.Runtime
	m  *reactiontime.Machine
}

func (g game) Send(in reactiontime.Input) error {
	return g.rt.Send(in)
}

func (g game) Snapshot() reactiontime.Change {
	return g.m.Snapshot()
}

func runPlay(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	trialCfg, err := cfg.TrialConfig()
	if err != nil {
		return err
	}
	if startMode != "" {
		if trialCfg.Mode, err = reactiontime.ParseMode(startMode); err != nil {
			return err
		}
	}
	tickRate, err := cfg.GetTickRate()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", zap.Error(err))
		}
	}()

	rt := realtime.NewRuntime(realtime.Config{
		TickRate:         tickRate,
		MaxEventsPerTick: cfg.Runtime.MaxEventsPerTick,
		Logger:           logger,
	})
	changes := make(chan reactiontime.Change, 64)
	machine, err := reactiontime.NewMachine(trialCfg,
		reactiontime.WithScheduler(rt),
		reactiontime.WithRecorder(store),
		reactiontime.WithPublisher(production.NewChannelPublisher(changes)),
		reactiontime.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.Options{
		Game:      game{rt: rt, m: machine},
		Stats:     store,
		Changes:   changes,
		Localizer: i18n.New(cfg.UI.Language),
		Playfield: trialCfg.Playfield,
		NoColor:   cfg.UI.NoColor,
	})

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	if err := rt.Start(gctx, machine); err != nil {
		return err
	}
	logger.Info("session started",
		zap.Stringer("mode", trialCfg.Mode),
		zap.String("store", cfg.Store.Backend))

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(gctx))
	g.Go(func() error {
		defer stop()
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		return rt.Stop()
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("session ended")
	return nil
}
