package main

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"leverbox/internal/apparatus/audio"
	"leverbox/internal/apparatus/domain"
	"leverbox/internal/apparatus/gesture"
	"leverbox/internal/apparatus/hardware"
	"leverbox/internal/apparatus/input"
	"leverbox/internal/apparatus/synclink"
	"leverbox/internal/apparatus/task"
	"leverbox/internal/logger"

	"github.com/spf13/pflag"
)

// animal pulls the lever of one box on a fixed schedule.
type animal struct {
	backend *hardware.SimulatedBackend
	period  time.Duration
	offset  time.Duration
}

func (a animal) act(now time.Duration) {
	if now < a.offset {
		return
	}
	switch phase := (now - a.offset) % a.period; {
	case phase < 200*time.Millisecond:
		a.backend.SetLever(true, false)
	case phase < 400*time.Millisecond:
		a.backend.SetLever(false, true)
	default:
		a.backend.SetLever(false, false)
	}
}

type demoBox struct {
	name      string
	apparatus *hardware.Apparatus
	decoder   *gesture.Decoder
	engine    *task.Engine
	animal    animal
}

func (b *demoBox) tick(now time.Duration) {
	b.animal.act(now)
	edges := b.apparatus.Update(now)
	b.decoder.Update(now, edges.Remote, edges.RemoteChanged)
	b.engine.Tick(now)
}

func newDemoBox(role domain.Role, link synclink.Link, seed uint64, a animal, log logger.Logger) (*demoBox, error) {
	settings := task.DefaultSettings(role)
	windows := input.Windows{Lever: 100 * time.Millisecond, Remote: 100 * time.Millisecond}
	apparatus := hardware.New(a.backend, windows, hardware.DefaultTiming(), log)
	decoder := gesture.NewDecoder(gesture.Timing{LongPress: 500 * time.Millisecond, Gap: 500 * time.Millisecond}, log)

	observer := task.ObserverFunc(func(event domain.Event) {
		if event.Kind == domain.EventStateChanged {
			return
		}
		slog.Info("event",
			slog.String("box", role.String()),
			slog.String("kind", string(event.Kind)),
			slog.Duration("at", event.At),
			slog.Int("synch_pulls", event.SynchPullCount),
			slog.Int("goal", event.Goal),
		)
	})

	engine, err := task.New(settings, task.Ports{
		Apparatus: apparatus,
		Tones:     audio.NewPlayer(audio.DefaultCatalog(1), nil, true, log),
		Peer:      synclink.NewEndpoint(link, synclink.DefaultMaxAttempts, log),
		Gestures:  decoder,
		Observer:  observer,
		Rand:      rand.New(rand.NewPCG(seed, seed)),
		Log:       log,
	})
	if err != nil {
		return nil, err
	}

	return &demoBox{
		name:      role.String(),
		apparatus: apparatus,
		decoder:   decoder,
		engine:    engine,
		animal:    a,
	}, nil
}

func main() {
	flags := pflag.NewFlagSet("demo", pflag.ExitOnError)
	duration := flags.Duration("duration", 2*time.Minute, "simulated session length")
	lag := flags.Duration("lag", 1500*time.Millisecond, "how long the slave animal pulls after the master animal")
	seed := flags.Uint64("seed", 1, "random seed for goal draws")
	level := flags.String("log-level", "warn", "apparatus trace level")
	_ = flags.Parse(os.Args[1:])

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
	)
	slog.Info("simulated paired session starting", slog.Duration("duration", *duration), slog.Duration("lag", *lag))

	log := logger.New(logger.Options{Level: *level})
	masterLink, slaveLink := synclink.NewMemoryPair(0)

	master, err := newDemoBox(domain.RoleMaster, masterLink, *seed,
		animal{backend: hardware.NewSimulatedBackend(), period: 8 * time.Second, offset: time.Second}, log)
	if err != nil {
		slog.Error("building master", slog.Any("error", err))
		os.Exit(1)
	}
	slave, err := newDemoBox(domain.RoleSlave, slaveLink, *seed+1,
		animal{backend: hardware.NewSimulatedBackend(), period: 8 * time.Second, offset: time.Second + *lag}, log)
	if err != nil {
		slog.Error("building slave", slog.Any("error", err))
		os.Exit(1)
	}

	for now := time.Duration(0); now <= *duration; now += time.Millisecond {
		master.tick(now)
		slave.tick(now)
	}

	for _, box := range []*demoBox{master, slave} {
		snapshot := box.engine.Snapshot()
		slog.Info("session finished",
			slog.String("box", box.name),
			slog.String("state", snapshot.State.String()),
			slog.Int("total_synch_pulls", snapshot.TotalSynchPullCount),
			slog.Int("dispensed_units", box.apparatus.DispensedUnits()),
		)
	}
}
