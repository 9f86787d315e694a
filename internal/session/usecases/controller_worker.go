package usecases

import (
	"context"
	"log/slog"
	"time"

	"leverbox/internal/infra/async"
)

var _ async.Worker = (*ControllerWorker)(nil)

// ControllerWorker is the control loop of one box. Every tick it samples a
// single clock value and runs, in order, the input update, the gesture
// decoder and one task engine step.
type ControllerWorker struct {
	ticker    *time.Ticker
	apparatus Apparatus
	decoder   GestureDecoder
	engine    TaskEngine
	board     *StatusBoard
	slowTick  time.Duration
}

// NewControllerWorker builds the loop. Ticks that take longer than slowTick
// are logged; decoder may be nil for boxes without a remote.
func NewControllerWorker(
	ticker *time.Ticker,
	apparatus Apparatus,
	decoder GestureDecoder,
	engine TaskEngine,
	board *StatusBoard,
	slowTick time.Duration,
) *ControllerWorker {
	return &ControllerWorker{
		ticker:    ticker,
		apparatus: apparatus,
		decoder:   decoder,
		engine:    engine,
		board:     board,
		slowTick:  slowTick,
	}
}

func (w *ControllerWorker) Run(ctx context.Context, done func()) {
	defer done()
	defer w.release()

	start := time.Now()
	slog.Info("control loop started")

	for {
		select {
		case <-ctx.Done():
			slog.Info("control loop cancelled")
			return
		case <-w.ticker.C:
			w.Tick(time.Since(start))
		}
	}
}

// Tick runs one control loop iteration at session time now.
func (w *ControllerWorker) Tick(now time.Duration) {
	began := time.Now()

	edges := w.apparatus.Update(now)
	if w.decoder != nil {
		w.decoder.Update(now, edges.Remote, edges.RemoteChanged)
	}
	w.engine.Tick(now)
	w.board.Store(w.engine.Snapshot())

	if elapsed := time.Since(began); w.slowTick > 0 && elapsed > w.slowTick {
		slog.Warn("slow control loop tick", slog.Duration("elapsed", elapsed), slog.Duration("session_time", now))
	}
}

func (w *ControllerWorker) Shutdown() {
	slog.Info("control loop shutdown")
	w.ticker.Stop()
}

func (w *ControllerWorker) release() {
	if err := w.apparatus.Close(); err != nil {
		slog.Error("releasing apparatus", slog.Any("error", err))
	}
}
