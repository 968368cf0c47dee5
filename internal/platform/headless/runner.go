// Package headless runs game sessions without a display. The runner owns the
// scheduler and the wall-clock stopwatch, steers the snake with the autopilot
// and reports score and timing when the run ends. It exists for soak runs,
// benchmarks and the simulate command.
package headless

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"combosnake/internal/config"
	"combosnake/internal/engine"
	"combosnake/internal/game"
	"combosnake/internal/registry"
)

// RunnerConfig controls a headless run.
type RunnerConfig struct {
	// Mode is the registered game mode to play.
	Mode string

	// Seed feeds the mode's food placement. Runs with the same seed and
	// config place food identically.
	Seed int64

	// MaxDuration bounds the run in simulated time. 0 plays until the
	// snake dies.
	MaxDuration time.Duration

	// SnapshotPath, when set, is where the session is saved when the run
	// ends.
	SnapshotPath string

	// ResumePath, when set, is a session snapshot to restore before the
	// run starts.
	ResumePath string

	// LogPerf emits a log line for every scheduler performance report.
	LogPerf bool
}

// DefaultRunnerConfig returns a combo-mode run seeded from the wall clock.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Mode: game.ModeCombo,
		Seed: time.Now().UnixNano(),
	}
}

// RunReport summarizes a finished run.
type RunReport struct {
	SessionID string           `json:"session_id"`
	Mode      string           `json:"mode"`
	Score     engine.GameScore `json:"score"`
	Speed     time.Duration    `json:"final_speed"`
	Level     int              `json:"speed_level"`
	Elapsed   time.Duration    `json:"elapsed"`
	Wall      time.Duration    `json:"wall"`
	Ticks     uint64           `json:"ticks"`
	GameOver  bool             `json:"game_over"`
	EndedBy   string           `json:"ended_by,omitempty"`
}

// Runner drives one session to completion.
type Runner struct {
	cfg    RunnerConfig
	logger *log.Logger

	sess  registry.Session
	auto  *game.Session
	pilot game.AutoPilot

	sched *engine.Scheduler
	watch engine.Stopwatch

	mu    sync.Mutex
	ticks uint64
}

// New builds a runner for the configured mode. The logger may be nil, in
// which case one writing to stderr is created.
func New(cfg RunnerConfig, gameCfg config.GameConfig, logger *log.Logger) (*Runner, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "combosnake",
		})
	}

	mode, err := registry.Lookup(cfg.Mode)
	if err != nil {
		return nil, err
	}
	sess, err := mode.NewSession(gameCfg, cfg.Seed)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:    cfg,
		logger: logger,
		sess:   sess,
	}
	// The autopilot needs the concrete session for board access.
	if gs, ok := sess.(*game.Session); ok {
		r.auto = gs
	}

	if cfg.ResumePath != "" {
		data, err := os.ReadFile(cfg.ResumePath)
		if err != nil {
			return nil, fmt.Errorf("headless: read snapshot: %w", err)
		}
		if err := sess.Import(data); err != nil {
			return nil, err
		}
		logger.Info("session resumed",
			"path", cfg.ResumePath,
			"session", sess.SessionID(),
			"score", sess.Score().CurrentScore,
		)
	}

	r.sched = engine.NewScheduler(gameCfg.Scheduler, gameCfg.Clock, engine.Callbacks{
		OnUpdate: r.onUpdate,
		OnPerf:   r.onPerf,
	})
	return r, nil
}

func (r *Runner) onUpdate(delta time.Duration) {
	if r.auto != nil {
		r.pilot.Steer(r.auto)
	}
	r.sess.Tick(delta)

	r.mu.Lock()
	r.ticks++
	r.mu.Unlock()

	if r.sess.IsOver() {
		r.sched.Stop()
		return
	}
	if r.cfg.MaxDuration > 0 && r.sess.Elapsed() >= r.cfg.MaxDuration {
		r.logger.Info("time limit reached", "elapsed", r.sess.Elapsed())
		r.sched.Stop()
	}
}

func (r *Runner) onPerf(stats engine.PerfStats) {
	if !r.cfg.LogPerf {
		return
	}
	r.logger.Info("perf",
		"fps", fmt.Sprintf("%.1f", stats.FPS),
		"target", fmt.Sprintf("%.0f", stats.TargetFPS),
		"stable", stats.Stable,
		"updates", stats.Updates,
		"ticks", stats.Ticks,
	)
}

// Run plays the session until it ends, the simulated time limit is reached
// or ctx is canceled. It blocks for the whole run.
func (r *Runner) Run(ctx context.Context) (RunReport, error) {
	r.logger.Info("run started",
		"mode", r.cfg.Mode,
		"session", r.sess.SessionID(),
		"seed", r.cfg.Seed,
	)

	r.watch.Start(time.Now())
	r.sched.Start()

	select {
	case <-ctx.Done():
		r.sched.Stop()
		<-r.sched.Done()
	case <-r.sched.Done():
	}
	r.watch.Stop(time.Now())

	report := r.report()
	r.logger.Info("run finished",
		"session", report.SessionID,
		"score", report.Score.CurrentScore,
		"combos", report.Score.TotalCombos,
		"elapsed", report.Elapsed,
		"wall", report.Wall,
		"game_over", report.GameOver,
	)

	if r.cfg.SnapshotPath != "" {
		if err := r.save(); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (r *Runner) report() RunReport {
	r.mu.Lock()
	ticks := r.ticks
	r.mu.Unlock()

	report := RunReport{
		SessionID: r.sess.SessionID(),
		Mode:      r.cfg.Mode,
		Score:     r.sess.Score(),
		Speed:     r.sess.CurrentSpeed(),
		Elapsed:   r.sess.Elapsed(),
		Wall:      r.watch.Elapsed(time.Now()),
		Ticks:     ticks,
		GameOver:  r.sess.IsOver(),
	}
	if r.auto != nil {
		report.Level = r.auto.SpeedLevel()
		if ended := r.auto.EndedBy(); ended.HasCollision {
			report.EndedBy = ended.Details
		}
	}
	return report
}

func (r *Runner) save() error {
	data, err := r.sess.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(r.cfg.SnapshotPath, data, 0o600); err != nil {
		return fmt.Errorf("headless: write snapshot: %w", err)
	}
	r.logger.Info("session saved", "path", r.cfg.SnapshotPath)
	return nil
}

// Session exposes the underlying session, mainly for tests.
func (r *Runner) Session() registry.Session { return r.sess }
