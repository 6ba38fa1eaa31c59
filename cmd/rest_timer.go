package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/rivo/tview"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/config"
	"github.com/lowaak/smart-trainer/rest-timer-app/internal/program"
	"github.com/lowaak/smart-trainer/rest-timer-app/internal/progress"
	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
	"github.com/lowaak/smart-trainer/rest-timer-app/internal/trainer"
)

const uiLogBufferSize = 1000

// uiLogWriter forwards each log line to the UI log pane. Lines are dropped
// when the UI falls behind so logging never blocks.
type uiLogWriter struct {
	lines chan<- string
}

func (w uiLogWriter) Write(p []byte) (int, error) {
	select {
	case w.lines <- string(p):
	default:
	}
	return len(p), nil
}

func main() {
	flags := pflag.NewFlagSet("rest-timer", pflag.ExitOnError)
	config.RegisterFlags(flags)
	must("parse flags", flags.Parse(os.Args[1:]))

	cfg, err := config.Load(flags)
	must("load config", err)

	must("create log directory", os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755))
	logFile := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	}

	uiLogChan := make(chan string, uiLogBufferSize)
	logger := log.New(io.MultiWriter(logFile, uiLogWriter{lines: uiLogChan}), "", log.Ltime)

	trainingProgram, err := loadProgram(cfg)
	must("load program", err)
	logger.Printf("Main: loaded program %q with %d weeks", trainingProgram.Name, len(trainingProgram.Weeks))

	store := progress.NewStore(cfg.ProgressFile, logger)
	clock := resttimer.NewTickerClock(cfg.TickInterval, logger)
	timer := resttimer.NewController(clock, logger)

	model := trainer.NewUIModel(logger, uiLogChan)
	workoutManager := trainer.NewWorkoutManager(trainer.NewWorkoutManagerArg{
		Model:     model,
		Program:   trainingProgram,
		Store:     store,
		Timer:     timer,
		StartWeek: cfg.StartWeek,
		Logger:    logger,
	})
	controller := trainer.NewUIController(model, workoutManager, timer, cfg.AdjustStepSeconds, logger)

	app := tview.NewApplication()
	view := trainer.NewBaseUIView(trainer.NewBaseUIViewArg{
		UIViewImpl:   trainer.NewCursesUIView(logger, app),
		UIModel:      model,
		UIController: controller,
		Logger:       logger,
	})

	logger.Println("Main: press Enter on a day to start, Esc to quit")
	runErr := view.Run()

	view.Shutdown()
	controller.Shutdown()
	model.Shutdown()
	logFile.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "rest-timer: %v\n", runErr)
		os.Exit(1)
	}
}

func loadProgram(cfg *config.Config) (*program.Program, error) {
	opts := program.WithDefaults(cfg.DefaultSets, cfg.DefaultRestSeconds)
	if cfg.ProgramFile == "" {
		return program.Default(opts)
	}
	return program.Load(cfg.ProgramFile, opts)
}

func must(action string, err error) {
	if err != nil {
		panic("failed to " + action + ": " + err.Error())
	}
}
