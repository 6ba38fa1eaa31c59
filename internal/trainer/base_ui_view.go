package trainer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/go_func_utils"
)

const logResizePollInterval = 100 * time.Millisecond

// BaseUIView connects a UIViewImpl to the UIModel. It renders what the model
// holds once, then re-renders each part of the screen when it changes.
type BaseUIView struct {
	impl   UIViewImpl
	model  *UIModel
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBaseUIViewArg holds the arguments for creating a new BaseUIView
type NewBaseUIViewArg struct {
	UIViewImpl   UIViewImpl
	UIModel      *UIModel
	UIController *UIController
	Logger       *log.Logger
}

func NewBaseUIView(args NewBaseUIViewArg) *BaseUIView {
	switch {
	case args.Logger == nil:
		panic("BaseUIView: logger cannot be nil")
	case args.UIViewImpl == nil:
		panic("BaseUIView: UIViewImpl cannot be nil")
	case args.UIModel == nil:
		panic("BaseUIView: UIModel cannot be nil")
	case args.UIController == nil:
		panic("BaseUIView: UIController cannot be nil")
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &BaseUIView{
		impl:   args.UIViewImpl,
		model:  args.UIModel,
		logger: args.Logger,
		ctx:    ctx,
		cancel: cancel,
	}

	v.impl.Initialize(args.UIController)
	v.impl.SetupKeyboardHandlers(args.UIController)

	v.impl.SetMode(v.model.GetUIState().Mode)
	v.impl.UpdateWeek(v.model.GetWeekState())
	v.impl.UpdateWorkout(v.model.GetWorkoutState())
	v.impl.UpdateTimer(v.model.GetTimerSnapshot())
	v.refreshLogs()

	follow(v, "BaseUIView.uiState", v.model.ListenToUIState, func(s UIState) { v.impl.SetMode(s.Mode) })
	follow(v, "BaseUIView.weekState", v.model.ListenToWeekState, v.impl.UpdateWeek)
	follow(v, "BaseUIView.workoutState", v.model.ListenToWorkoutState, v.impl.UpdateWorkout)
	follow(v, "BaseUIView.timer", v.model.ListenToTimer, v.impl.UpdateTimer)
	// The pane shows the tail that fits, so any new line means a refill
	follow(v, "BaseUIView.log", v.model.ListenToLog, func(string) { v.refreshLogs() })

	v.spawn("BaseUIView.close", v.stopOnCloseRequest)
	v.spawn("BaseUIView.logResize", v.refillLogsOnResize)

	return v
}

func (v *BaseUIView) spawn(name string, fn func()) {
	v.wg.Add(1)
	go_func_utils.SafeGo(v.logger, name, func() {
		defer v.wg.Done()
		fn()
	})
}

// follow renders the values published by one model event until Shutdown.
// Values that arrive while rendering collapse into the newest one.
func follow[T any](v *BaseUIView, name string, listen func(chan T) func(), render func(T)) {
	ch := make(chan T, 1)
	unregister := listen(ch)
	v.spawn(name, func() {
		defer unregister()
		for {
			select {
			case <-v.ctx.Done():
				return
			case value := <-ch:
				render(value)
				v.redraw()
			}
		}
	})
}

func (v *BaseUIView) stopOnCloseRequest() {
	ch := make(chan struct{}, 1)
	defer v.model.ListenToCloseApplication(ch)()
	select {
	case <-v.ctx.Done():
	case <-ch:
		v.impl.Stop()
	}
}

// refillLogsOnResize polls the log pane height; tview has no resize callback per widget
func (v *BaseUIView) refillLogsOnResize() {
	ticker := time.NewTicker(logResizePollInterval)
	defer ticker.Stop()

	lastHeight := 0
	for {
		select {
		case <-v.ctx.Done():
			return
		case <-ticker.C:
			if h := v.impl.GetLogViewHeight(); h > 0 && h != lastHeight {
				lastHeight = h
				v.refreshLogs()
				v.redraw()
			}
		}
	}
}

func (v *BaseUIView) refreshLogs() {
	height := v.impl.GetLogViewHeight()
	if height <= 0 {
		return
	}
	v.impl.ClearLogView()
	for _, line := range v.model.GetLogTail(height) {
		if err := v.impl.WriteLogLine(line); err != nil {
			v.logger.Printf("BaseUIView: log pane write failed: %v", err)
			return
		}
	}
}

func (v *BaseUIView) redraw() {
	if err := v.impl.Draw(); err != nil {
		v.logger.Printf("BaseUIView: draw failed: %v", err)
	}
}

// Run blocks until the UI exits
func (v *BaseUIView) Run() error {
	return v.impl.Run()
}

// Shutdown stops every listener goroutine and waits for them
func (v *BaseUIView) Shutdown() {
	v.logger.Println("BaseUIView: Shutting down")
	v.cancel()
	v.wg.Wait()
	v.logger.Println("BaseUIView: Shutdown complete")
}
