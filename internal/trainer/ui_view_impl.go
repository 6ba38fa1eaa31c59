package trainer

import "github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"

// UIViewImpl defines the interface for framework-specific UI implementations
type UIViewImpl interface {
	// Initialize is called after construction to set up framework-specific widgets
	// controller is used to handle UI events
	Initialize(controller *UIController)

	// SetupKeyboardHandlers sets up keyboard event handlers
	SetupKeyboardHandlers(controller *UIController)

	// Run starts the UI framework and blocks until it exits
	Run() error

	// Stop stops the UI framework
	Stop()

	// Draw refreshes/redraws the UI
	Draw() error

	// --- Mode Management ---

	SetMode(mode UIMode)
	GetCurrentMode() UIMode

	// --- Log View (shared across modes) ---

	GetLogViewHeight() int
	ClearLogView()
	WriteLogLine(line string) error

	// --- Home Mode ---

	// UpdateWeek shows the overview of a week
	UpdateWeek(state WeekState)

	// --- Workout Mode ---

	// UpdateWorkout shows the sets of the selected day
	UpdateWorkout(state WorkoutState)

	// UpdateTimer shows the rest timer, visible in every mode
	UpdateTimer(snapshot resttimer.Snapshot)
}
