package trainer

import "github.com/lowaak/smart-trainer/rest-timer-app/internal/program"

// UIMode represents the current UI mode/screen
type UIMode int

const (
	UIModeHome    UIMode = iota // Week overview and day selection
	UIModeWorkout               // Sets of the selected day and the rest timer
)

// UIModeInfo contains display information for a UI mode
type UIModeInfo struct {
	Mode        UIMode
	DisplayName string
	KeyBinding  rune // The number key to activate this mode (1-9)
}

// AllUIModes defines all available UI modes in order
var AllUIModes = []UIModeInfo{
	{Mode: UIModeHome, DisplayName: "Home", KeyBinding: '1'},
	{Mode: UIModeWorkout, DisplayName: "Workout", KeyBinding: '2'},
}

// GetUIModeByKey returns the mode for a given key binding
func GetUIModeByKey(key rune) (UIMode, bool) {
	for _, info := range AllUIModes {
		if info.KeyBinding == key {
			return info.Mode, true
		}
	}
	return 0, false
}

// GetUIModeInfo returns the info for a given mode
func GetUIModeInfo(mode UIMode) (UIModeInfo, bool) {
	for _, info := range AllUIModes {
		if info.Mode == mode {
			return info, true
		}
	}
	return UIModeInfo{}, false
}

// Key bindings shared by every mode
const (
	KeyPreviousWeek = '['
	KeyNextWeek     = ']'
	KeyPauseResume  = ' '
	KeySkipRest     = 's'
	KeyAddRest      = '+'
	KeyRemoveRest   = '-'
	KeyStopRest     = 'x'
	KeyResetDay     = 'r'
)

// DaySummary is one line of the week overview
type DaySummary struct {
	Name            string
	Location        string
	Title           string
	DurationMinutes int
	ExerciseCount   int
	TotalSets       int
	CompletedSets   int
}

// WeekState holds what the home screen shows for the current week
type WeekState struct {
	Number    int
	Block     int
	Technique string
	Deload    bool
	Days      []DaySummary
	HasPrev   bool
	HasNext   bool
}

// WorkoutStatus represents the progress of the selected day
type WorkoutStatus int

const (
	WorkoutStatusNone       WorkoutStatus = iota // No day selected
	WorkoutStatusNotStarted                      // Day selected, no set done
	WorkoutStatusInProgress                      // Some sets done
	WorkoutStatusCompleted                       // Every set done
)

func (s WorkoutStatus) String() string {
	switch s {
	case WorkoutStatusNotStarted:
		return "not started"
	case WorkoutStatusInProgress:
		return "in progress"
	case WorkoutStatusCompleted:
		return "completed"
	default:
		return "none"
	}
}

// SetRef points at one set of the selected day (both 0-based)
type SetRef struct {
	Exercise int
	Set      int
}

// WorkoutState holds what the workout screen shows for the selected day
type WorkoutState struct {
	Status    WorkoutStatus
	Week      int
	Day       program.Day
	Groups    []program.Group
	Completed [][]bool // [exercise][set]
	Next      *SetRef  // first set not done yet in training order, nil when finished

	CompletedSets int
	TotalSets     int
}

// IsCompleted reports whether a set is marked done
func (s WorkoutState) IsCompleted(ref SetRef) bool {
	if ref.Exercise < 0 || ref.Exercise >= len(s.Completed) {
		return false
	}
	sets := s.Completed[ref.Exercise]
	return ref.Set >= 0 && ref.Set < len(sets) && sets[ref.Set]
}
