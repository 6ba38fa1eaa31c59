package trainer

import (
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

// Page names for tview.Pages
const (
	pageHome    = "home"
	pageWorkout = "workout"
)

const barWidth = 20

// CursesUIViewImpl implements UIViewImpl using tview (curses-based terminal UI)
type CursesUIViewImpl struct {
	logger      *log.Logger
	app         *tview.Application
	currentMode UIMode

	// Root container that holds all pages
	pages *tview.Pages

	// Shared components (visible in all modes)
	logView    *tview.TextView
	timerPanel *tview.TextView
	mainFlex   *tview.Flex // Mode content on left, timer and logs on right

	// Home mode components
	homeFlex       *tview.Flex
	homeTabWidgets []*tview.Box
	weekBanner     *tview.TextView
	dayList        *tview.List

	// Workout mode components
	workoutFlex       *tview.Flex
	workoutTabWidgets []*tview.Box
	workoutHeader     *tview.TextView
	setList           *tview.List
	exerciseDetails   *tview.TextView
	setRows           []*SetRef // one per setList item, nil for group headers
	workoutState      WorkoutState
}

func NewCursesUIView(logger *log.Logger, app *tview.Application) *CursesUIViewImpl {
	if logger == nil {
		panic("CursesUIViewImpl: logger cannot be nil")
	}
	if app == nil {
		panic("CursesUIViewImpl: app cannot be nil")
	}
	return &CursesUIViewImpl{
		logger:      logger,
		app:         app,
		currentMode: UIModeHome,
	}
}

// Initialize sets up the tview widgets
func (ui *CursesUIViewImpl) Initialize(controller *UIController) {
	// No SetChangedFunc with app.Draw(): it can hang during shutdown.
	// BaseUIView draws after each update.
	ui.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)
	ui.logView.SetBorder(true).SetTitle(" Logs ")

	ui.timerPanel = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.timerPanel.SetBorder(true).SetTitle(" Rest ")
	ui.UpdateTimer(resttimer.Snapshot{})

	ui.pages = tview.NewPages()

	ui.initHomeMode(controller)
	ui.initWorkoutMode(controller)

	ui.pages.AddPage(pageHome, ui.homeFlex, true, true)
	ui.pages.AddPage(pageWorkout, ui.workoutFlex, true, false)

	rightColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.timerPanel, 10, 0, false).
		AddItem(ui.logView, 0, 1, false)

	ui.mainFlex = tview.NewFlex().
		AddItem(ui.pages, 0, 3, true).
		AddItem(rightColumn, 0, 2, false)

	ui.setFocusForCurrentMode()
}

// initHomeMode sets up the week overview
func (ui *CursesUIViewImpl) initHomeMode(controller *UIController) {
	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow][[white]/[yellow]][white] Week  |  [yellow]Enter[white] Open day  |  [yellow]Esc[white] Quit\n[yellow]1[white] Home  |  [yellow]2[white] Workout")

	ui.weekBanner = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.weekBanner.SetBorder(true).SetTitle(" Week ")

	ui.dayList = tview.NewList().
		ShowSecondaryText(true).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.logger.Printf("UI: Day selected: index=%d, name=%s", index, mainText)
			controller.OnDaySelected(index)
		})
	ui.dayList.SetBorder(true).SetTitle(" Days ")

	ui.homeTabWidgets = append(ui.homeTabWidgets, ui.dayList.Box)

	ui.homeFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(ui.weekBanner, 5, 0, false).
		AddItem(ui.dayList, 0, 1, true)
}

// initWorkoutMode sets up the set list and exercise details
func (ui *CursesUIViewImpl) initWorkoutMode(controller *UIController) {
	instructionsText := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	instructionsText.SetText("[yellow]Enter[white] Toggle set  |  [yellow]N[white] Next set  |  [yellow]R[white] Reset day\n[yellow]Space[white] Pause/Resume  |  [yellow]S[white] Skip  |  [yellow]+[white]/[yellow]-[white] Adjust  |  [yellow]X[white] Stop rest")

	ui.workoutHeader = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.workoutHeader.SetBorder(true)

	ui.setList = tview.NewList().
		ShowSecondaryText(false).
		SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			if index < 0 || index >= len(ui.setRows) || ui.setRows[index] == nil {
				return
			}
			controller.OnSetSelected(*ui.setRows[index])
		}).
		SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
			ui.updateExerciseDetails(index)
		})
	ui.setList.SetBorder(true).SetTitle(" Sets ")

	ui.exerciseDetails = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	ui.exerciseDetails.SetBorder(true).SetTitle(" Exercise ")

	ui.workoutTabWidgets = append(ui.workoutTabWidgets, ui.setList.Box)
	ui.workoutTabWidgets = append(ui.workoutTabWidgets, ui.exerciseDetails.Box)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(ui.setList, 0, 3, true).
		AddItem(ui.exerciseDetails, 0, 2, false)

	ui.workoutFlex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(instructionsText, 2, 0, false).
		AddItem(ui.workoutHeader, 4, 0, false).
		AddItem(body, 0, 1, true)
}

// SetMode switches the UI to the specified mode
func (ui *CursesUIViewImpl) SetMode(mode UIMode) {
	if ui.currentMode == mode {
		return
	}

	ui.currentMode = mode

	switch mode {
	case UIModeHome:
		ui.pages.SwitchToPage(pageHome)
	case UIModeWorkout:
		ui.pages.SwitchToPage(pageWorkout)
	}

	ui.setFocusForCurrentMode()
}

// GetCurrentMode returns the currently active UI mode
func (ui *CursesUIViewImpl) GetCurrentMode() UIMode {
	return ui.currentMode
}

func (ui *CursesUIViewImpl) setFocusForCurrentMode() {
	widgets := ui.getTabWidgetsForCurrentMode()
	if len(widgets) > 0 {
		ui.app.SetFocus(widgets[0])
	}
}

func (ui *CursesUIViewImpl) getTabWidgetsForCurrentMode() []*tview.Box {
	switch ui.currentMode {
	case UIModeHome:
		return ui.homeTabWidgets
	case UIModeWorkout:
		return ui.workoutTabWidgets
	default:
		return nil
	}
}

// SetupKeyboardHandlers sets up keyboard event handlers
func (ui *CursesUIViewImpl) SetupKeyboardHandlers(controller *UIController) {
	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			controller.OnEscapeKey()
			return nil

		case tcell.KeyTab:
			// Cycle focus between widgets of the current mode
			widgets := ui.getTabWidgetsForCurrentMode()
			for i, w := range widgets {
				if w.HasFocus() {
					ui.app.SetFocus(widgets[(i+1)%len(widgets)])
					break
				}
			}
			return nil

		case tcell.KeyRune:
			// handled below

		default:
			return event
		}

		if mode, ok := GetUIModeByKey(event.Rune()); ok {
			// Controller updates the model, which notifies us
			controller.OnModeChange(mode)
			return nil
		}

		switch event.Rune() {
		case KeyPreviousWeek:
			controller.PreviousWeek()
		case KeyNextWeek:
			controller.NextWeek()
		case KeyPauseResume:
			controller.ToggleRest()
		case KeySkipRest:
			controller.SkipRest()
		case KeyAddRest, '=':
			controller.AdjustRest(1)
		case KeyRemoveRest:
			controller.AdjustRest(-1)
		case KeyStopRest:
			controller.StopRest()
		case KeyResetDay:
			if ui.currentMode != UIModeWorkout {
				return event
			}
			controller.ResetDay()
		case 'n':
			if ui.currentMode != UIModeWorkout {
				return event
			}
			controller.CompleteNextSet()
		default:
			return event
		}
		return nil
	})
}

// GetLogViewHeight returns the visible height of the log view
func (ui *CursesUIViewImpl) GetLogViewHeight() int {
	_, _, _, height := ui.logView.GetInnerRect()
	return height
}

// ClearLogView clears the log view
func (ui *CursesUIViewImpl) ClearLogView() {
	ui.logView.Clear()
}

// WriteLogLine writes a line to the log view
func (ui *CursesUIViewImpl) WriteLogLine(line string) error {
	_, err := fmt.Fprint(ui.logView, tview.Escape(line))
	return err
}

// UpdateWeek shows the week banner and the list of days
func (ui *CursesUIViewImpl) UpdateWeek(state WeekState) {
	if ui.weekBanner == nil {
		return
	}

	text := fmt.Sprintf(" [yellow]Week %d[white]", state.Number)
	if state.Block > 0 {
		text += fmt.Sprintf("  |  Block %d", state.Block)
	}
	if state.Deload {
		text += "  |  [cyan]Deload[white]"
	}
	text += "\n"
	if state.Technique != "" {
		text += fmt.Sprintf(" [gray]%s[white]\n", state.Technique)
	}
	nav := ""
	if state.HasPrev {
		nav += "[yellow][[white] previous  "
	}
	if state.HasNext {
		nav += "[yellow]][white] next"
	}
	text += " " + nav
	ui.weekBanner.SetText(text)

	current := ui.dayList.GetCurrentItem()
	ui.dayList.Clear()
	for _, d := range state.Days {
		main := d.Name
		if d.Title != "" {
			main += " - " + d.Title
		}
		if d.TotalSets > 0 && d.CompletedSets >= d.TotalSets {
			main = "[green]✔[white] " + main
		}
		secondary := fmt.Sprintf("  %s  |  %d exercises  |  %d/%d sets  |  %s",
			strings.ToUpper(d.Location), d.ExerciseCount, d.CompletedSets, d.TotalSets, formatMinutes(d.DurationMinutes))
		ui.dayList.AddItem(main, secondary, 0, nil)
	}
	if current < ui.dayList.GetItemCount() {
		ui.dayList.SetCurrentItem(current)
	}
}

// UpdateWorkout rebuilds the set list of the selected day
func (ui *CursesUIViewImpl) UpdateWorkout(state WorkoutState) {
	if ui.setList == nil {
		return
	}
	ui.workoutState = state

	if state.Status == WorkoutStatusNone {
		ui.workoutHeader.SetText("\n [gray]No day selected - open one from Home (press 1)[white]")
		ui.setList.Clear()
		ui.setRows = nil
		ui.updateExerciseDetails(-1)
		return
	}

	day := state.Day
	ui.workoutHeader.SetTitle(fmt.Sprintf(" Week %d ", state.Week))
	header := fmt.Sprintf(" [yellow]%s[white]", day.Name)
	if day.Location != "" {
		header += "  " + strings.ToUpper(day.Location)
	}
	if day.Title != "" {
		header += "  [gray]" + day.Title + "[white]"
	}
	header += fmt.Sprintf("\n %d/%d sets  %s  [gray](%s)[white]",
		state.CompletedSets, state.TotalSets, progressBar(fractionOf(state.CompletedSets, state.TotalSets), barWidth), state.Status)
	ui.workoutHeader.SetText(header)

	current := ui.setList.GetCurrentItem()
	ui.setList.Clear()
	ui.setRows = ui.setRows[:0]

	for _, g := range state.Groups {
		title := fmt.Sprintf("[yellow]%s[white]", g.Name)
		if g.IsSuperset() {
			title = "[purple]SUPERSET[white] " + title
		}
		if g.RestSeconds > 0 {
			title += fmt.Sprintf("  [gray]rest %s[white]", formatRemaining(g.RestSeconds))
		}
		ui.setList.AddItem(title, "", 0, nil)
		ui.setRows = append(ui.setRows, nil)

		for round := 0; round < g.Sets; round++ {
			for _, idx := range g.Indices {
				ex := day.Exercises[idx]
				if round >= ex.Sets {
					continue
				}
				ref := SetRef{Exercise: idx, Set: round}
				ui.setList.AddItem(ui.formatSetRow(state, ex.Name, ex.Reps, ex.Weight, ex.Sets, ref), "", 0, nil)
				ui.setRows = append(ui.setRows, &ref)
			}
		}
	}

	if current < ui.setList.GetItemCount() {
		ui.setList.SetCurrentItem(current)
	}
	ui.updateExerciseDetails(ui.setList.GetCurrentItem())
}

func (ui *CursesUIViewImpl) formatSetRow(state WorkoutState, name, reps string, weight float64, sets int, ref SetRef) string {
	mark := "[gray]○[white]"
	if state.IsCompleted(ref) {
		mark = "[green]✔[white]"
	} else if state.Next != nil && *state.Next == ref {
		mark = "[yellow]▶[white]"
	}
	row := fmt.Sprintf("  %s %s  set %d/%d", mark, name, ref.Set+1, sets)
	if reps != "" {
		row += "  " + reps + " reps"
	}
	return row + "  " + formatWeight(weight)
}

// updateExerciseDetails shows the exercise of the highlighted row
func (ui *CursesUIViewImpl) updateExerciseDetails(index int) {
	if ui.exerciseDetails == nil {
		return
	}
	if index < 0 || index >= len(ui.setRows) {
		ui.exerciseDetails.SetText("")
		return
	}

	ref := ui.setRows[index]
	if ref == nil {
		// Group header: describe its first exercise
		for i := index + 1; i < len(ui.setRows); i++ {
			if ui.setRows[i] != nil {
				ref = ui.setRows[i]
				break
			}
		}
	}
	if ref == nil || ref.Exercise >= len(ui.workoutState.Day.Exercises) {
		ui.exerciseDetails.SetText("")
		return
	}

	ex := ui.workoutState.Day.Exercises[ref.Exercise]
	text := fmt.Sprintf("\n [yellow]%s[white]\n\n", ex.Name)
	text += fmt.Sprintf(" [gray]Sets:[white]   %d\n", ex.Sets)
	if ex.Reps != "" {
		text += fmt.Sprintf(" [gray]Reps:[white]   %s\n", ex.Reps)
	}
	text += fmt.Sprintf(" [gray]Load:[white]   %s\n", formatWeight(ex.Weight))
	if ex.Rest > 0 {
		text += fmt.Sprintf(" [gray]Rest:[white]   %ds\n", ex.Rest)
	}
	if ex.Tempo != "" {
		text += fmt.Sprintf(" [gray]Tempo:[white]  %s\n", ex.Tempo)
	}
	if ex.RPE != "" {
		text += fmt.Sprintf(" [gray]RPE:[white]    %s\n", ex.RPE)
	}
	if ex.SupersetWith != "" {
		text += fmt.Sprintf(" [gray]Superset with:[white] %s\n", ex.SupersetWith)
	}
	if ex.Notes != "" {
		text += fmt.Sprintf("\n [gray]%s[white]\n", tview.Escape(ex.Notes))
	}
	ui.exerciseDetails.SetText(text)
}

// UpdateTimer redraws the rest panel from a snapshot
func (ui *CursesUIViewImpl) UpdateTimer(snapshot resttimer.Snapshot) {
	if ui.timerPanel == nil {
		return
	}

	if snapshot.Status == resttimer.StatusIdle {
		ui.timerPanel.SetText("\n [gray]No rest running[white]\n\n Complete a set ([yellow]Enter[white]) to start one.")
		return
	}

	var text string
	switch snapshot.Status {
	case resttimer.StatusPaused:
		text = fmt.Sprintf(" [yellow]%s[white] set %d/%d [gray](PAUSED)[white]\n", snapshot.ExerciseName, snapshot.SetIndex, snapshot.TotalSets)
	case resttimer.StatusFinished:
		text = fmt.Sprintf(" [green]Rest over - go![white] %s\n", snapshot.ExerciseName)
	default:
		text = fmt.Sprintf(" [yellow]%s[white] set %d/%d\n", snapshot.ExerciseName, snapshot.SetIndex, snapshot.TotalSets)
	}

	text += fmt.Sprintf(" [::b]%s[::-] / %s\n", formatRemaining(snapshot.RemainingSeconds), formatRemaining(snapshot.InitialSeconds))
	text += fmt.Sprintf(" [gray]Session [white] %s %3.0f%%\n", progressBar(snapshot.SessionProgress, barWidth), snapshot.SessionProgress*100)
	text += fmt.Sprintf(" [gray]Rest    [white] %s %3.0f%%\n", progressBar(snapshot.RestProgress, barWidth), snapshot.RestProgress*100)
	text += fmt.Sprintf(" [gray]Exercise[white] %s %3.0f%%\n", progressBar(snapshot.ExerciseProgress, barWidth), snapshot.ExerciseProgress*100)
	text += fmt.Sprintf(" [gray]Tempo %s[white] %s%s[white] %s\n",
		snapshot.Tempo, tempoColor(snapshot.TempoPhase), strings.ToUpper(snapshot.TempoPhase.String()),
		progressBar(snapshot.TempoPhaseProgress, 6))

	ui.timerPanel.SetText(text)
}

func fractionOf(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// Draw refreshes/redraws the UI
func (ui *CursesUIViewImpl) Draw() error {
	ui.app.Draw()
	return nil
}

// Run starts the UI and blocks until it exits
func (ui *CursesUIViewImpl) Run() error {
	// SetRoot must be called before setting focus, otherwise focus may be reset
	ui.app.SetRoot(ui.mainFlex, true)
	ui.setFocusForCurrentMode()
	return ui.app.Run()
}

// Stop stops the UI framework
func (ui *CursesUIViewImpl) Stop() {
	ui.app.Stop()
}
