package trainer

import (
	"fmt"
	"strings"

	"github.com/lowaak/smart-trainer/rest-timer-app/internal/resttimer"
)

// formatRemaining formats seconds as M:SS
func formatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// formatMinutes formats a planned duration given in minutes
func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return "-"
	}
	if minutes >= 60 {
		hours := minutes / 60
		mins := minutes % 60
		if mins > 0 {
			return fmt.Sprintf("%dh %dm", hours, mins)
		}
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%d min", minutes)
}

// progressBar draws fraction (clamped to [0,1]) as a text bar of width cells
func progressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// tempoColor is the tview color tag used for a tempo phase
func tempoColor(phase resttimer.TempoPhase) string {
	switch phase {
	case resttimer.PhaseEccentric:
		return "[red]"
	case resttimer.PhasePause:
		return "[yellow]"
	case resttimer.PhaseConcentric:
		return "[green]"
	default:
		return "[gray]"
	}
}

func formatWeight(kg float64) string {
	if kg <= 0 {
		return "bodyweight"
	}
	if kg == float64(int(kg)) {
		return fmt.Sprintf("%dkg", int(kg))
	}
	return fmt.Sprintf("%.1fkg", kg)
}
