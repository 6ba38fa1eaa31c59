package program

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied to exercises that leave the field out, unless changed
// with WithDefaults
const (
	DefaultSets         = 3
	DefaultRestSeconds  = 90
	SupersetRestSeconds = 75
)

var (
	ErrWeekNotFound     = errors.New("week not found")
	ErrDayNotFound      = errors.New("day not found")
	ErrExerciseNotFound = errors.New("exercise not found")
)

//go:embed default_program.yaml
var defaultProgramYAML []byte

// Program is a training program split into numbered weeks
type Program struct {
	Name  string
	Weeks []Week
}

// Week is one week of the program. Block and Technique describe the
// training phase the week belongs to.
type Week struct {
	Number    int
	Block     int
	Technique string
	Deload    bool
	Days      []Day
}

// Day is a single workout
type Day struct {
	Name            string
	Location        string
	Title           string
	DurationMinutes int
	Exercises       []Exercise
}

// Exercise is one movement of a Day. Rest is the rest after each set in
// seconds; 0 means no timed rest.
type Exercise struct {
	Name         string
	Sets         int
	Reps         string
	Weight       float64 // kg, 0 for bodyweight
	Rest         int
	Tempo        string
	RPE          string
	Notes        string
	SupersetWith string

	restSet bool // rest came from the file rather than the default
}

type yamlProgram struct {
	Name  string     `yaml:"name"`
	Weeks []yamlWeek `yaml:"weeks"`
}

type yamlWeek struct {
	Week      int       `yaml:"week"`
	Block     int       `yaml:"block"`
	Technique string    `yaml:"technique"`
	Deload    bool      `yaml:"deload"`
	Days      []yamlDay `yaml:"days"`
}

type yamlDay struct {
	Day       string         `yaml:"day"`
	Location  string         `yaml:"location"`
	Title     string         `yaml:"title"`
	Duration  int            `yaml:"duration_minutes"`
	Exercises []yamlExercise `yaml:"exercises"`
}

type yamlExercise struct {
	Name         string  `yaml:"name"`
	Sets         *int    `yaml:"sets"`
	Reps         string  `yaml:"reps"`
	Weight       float64 `yaml:"weight"`
	Rest         *int    `yaml:"rest"`
	Tempo        string  `yaml:"tempo"`
	RPE          string  `yaml:"rpe"`
	Notes        string  `yaml:"notes"`
	SupersetWith string  `yaml:"superset_with"`
}

// Option changes how a program is decoded
type Option func(*parseOptions)

type parseOptions struct {
	sets        int
	restSeconds int
}

// WithDefaults replaces the sets and rest applied to exercises that leave them
// out. Non-positive sets and negative rest are ignored.
func WithDefaults(sets, restSeconds int) Option {
	return func(o *parseOptions) {
		if sets > 0 {
			o.sets = sets
		}
		if restSeconds >= 0 {
			o.restSeconds = restSeconds
		}
	}
}

// Load reads a program from a YAML file
func Load(path string, opts ...Option) (*Program, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program file: %w", err)
	}
	p, err := Parse(rawData, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Default returns the program bundled with the binary
func Default(opts ...Option) (*Program, error) {
	p, err := Parse(defaultProgramYAML, opts...)
	if err != nil {
		return nil, fmt.Errorf("default program: %w", err)
	}
	return p, nil
}

// Parse decodes a YAML program and applies the exercise defaults
func Parse(data []byte, opts ...Option) (*Program, error) {
	o := parseOptions{sets: DefaultSets, restSeconds: DefaultRestSeconds}
	for _, opt := range opts {
		opt(&o)
	}

	var fileData yamlProgram
	if err := yaml.Unmarshal(data, &fileData); err != nil {
		return nil, fmt.Errorf("parse program yaml: %w", err)
	}
	if len(fileData.Weeks) == 0 {
		return nil, errors.New("program has no weeks")
	}

	p := &Program{Name: fileData.Name}
	seen := make(map[int]bool, len(fileData.Weeks))
	for i, yw := range fileData.Weeks {
		number := yw.Week
		if number <= 0 {
			number = i + 1
		}
		if seen[number] {
			return nil, fmt.Errorf("week %d defined twice", number)
		}
		seen[number] = true

		week := Week{
			Number:    number,
			Block:     yw.Block,
			Technique: yw.Technique,
			Deload:    yw.Deload,
		}
		for _, yd := range yw.Days {
			if strings.TrimSpace(yd.Day) == "" {
				return nil, fmt.Errorf("week %d: day without a name", number)
			}
			day := Day{
				Name:            yd.Day,
				Location:        yd.Location,
				Title:           yd.Title,
				DurationMinutes: yd.Duration,
			}
			for _, ye := range yd.Exercises {
				day.Exercises = append(day.Exercises, convertExercise(ye, o))
			}
			week.Days = append(week.Days, day)
		}
		p.Weeks = append(p.Weeks, week)
	}
	return p, nil
}

func convertExercise(ye yamlExercise, o parseOptions) Exercise {
	ex := Exercise{
		Name:         ye.Name,
		Sets:         o.sets,
		Reps:         ye.Reps,
		Weight:       ye.Weight,
		Rest:         o.restSeconds,
		Tempo:        ye.Tempo,
		RPE:          ye.RPE,
		Notes:        ye.Notes,
		SupersetWith: ye.SupersetWith,
	}
	if ye.Sets != nil && *ye.Sets > 0 {
		ex.Sets = *ye.Sets
	}
	if ye.Rest != nil {
		ex.restSet = true
		ex.Rest = *ye.Rest
		if ex.Rest < 0 {
			ex.Rest = 0
		}
	}
	return ex
}

// Week returns the week with the given number
func (p *Program) Week(number int) (*Week, error) {
	for i := range p.Weeks {
		if p.Weeks[i].Number == number {
			return &p.Weeks[i], nil
		}
	}
	return nil, fmt.Errorf("week %d: %w", number, ErrWeekNotFound)
}

// WeekNumbers lists the week numbers in program order
func (p *Program) WeekNumbers() []int {
	numbers := make([]int, 0, len(p.Weeks))
	for _, w := range p.Weeks {
		numbers = append(numbers, w.Number)
	}
	return numbers
}

// Day finds a day by name, ignoring case and surrounding space
func (w *Week) Day(name string) (*Day, error) {
	want := strings.TrimSpace(name)
	for i := range w.Days {
		if strings.EqualFold(strings.TrimSpace(w.Days[i].Name), want) {
			return &w.Days[i], nil
		}
	}
	return nil, fmt.Errorf("week %d day %q: %w", w.Number, name, ErrDayNotFound)
}

// TotalSets is the number of sets over every exercise of the day
func (d *Day) TotalSets() int {
	total := 0
	for _, ex := range d.Exercises {
		total += ex.Sets
	}
	return total
}
