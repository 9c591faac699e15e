package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed policy.yaml
var defaultPolicy []byte

// Multipliers used to turn custom daily hours into weekly and monthly ones.
var (
	customWeeklyFactor  = decimal.RequireFromString("5.5")
	customMonthlyFactor = decimal.RequireFromString("27.5")
)

// Policy holds the work rules printed on the monthly timesheet.
type Policy struct {
	DayOff    DayOffPolicy              `yaml:"day_off"`
	Schedules map[string]SchedulePolicy `yaml:"schedules"`

	dayOff map[time.Weekday]bool
}

type DayOffPolicy struct {
	Weekdays []string `yaml:"weekdays"`
	Label    string   `yaml:"label"`
}

type SchedulePolicy struct {
	WeeklyHours  decimal.Decimal
	MonthlyHours decimal.Decimal
	Shift        string
}

func (sp *SchedulePolicy) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		WeeklyHours  float64 `yaml:"weekly_hours"`
		MonthlyHours float64 `yaml:"monthly_hours"`
		Shift        string  `yaml:"shift"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	sp.WeeklyHours = decimal.NewFromFloat(raw.WeeklyHours)
	sp.MonthlyHours = decimal.NewFromFloat(raw.MonthlyHours)
	sp.Shift = raw.Shift
	return nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// LoadPolicy reads the policy file, or the embedded default when path is empty.
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		return ParsePolicy(defaultPolicy)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return ParsePolicy(data)
}

func ParsePolicy(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	p.dayOff = make(map[time.Weekday]bool, len(p.DayOff.Weekdays))
	for _, name := range p.DayOff.Weekdays {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("invalid policy: unknown weekday %q", name)
		}
		p.dayOff[wd] = true
	}
	if len(p.dayOff) > 0 && p.DayOff.Label == "" {
		p.DayOff.Label = "Folga"
	}

	if len(p.Schedules) == 0 {
		return nil, fmt.Errorf("invalid policy: no schedules defined")
	}

	return &p, nil
}

// IsDayOff reports whether wd is a configured day off.
func (p *Policy) IsDayOff(wd time.Weekday) bool {
	return p.dayOff[wd]
}

// Schedule returns the policy for a schedule kind. For the custom kind a
// positive customHours overrides the configured weekly and monthly hours.
// Unknown kinds fall back to the "custom" entry.
func (p *Policy) Schedule(kind string, customHours float64) SchedulePolicy {
	sp, ok := p.Schedules[kind]
	if !ok {
		sp = p.Schedules["custom"]
	}
	if kind == "custom" && customHours > 0 {
		hours := decimal.NewFromFloat(customHours)
		sp.WeeklyHours = hours.Mul(customWeeklyFactor)
		sp.MonthlyHours = hours.Mul(customMonthlyFactor)
	}
	return sp
}
