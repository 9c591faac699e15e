package attendance

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/worktime"
)

type PunchType string

const (
	CheckIn    PunchType = "check_in"
	BreakStart PunchType = "break_start"
	BreakEnd   PunchType = "break_end"
	CheckOut   PunchType = "check_out"
)

// PunchTypes lists the punches in the order they happen during a day.
var PunchTypes = []PunchType{CheckIn, BreakStart, BreakEnd, CheckOut}

// Terms stored by older kiosk builds.
var legacyPunchTypes = map[string]PunchType{
	"entrada":   CheckIn,
	"intervalo": BreakStart,
	"retorno":   BreakEnd,
	"saida":     CheckOut,
	"saída":     CheckOut,
}

var punchLabels = map[PunchType]string{
	CheckIn:    "Entrada",
	BreakStart: "Intervalo",
	BreakEnd:   "Retorno",
	CheckOut:   "Saída",
}

func ParsePunchType(s string) (PunchType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range PunchTypes {
		if string(t) == s {
			return t, nil
		}
	}
	if t, ok := legacyPunchTypes[s]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrInvalidPunchType)
}

func (t PunchType) IsValid() bool {
	_, ok := punchLabels[t]
	return ok
}

// Label is the display name used on reports.
func (t PunchType) Label() string {
	return punchLabels[t]
}

func (t *PunchType) UnmarshalText(data []byte) error {
	parsed, err := ParsePunchType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

const (
	NotInformed         = "Não informado"
	NotInformedFeminine = "Não informada"
)

// EmployeeSnapshot is the profile copied into each punch when it is taken.
type EmployeeSnapshot struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// WithDefaults fills blank fields with the "not informed" placeholders.
func (e EmployeeSnapshot) WithDefaults() EmployeeSnapshot {
	if strings.TrimSpace(e.Name) == "" {
		e.Name = NotInformed
	}
	if strings.TrimSpace(e.Company) == "" {
		e.Company = NotInformedFeminine
	}
	if strings.TrimSpace(e.Role) == "" {
		e.Role = NotInformedFeminine
	}
	if strings.TrimSpace(e.Department) == "" {
		e.Department = NotInformed
	}
	return e
}

// Record is one punch. At most one record exists per (Date, Type).
type Record struct {
	Date       civil.Date         `json:"date"`
	Type       PunchType          `json:"type"`
	Time       worktime.Clock     `json:"time"`
	Photo      string             `json:"photo"`
	Location   *location.Location `json:"location,omitempty"`
	Employee   EmployeeSnapshot   `json:"employee"`
	RecordedAt *time.Time         `json:"recordedAt,omitempty"`
}

// Key identifies the slot a record occupies.
type Key struct {
	Date civil.Date
	Type PunchType
}

func (r Record) Key() Key {
	return Key{Date: r.Date, Type: r.Type}
}

// Validate checks the fields every stored record must carry.
func (r Record) Validate() error {
	if !r.Date.IsValid() {
		return fmt.Errorf("date %s: %w", r.Date, ErrInvalidRecord)
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("type %q: %w", r.Type, ErrInvalidRecord)
	}
	if !r.Time.IsValid() {
		return fmt.Errorf("time %d: %w", r.Time, ErrInvalidRecord)
	}
	return nil
}

// legacyRecord is the field layout written by older kiosk builds.
type legacyRecord struct {
	Type     *PunchType         `json:"tipo"`
	Date     *civil.Date        `json:"data"`
	Time     *worktime.Clock    `json:"horario"`
	Photo    *string            `json:"foto"`
	Location *location.Location `json:"localizacao"`
	Employee *struct {
		Name       string `json:"nome"`
		Company    string `json:"empresa"`
		Role       string `json:"funcao"`
		Department string `json:"setor"`
	} `json:"usuario"`
}

// UnmarshalJSON accepts both the current layout and the legacy one.
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	var current plain
	if err := json.Unmarshal(data, &current); err != nil {
		return err
	}

	var legacy legacyRecord
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}

	// A zero Clock is a valid 00:00, so a missing time is caught here.
	var clock struct {
		Time *worktime.Clock `json:"time"`
	}
	if err := json.Unmarshal(data, &clock); err != nil {
		return err
	}
	if clock.Time == nil && legacy.Time == nil {
		return fmt.Errorf("time missing: %w", ErrInvalidRecord)
	}
	if legacy.Type != nil && current.Type == "" {
		current.Type = *legacy.Type
	}
	if legacy.Date != nil && current.Date.IsZero() {
		current.Date = *legacy.Date
	}
	if legacy.Time != nil && clock.Time == nil {
		current.Time = *legacy.Time
	}
	if legacy.Photo != nil && current.Photo == "" {
		current.Photo = *legacy.Photo
	}
	if legacy.Location != nil && current.Location == nil {
		current.Location = legacy.Location
	}
	if legacy.Employee != nil && current.Employee == (EmployeeSnapshot{}) {
		current.Employee = EmployeeSnapshot{
			Name:       legacy.Employee.Name,
			Company:    legacy.Employee.Company,
			Role:       legacy.Employee.Role,
			Department: legacy.Employee.Department,
		}
	}

	*r = Record(current)
	return nil
}
