package settings

import (
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
)

type ScheduleKind string

const (
	Schedule8h     ScheduleKind = "8"
	Schedule6h     ScheduleKind = "6"
	Schedule4h     ScheduleKind = "4"
	ScheduleCustom ScheduleKind = "custom"

	DefaultSchedule = Schedule8h
)

var ScheduleKinds = []ScheduleKind{Schedule8h, Schedule6h, Schedule4h, ScheduleCustom}

func (k ScheduleKind) IsValid() bool {
	for _, known := range ScheduleKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Profile is the employee profile of the kiosk. Field names match the
// blobs written by older builds, so admission and custom hours stay strings.
type Profile struct {
	Name        string       `json:"name"`
	Company     string       `json:"company"`
	Role        string       `json:"role"`
	Department  string       `json:"department"`
	Admission   string       `json:"admission,omitempty"`
	Schedule    ScheduleKind `json:"schedule,omitempty"`
	CustomHours string       `json:"customHours,omitempty"`
}

// ScheduleKind returns the configured schedule, or the default one when
// nothing valid was saved.
func (p Profile) ScheduleKind() ScheduleKind {
	if p.Schedule.IsValid() {
		return p.Schedule
	}
	return DefaultSchedule
}

func (p Profile) AdmissionDate() (civil.Date, bool) {
	d, err := civil.ParseDate(strings.TrimSpace(p.Admission))
	if err != nil {
		return civil.Date{}, false
	}
	return d, true
}

func (p Profile) CustomHoursValue() (float64, bool) {
	h, err := strconv.ParseFloat(strings.TrimSpace(p.CustomHours), 64)
	if err != nil || h <= 0 {
		return 0, false
	}
	return h, true
}

// HasIdentity reports whether a name or company was filled in.
func (p Profile) HasIdentity() bool {
	return strings.TrimSpace(p.Name) != "" || strings.TrimSpace(p.Company) != ""
}

// Snapshot copies the profile into a punch, with placeholders for blanks.
func (p Profile) Snapshot() attendance.EmployeeSnapshot {
	return attendance.EmployeeSnapshot{
		Name:       p.Name,
		Company:    p.Company,
		Role:       p.Role,
		Department: p.Department,
	}.WithDefaults()
}
