package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/backup"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
)

const (
	JobRefreshHolidays = "refresh_holidays"
	JobAutoBackup      = "auto_backup"

	// autoBackupCheck is how often the backup age is checked. The backup
	// itself is only written once the configured interval has passed.
	autoBackupCheck = time.Hour
)

type MaintenanceJobs struct {
	holidayService  holiday.HolidayService
	backupService   backup.BackupService
	refreshInterval time.Duration
}

func NewMaintenanceJobs(holidayService holiday.HolidayService, backupService backup.BackupService, refreshInterval time.Duration) *MaintenanceJobs {
	return &MaintenanceJobs{
		holidayService:  holidayService,
		backupService:   backupService,
		refreshInterval: refreshInterval,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     JobRefreshHolidays,
		Interval: j.refreshInterval,
		Fn:       j.RefreshHolidays,
		// the table is loaded at startup
		SkipInitialRun: true,
	})
	scheduler.AddJob(Job{
		Name:     JobAutoBackup,
		Interval: autoBackupCheck,
		Fn:       j.AutoBackup,
	})
}

func (j *MaintenanceJobs) RefreshHolidays(ctx context.Context) error {
	return j.holidayService.Refresh(ctx)
}

// AutoBackup covers days without punches, when no upsert triggers the
// backup check.
func (j *MaintenanceJobs) AutoBackup(ctx context.Context) error {
	return j.backupService.MaybeBackup(ctx)
}
