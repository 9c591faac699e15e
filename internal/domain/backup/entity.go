package backup

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/settings"
)

// Snapshot is the full dump of persisted state. The top level keys match
// the backup files of older kiosk builds so those files can be imported.
type Snapshot struct {
	PontoRecords []attendance.Record `json:"pontoRecords"`
	UserSettings *settings.Profile   `json:"userSettings,omitempty"`
	UserLocation *location.Location  `json:"userLocation,omitempty"`
	LastBackup   time.Time           `json:"lastBackup"`
}

// FileName is the name automatic and downloaded backups are stored under.
func FileName(date string) string {
	return "ponto_eletronico_backup_" + date + ".json"
}
