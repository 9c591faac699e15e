package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/backup"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
)

const maxBackupBody = 32 << 20

type BackupHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
}

type backupHandlerImpl struct {
	backupService backup.BackupService
	loc           *time.Location
}

func NewBackupHandler(backupService backup.BackupService, loc *time.Location) BackupHandler {
	return &backupHandlerImpl{
		backupService: backupService,
		loc:           loc,
	}
}

// Export handles GET /backup
func (h *backupHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.backupService.Export(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	content, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		slog.Error("Failed to encode backup", "error", err)
		response.InternalServerError(w, "Failed to encode backup")
		return
	}

	filename := backup.FileName(snapshot.LastBackup.In(h.loc).Format(time.DateOnly))
	response.Attachment(w, filename, "application/json", content)
}

// Import handles POST /backup/import. The backup comes as the raw JSON body
// or as the 'file' field of a multipart form.
func (h *backupHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBackupBody)

	raw, err := readBackupBody(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, "Backup file too large")
			return
		}
		slog.Error("Failed to read backup upload", "error", err)
		response.BadRequest(w, "Failed to read backup file", nil)
		return
	}

	result, err := h.backupService.Import(r.Context(), raw)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Backup imported successfully", result)
}

func readBackupBody(r *http.Request) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return io.ReadAll(r.Body)
	}

	if err := r.ParseMultipartForm(maxBackupBody); err != nil {
		return nil, err
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}
