package backup

import "errors"

var (
	ErrInvalidBackupFormat = errors.New("invalid backup format: pontoRecords must be an array of valid records")
	ErrEmptyBackup         = errors.New("backup file is empty")
)
