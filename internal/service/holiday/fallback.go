package holiday

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
)

// National holidays plus the Maragogi-AL municipal ones.
//
//go:embed fallback_holidays.json
var fallbackJSON []byte

func fallbackHolidays() []holiday.Holiday {
	entries, err := decodeHolidays(fallbackJSON)
	if err != nil {
		panic(fmt.Sprintf("holiday: embedded fallback list: %v", err))
	}
	return entries
}

func decodeHolidays(data []byte) ([]holiday.Holiday, error) {
	var entries []holiday.Holiday
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode holidays: %w", err)
	}
	if len(entries) == 0 {
		return nil, holiday.ErrEmptySource
	}
	for _, e := range entries {
		if !e.Date.IsValid() || e.Name == "" {
			return nil, fmt.Errorf("invalid holiday entry %v", e)
		}
	}
	return entries, nil
}
