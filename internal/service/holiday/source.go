package holiday

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/holiday"
)

const maxSourceSize = 1 << 20

// HTTPSource fetches a JSON array of {date, name} objects.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch implements holiday.Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]holiday.Holiday, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("holiday source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}

	return decodeHolidays(body)
}

// FileSource reads the holiday list from a local JSON file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch implements holiday.Source.
func (s *FileSource) Fetch(ctx context.Context) ([]holiday.Holiday, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday file: %w", err)
	}
	return decodeHolidays(data)
}
