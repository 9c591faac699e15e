package holiday

import "cloud.google.com/go/civil"

type Holiday struct {
	Date civil.Date `json:"date"`
	Name string     `json:"name"`
}

// Origin tells where the loaded table came from.
type Origin string

const (
	OriginSource   Origin = "source"
	OriginFallback Origin = "fallback"
)
