package holiday

import (
	"context"

	"cloud.google.com/go/civil"
)

// Source provides the authoritative holiday list.
type Source interface {
	Fetch(ctx context.Context) ([]Holiday, error)
}

// Lookup answers whether a date is a holiday.
type Lookup interface {
	Lookup(date civil.Date) (name string, ok bool)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(date civil.Date) (string, bool)

func (f LookupFunc) Lookup(date civil.Date) (string, bool) {
	return f(date)
}
