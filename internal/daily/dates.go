package daily

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD day string and returns it normalized.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return t.Format(DateLayout), nil
}

const (
	AuthorityClient = "client"
	AuthorityServer = "server"
)

// Resolver decides who owns "today": the client (its supplied date is
// trusted as-is) or the server (wall clock in a fixed location, client
// date ignored). Client authority matches the original behavior; server
// authority closes the trust gap it leaves open.
type Resolver struct {
	Authority string
	Location  *time.Location
	Now       func() time.Time // nil means time.Now
}

func NewResolver(authority, timezone string) (*Resolver, error) {
	switch authority {
	case AuthorityClient, AuthorityServer:
	default:
		return nil, fmt.Errorf("unknown date authority %q", authority)
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("bad timezone %q: %w", timezone, err)
	}
	return &Resolver{Authority: authority, Location: loc}, nil
}

// Today resolves the current day. clientDate is required under client
// authority and ignored under server authority.
func (r *Resolver) Today(clientDate string) (string, error) {
	if r.Authority == AuthorityServer {
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		return now().In(r.Location).Format(DateLayout), nil
	}
	if clientDate == "" {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return ParseDate(clientDate)
}
