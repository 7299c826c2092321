package daily

import "context"

// Detector decides on each check-in whether a new day has begun and, if
// so, freezes the previous day's stat. It keeps no state of its own:
// rollover is inferred from comparing the last-seen date against today,
// and Freeze's exactly-once marker makes repeated check-ins with the
// same lastAccess harmless no-ops.
type Detector struct {
	Aggregator *Aggregator
	Resolver   *Resolver
}

// CheckIn resolves today per the configured authority, and if
// lastAccess names an earlier day, snapshots that day. Returns the
// resolved today and whether a freeze was actually performed. A
// lastAccess in the future is ignored rather than rejected.
func (d *Detector) CheckIn(ctx context.Context, userID uint64, clientDate, lastAccess string) (string, bool, error) {
	today, err := d.Resolver.Today(clientDate)
	if err != nil {
		return "", false, err
	}

	if lastAccess == "" {
		return today, false, nil
	}
	lastAccess, err = ParseDate(lastAccess)
	if err != nil {
		return "", false, err
	}

	// YYYY-MM-DD strings order lexicographically.
	if lastAccess >= today {
		return today, false, nil
	}

	rolled, err := d.Aggregator.Freeze(ctx, userID, lastAccess)
	if err != nil {
		return "", false, err
	}
	return today, rolled, nil
}
