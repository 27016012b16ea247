package policy

import (
	"time"

	"github.com/simagang/presensi-backend-go/internal/pkg/civil"
	"github.com/simagang/presensi-backend-go/internal/pkg/validator"
)

// Default operating hours used when no policy row exists.
const (
	DefaultWeekdayOpen  = "08:00"
	DefaultWeekdayClose = "16:00"
	DefaultFridayOpen   = "08:00"
	DefaultFridayClose  = "16:30"
)

// ResolveWindow resolves the attendance window applicable at the given
// instant, evaluated on the WIB civil calendar. p may be nil: a missing or
// unreadable policy degrades to the documented defaults instead of failing,
// so policy unavailability can never block a check-in. Pure; safe to call
// concurrently.
func ResolveWindow(p *OperatingPolicy, now time.Time) Resolved {
	resolved := Resolved{
		WindowOpen: DefaultWindowOpen,
		LateCutoff: DefaultLateCutoff,
	}

	if p != nil {
		if validator.IsValidClock(p.WindowOpen) {
			resolved.WindowOpen = p.WindowOpen
		}
		if validator.IsValidClock(p.LateCutoff) {
			resolved.LateCutoff = p.LateCutoff
		}
	}

	switch civil.In(now).Weekday() {
	case time.Saturday, time.Sunday:
		resolved.IsOperatingDay = false
	default:
		resolved.IsOperatingDay = true
	}

	return resolved
}
