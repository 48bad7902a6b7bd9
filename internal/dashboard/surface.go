package dashboard

import (
	"github.com/gridsec/gridwatch/internal/errors"
	"github.com/gridsec/gridwatch/internal/grid"
	"github.com/gridsec/gridwatch/internal/logger"
)

// Origin names the operation whose failure is being surfaced.
type Origin int

const (
	OriginFetch Origin = iota
	OriginHealth
)

// Texts painted when a failure is surfaced.
const (
	ErrorBannerText    = "Error: Unable to connect to backend"
	ErrorStatusMessage = "Backend communication failure"
	ErrorFallbackText  = "Failed to communicate with backend. Please check your connection."
)

// Surfacer drives the dashboard into its error-visible state.
type Surfacer struct {
	target SurfaceTarget
	log    logger.Logger
}

// NewSurfacer creates a surfacer that writes only to target.
func NewSurfacer(target SurfaceTarget, log logger.Logger) *Surfacer {
	return &Surfacer{target: target, log: logger.OrDefault(log)}
}

// Surface paints the banner, alerts and status regions for err in one step.
// It never panics and never returns an error.
func (s *Surfacer) Surface(err error, origin Origin) {
	detail := errors.Human(err)
	if detail == "" {
		detail = ErrorFallbackText
	}

	rowType := "System Error"
	if origin == OriginHealth {
		rowType = "Health Check Failed"
	}

	s.log.Error("%s: %s", rowType, detail)

	*s.target.Banner = Banner{State: grid.Offline, Text: ErrorBannerText}
	*s.target.Alerts = AlertsRegion{Rows: []AlertRow{{
		Class:  grid.SeverityHigh,
		Type:   rowType,
		Detail: detail,
	}}}
	*s.target.Status = StatusRegion{Badge: BadgeError, Message: ErrorStatusMessage}
}
