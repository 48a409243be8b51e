package obs

import (
	"context"
	"moving-presurvey-service/internal/platform/logging"
	"time"
)

// Time starts a timer for the named operation. Call the returned function
// with a pointer to the operation's error (typically a named result) to log
// its duration and outcome.
//
//	defer obs.Time(ctx, "google.Geocode")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		l := logging.Ctx(ctx)

		if errp != nil && *errp != nil {
			l.Warn().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Err(*errp).Msg("operation failed")
			return
		}
		l.Debug().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("operation complete")
	}
}
