package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ParseTTL turns a token lifetime into a duration. It accepts Go durations ("36h")
// as well as English expressions of the expiry moment ("next saturday at 11pm",
// "in 3 days"), which are resolved relative to now. Empty input yields zero, which
// GenerateToken replaces with the service default.
func ParseTTL(input string, now time.Time) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(input); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, input)
		}
		return d, nil
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	r, err := w.Parse(strings.ToLower(input), now)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTTL, input, err)
	}
	if r == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTTL, input)
	}
	ttl := r.Time.Sub(now)
	if ttl <= 0 {
		return 0, fmt.Errorf("%w: %q is in the past", ErrInvalidTTL, input)
	}
	return ttl, nil
}
