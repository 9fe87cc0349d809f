package playback

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// maxSeekSecond is the largest position a time.Duration offset can hold
const maxSeekSecond = math.MaxInt64 / int64(time.Second)

// seekTarget resolves a seek argument against the current position.
// "+N" and "-N" are deltas, anything else is absolute. N is seconds,
// m:ss or h:mm:ss. Targets before the start clamp to zero, targets past
// maxSeekSecond are rejected.
func seekTarget(arg string, current int64) (int64, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return 0, ErrInvalidSeekTarget
	}

	sign := int64(0)
	switch arg[0] {
	case '+':
		sign = 1
		arg = arg[1:]
	case '-':
		sign = -1
		arg = arg[1:]
	}

	seconds, err := parseTimestamp(arg)
	if err != nil {
		return 0, err
	}

	target := seconds
	if sign != 0 {
		target = current + sign*seconds
	}

	if target > maxSeekSecond {
		return 0, fmt.Errorf("%w: %q is too far", ErrInvalidSeekTarget, arg)
	}

	return max(target, 0), nil
}

func parseTimestamp(value string) (int64, error) {
	parts := strings.Split(value, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeekTarget, value)
	}

	var total int64
	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSeekTarget, value)
		}

		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSeekTarget, value)
		}

		// Only the leading field may exceed a minute
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSeekTarget, value)
		}

		// Bounding both keeps total*60 + n inside int64
		if n > maxSeekSecond {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSeekTarget, value)
		}
		total = total*60 + n
		if total > maxSeekSecond {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSeekTarget, value)
		}
	}

	return total, nil
}
