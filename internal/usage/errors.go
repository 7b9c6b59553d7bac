package usage

import "errors"

// ErrLimitReached indicates the user exhausted their daily AI quota.
var ErrLimitReached = errors.New("daily AI limit reached")
