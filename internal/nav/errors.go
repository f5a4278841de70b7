package nav

import "errors"

// ErrSplash is returned when the first collection or its view cannot be
// built. There is nothing to fall back to, so the caller must exit.
var ErrSplash = errors.New("cannot build initial view")
