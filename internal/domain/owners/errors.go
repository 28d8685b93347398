package owners

import "errors"

// ErrNotFound lo devuelven los adapters de storage cuando el id no resuelve.
var ErrNotFound = errors.New("owner not found")
