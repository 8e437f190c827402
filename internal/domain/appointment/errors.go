package appointment

import "errors"

// ErrRecordNotFound is returned by repositories for missing rows. Use cases
// translate it into a not-found business error naming the entity.
var ErrRecordNotFound = errors.New("record not found")
