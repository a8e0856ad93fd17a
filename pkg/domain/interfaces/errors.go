package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is wrapped by every repository backend when a record is missing
var ErrNotFound = goerr.New("not found")
