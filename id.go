package clubsync

import "github.com/xraph/clubsync/id"

// ID is the primary identifier type for all portal entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
