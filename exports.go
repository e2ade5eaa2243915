package clubsync

import "github.com/xraph/clubsync/types"

// Re-export common types for convenience so users don't have to import types package.

// Money is re-exported from types package.
type Money = types.Money

// Entity is re-exported from types package.
type Entity = types.Entity

// Period is re-exported from types package.
type Period = types.Period

// TimeOfDay is re-exported from types package.
type TimeOfDay = types.TimeOfDay

// Re-export Money constructors
var (
	ARS  = types.ARS
	USD  = types.USD
	EUR  = types.EUR
	Zero = types.Zero
	Sum  = types.Sum
)

// Re-export Period constructors
var (
	PeriodOf    = types.PeriodOf
	ParsePeriod = types.ParsePeriod
)

// Re-export TimeOfDay constructors
var (
	ParseTimeOfDay = types.ParseTimeOfDay
	MustTimeOfDay  = types.MustTimeOfDay
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
