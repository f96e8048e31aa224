package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time so workers and tests compare the same instant.
// All pipeline comparisons happen in UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func NewSystem() Clock { return systemClock{} }

var Module = fx.Options(
	fx.Provide(NewSystem),
)
