package scheduler

import "github.com/google/wire"

// ProviderSet Scheduler 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	NewWallClock,
)
