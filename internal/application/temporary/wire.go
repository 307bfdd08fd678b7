package temporary

import "github.com/google/wire"

// ProviderSet Temporary 应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewTimerService,
)
