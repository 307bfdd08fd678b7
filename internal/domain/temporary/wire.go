package temporary

import "github.com/google/wire"

// ProviderSet Temporary 领域层 ProviderSet
var ProviderSet = wire.NewSet(
	NewManager,
)
