package application

import (
	"github.com/google/wire"
	"github.com/tempod/backend/internal/application/temporary"
)

// ProviderSet Application 层总 ProviderSet
var ProviderSet = wire.NewSet(
	temporary.ProviderSet,
)
