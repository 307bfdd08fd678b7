package infrastructure

import (
	"github.com/google/wire"
	"github.com/tempod/backend/internal/infrastructure/config"
	"github.com/tempod/backend/internal/infrastructure/notification"
	"github.com/tempod/backend/internal/infrastructure/scheduler"
	"github.com/tempod/backend/internal/infrastructure/storage"
	"github.com/tempod/backend/internal/infrastructure/watcher"
	"github.com/tempod/backend/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	scheduler.ProviderSet,
	storage.ProviderSet,
	watcher.ProviderSet,
	websocket.ProviderSet,
	notification.ProviderSet,
)
