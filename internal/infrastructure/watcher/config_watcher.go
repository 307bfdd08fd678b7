package watcher

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/tempod/backend/internal/infrastructure/config"
	applog "github.com/tempod/backend/internal/infrastructure/log"
)

// ConfigWatcher 配置文件监听器
// 监听 ~/.tempod/config.yaml 的变更并热更新日志级别
// 管理器相关配置在进程生命周期内不变，变更只在重启后生效
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	done    chan struct{}
}

// NewConfigWatcher 创建配置文件监听器
func NewConfigWatcher() *ConfigWatcher {
	path, err := config.DefaultConfigPath()
	if err != nil {
		path = ""
	}
	return &ConfigWatcher{
		path:   path,
		logger: applog.NewModuleLogger("watcher", "config_watcher"),
		done:   make(chan struct{}),
	}
}

// Start 启动监听
// 配置文件所在目录不存在或无法监听时仅记录日志，不影响启动
func (w *ConfigWatcher) Start() error {
	if w.path == "" {
		w.logger.Warn("config path unavailable, hot reload disabled")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn("failed to create fsnotify watcher, hot reload disabled",
			"error", err,
		)
		return nil
	}

	// 监听目录而不是文件本身：编辑器保存往往是 rename+create
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		w.logger.Warn("failed to watch config directory, hot reload disabled",
			"dir", filepath.Dir(w.path),
			"error", err,
		)
		_ = watcher.Close()
		return nil
	}

	w.watcher = watcher
	go w.loop()

	w.logger.Info("config watcher started", "path", w.path)
	return nil
}

// Stop 停止监听，未启动时为空操作
func (w *ConfigWatcher) Stop() {
	if w.watcher == nil {
		return
	}
	close(w.done)
	_ = w.watcher.Close()
	w.logger.Info("config watcher stopped")
}

// loop 事件循环
func (w *ConfigWatcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}

// reload 重新读取配置文件并应用日志级别
func (w *ConfigWatcher) reload() {
	cfg := config.NewConfig()
	if err := cfg.MergeFile(w.path); err != nil {
		w.logger.Warn("failed to reload config file",
			"path", w.path,
			"error", err,
		)
		return
	}

	applog.SetLevel(cfg.Log.Level)
	w.logger.Info("config reloaded, log level applied",
		"level", cfg.Log.Level,
	)
}
