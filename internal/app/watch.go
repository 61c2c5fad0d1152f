package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"tornado/internal/logger"
)

// 编辑器保存往往触发连续多个事件，合并成一次重载。
const watchDebounce = 200 * time.Millisecond

// watchInput 监听输入文件所在目录，变化后重新整理快照。
// 监听目录而不是文件本身，避免原子替换（rename+create）后丢失 watch。
func (a *App) watchInput(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting input watcher failed: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(a.cfg.Input.Path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s failed: %w", filepath.Dir(target), err)
	}
	logger.Infof("watching %s for changes", target)

	deb := &debounce{d: watchDebounce}
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != target {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			deb.bump()
		case <-deb.fire:
			deb.done()
			logger.Infof("input changed, reloading %s", target)
			a.reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("input watcher error: %v", err)
		}
	}
}

// debounce 把密集的触发合并成一次到期信号；未触发时 fire 为 nil，select 上永远阻塞。
type debounce struct {
	d     time.Duration
	timer *time.Timer
	fire  <-chan time.Time
}

// bump 推迟到期时刻。定时器可能已经到期但还没被消费，
// Reset 前必须把残留的 tick 排掉，否则会提前多触发一次。
func (b *debounce) bump() {
	if b.timer == nil {
		b.timer = time.NewTimer(b.d)
		b.fire = b.timer.C
		return
	}
	if !b.timer.Stop() {
		select {
		case <-b.fire:
		default:
		}
	}
	b.timer.Reset(b.d)
}

// done 在消费完 fire 后复位。
func (b *debounce) done() {
	b.timer = nil
	b.fire = nil
}
