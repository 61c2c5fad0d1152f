package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"tornado/internal/config"
	"tornado/internal/logger"
	"tornado/internal/table"
	"tornado/internal/tornado"
	tornadohttp "tornado/internal/transport/http"
	"tornado/internal/visual"
)

// App 负责应用级编排：读表 → 整理 → 渲染落盘 → 可选预览服务与文件监听。
type App struct {
	cfg *config.Config

	mu   sync.RWMutex
	snap tornadohttp.Snapshot
}

// NewApp 根据配置构建应用对象（不启动）。
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return &App{cfg: cfg}, nil
}

// Run 执行一次完整的整理与渲染；serve 开启时继续运行预览服务。
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	snap := a.reload()
	if snap.Err != nil && !a.cfg.Serve.Enabled {
		return snap.Err
	}
	if snap.Err == nil {
		if err := a.writeOutputs(ctx, snap); err != nil {
			return err
		}
	}
	if !a.cfg.Serve.Enabled {
		return nil
	}

	server, err := tornadohttp.NewServer(tornadohttp.ServerConfig{
		Addr:   a.cfg.Serve.Addr,
		Source: a.snapshot,
	})
	if err != nil {
		return err
	}
	logger.Infof("preview server listening on %s", server.Addr())

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("preview server error: %w", err)
		}
		return nil
	})
	if a.cfg.Serve.Watch {
		group.Go(func() error {
			return a.watchInput(ctx)
		})
	}
	return group.Wait()
}

// reload 重新载入输入表并整理出新的快照。出错时保留错误供服务端展示。
func (a *App) reload() tornadohttp.Snapshot {
	snap := buildSnapshot(a.cfg)
	a.mu.Lock()
	a.snap = snap
	a.mu.Unlock()
	if snap.Err != nil {
		logger.Errorw("chart prep failed", "err", snap.Err)
	} else {
		logger.Infow("chart ready",
			"entries", len(snap.Spec.Entries),
			"variables", len(snap.Spec.Order),
			"axis_lower", snap.Spec.Axis.Lower,
			"axis_upper", snap.Spec.Axis.Upper,
		)
	}
	return snap
}

func (a *App) snapshot() tornadohttp.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

func buildSnapshot(cfg *config.Config) tornadohttp.Snapshot {
	tbl, err := loadTable(cfg.Input)
	if err != nil {
		return tornadohttp.Snapshot{Err: err}
	}
	spec, err := tornado.Prep(tbl, tornado.Options{
		Baseline:     cfg.Input.Baseline,
		VarColumn:    cfg.Input.Columns.Var,
		LevelColumn:  cfg.Input.Columns.Level,
		ValueColumn:  cfg.Input.Columns.Val,
		ResultColumn: cfg.Input.Columns.Result,
		XLab:         cfg.Chart.XLab,
		YLab:         cfg.Chart.YLab,
	})
	if err != nil {
		return tornadohttp.Snapshot{Err: err}
	}
	html, err := visual.RenderHTML(spec, visual.Config{
		Title:  cfg.Chart.Title,
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
	})
	if err != nil {
		return tornadohttp.Snapshot{Err: err}
	}
	return tornadohttp.Snapshot{Spec: spec, HTML: html}
}

func loadTable(input config.InputConfig) (*table.Table, error) {
	switch input.ResolvedFormat() {
	case "json":
		return table.LoadJSON(input.Path, input.SchemaPath)
	default:
		return table.LoadCSV(input.Path)
	}
}

func (a *App) writeOutputs(ctx context.Context, snap tornadohttp.Snapshot) error {
	if a.cfg.Output.HTML != "" {
		if err := writeFile(a.cfg.Output.HTML, snap.HTML); err != nil {
			return fmt.Errorf("writing html output failed: %w", err)
		}
		logger.Infof("wrote %s", a.cfg.Output.HTML)
	}
	if a.cfg.Output.PNG != "" {
		png, err := visual.RenderPNG(ctx, snap.HTML, a.cfg.Chart.Width, a.cfg.Chart.Height)
		if err != nil {
			return fmt.Errorf("rendering png failed: %w", err)
		}
		if err := writeFile(a.cfg.Output.PNG, png); err != nil {
			return fmt.Errorf("writing png output failed: %w", err)
		}
		logger.Infof("wrote %s", a.cfg.Output.PNG)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
