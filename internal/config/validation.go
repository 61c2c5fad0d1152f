package config

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// ResolvedFormat 返回输入格式，配置留空时按文件扩展名推断。
func (c InputConfig) ResolvedFormat() string { return c.normalizedFormat() }

func (c InputConfig) normalizedFormat() string {
	format := strings.ToLower(strings.TrimSpace(c.Format))
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".json":
		return "json"
	default:
		return "csv"
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Input.Path) == "" {
		return fmt.Errorf("input.path is required")
	}
	switch cfg.Input.normalizedFormat() {
	case "csv", "json":
	default:
		return fmt.Errorf("input.format must be csv or json, got %q", cfg.Input.Format)
	}
	if cfg.Input.SchemaPath != "" && cfg.Input.normalizedFormat() != "json" {
		return fmt.Errorf("input.schema_path only applies to json input")
	}
	if math.IsNaN(cfg.Input.Baseline) || math.IsInf(cfg.Input.Baseline, 0) {
		return fmt.Errorf("input.baseline must be a finite number")
	}
	if cfg.Output.HTML == "" && cfg.Output.PNG == "" && !cfg.Serve.Enabled {
		return fmt.Errorf("nothing to do: set output.html, output.png or serve.enabled")
	}
	if cfg.Serve.Watch && !cfg.Serve.Enabled {
		return fmt.Errorf("serve.watch requires serve.enabled")
	}
	return nil
}
