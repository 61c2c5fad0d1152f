package config

const (
	defaultLogLevel  = "info"
	defaultServeAddr = ":9980"
	defaultWidthPx   = 900
	defaultHeightPx  = 520
)

// applyDefaults 只补空值；baseline 的零值是合法取值，不做默认处理。
func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = defaultLogLevel
	}
	if c.Input.Columns.Var == "" {
		c.Input.Columns.Var = "var"
	}
	if c.Input.Columns.Level == "" {
		c.Input.Columns.Level = "level"
	}
	if c.Input.Columns.Val == "" {
		c.Input.Columns.Val = "val"
	}
	if c.Input.Columns.Result == "" {
		c.Input.Columns.Result = "result"
	}
	if c.Chart.XLab == "" {
		c.Chart.XLab = "Result"
	}
	if c.Chart.YLab == "" {
		c.Chart.YLab = "Parameter"
	}
	if c.Chart.Width <= 0 {
		c.Chart.Width = defaultWidthPx
	}
	if c.Chart.Height <= 0 {
		c.Chart.Height = defaultHeightPx
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = defaultServeAddr
	}
}
