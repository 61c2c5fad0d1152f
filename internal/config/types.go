package config

// Config 是 tornado 的主配置载体。
type Config struct {
	App    AppConfig    `toml:"app"`
	Input  InputConfig  `toml:"input"`
	Chart  ChartConfig  `toml:"chart"`
	Output OutputConfig `toml:"output"`
	Serve  ServeConfig  `toml:"serve"`
}

type AppConfig struct {
	LogLevel string `toml:"log_level"`
	LogPath  string `toml:"log_path"`
}

// InputConfig 描述敏感性结果表的来源与列名映射。
type InputConfig struct {
	Path       string        `toml:"path"`
	Format     string        `toml:"format"` // "csv" | "json"，留空按扩展名判断
	SchemaPath string        `toml:"schema_path"`
	Baseline   float64       `toml:"baseline"`
	Columns    ColumnMapping `toml:"columns"`
}

// ColumnMapping 把输入表的列名映射到规范角色，留空使用默认列名。
type ColumnMapping struct {
	Var    string `toml:"var"`
	Level  string `toml:"level"`
	Val    string `toml:"val"`
	Result string `toml:"result"`
}

// ChartConfig 控制图表标题、轴标题与画布尺寸。
// XLab/YLab 的含义见 internal/tornado.Options。
type ChartConfig struct {
	Title  string `toml:"title"`
	XLab   string `toml:"xlab"`
	YLab   string `toml:"ylab"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// OutputConfig 指定渲染产物的落盘路径，留空则不生成对应产物。
type OutputConfig struct {
	HTML string `toml:"html"`
	PNG  string `toml:"png"`
}

// ServeConfig 控制预览服务与输入文件监听。
type ServeConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
	Watch   bool   `toml:"watch"`
}
