// Package tornado 把敏感性分析结果表整理成龙卷风图的图表规格：
// 每个参数一组水平条，高/低两档相对基线的偏移，按影响幅度排序。
package tornado

// Level 标记某次敏感性运行把参数拨到了哪一档。
type Level string

const (
	LevelHigh Level = "high"
	LevelLow  Level = "low"
)

// Record 是一行输入：某个变量在某一档位下的一次运行。
type Record struct {
	Variable string  // 变量名
	Level    Level   // 档位，作为填充分组键
	Value    float64 // 被调整后的参数取值，显示为条上的文字
	Result   float64 // 该取值下的模型输出
}

// Entry 是去基线后的 Record，附带所属变量的影响幅度（仅用于排序）。
type Entry struct {
	Variable    string  `json:"variable"`
	Level       Level   `json:"level"`
	Value       float64 `json:"value"`
	Centered    float64 `json:"centered"`     // Result - Baseline
	ImpactRange float64 `json:"impact_range"` // Σ|Centered|，同一变量的所有行共享
}

// Axis 描述数值轴：边界与刻度在去基线后的尺度上，
// 标签加回基线并保留两位小数。
type Axis struct {
	Lower  float64   `json:"lower"`
	Upper  float64   `json:"upper"`
	Ticks  []float64 `json:"ticks"`
	Labels []string  `json:"labels"`
}

// ChartSpec 是交给渲染方的完整图表契约。
type ChartSpec struct {
	Baseline float64  `json:"baseline"`
	Entries  []Entry  `json:"entries"` // 与输入同序，一行一条
	Order    []string `json:"order"`   // 变量序：影响幅度升序，相等时按首次出现
	Axis     Axis     `json:"axis"`
	XLab     string   `json:"xlab"` // 数值轴标题
	YLab     string   `json:"ylab"` // 变量轴标题
}

// Options 控制列名映射与轴标题。
// 注意 XLab/YLab 的命名沿用原始约定：XLab 落在数值轴、YLab 落在变量轴，
// 与翻转后的视觉方向无关，不要对调。
type Options struct {
	Baseline     float64
	VarColumn    string
	LevelColumn  string
	ValueColumn  string
	ResultColumn string
	XLab         string
	YLab         string
}

func (o Options) withDefaults() Options {
	if o.VarColumn == "" {
		o.VarColumn = "var"
	}
	if o.LevelColumn == "" {
		o.LevelColumn = "level"
	}
	if o.ValueColumn == "" {
		o.ValueColumn = "val"
	}
	if o.ResultColumn == "" {
		o.ResultColumn = "result"
	}
	if o.XLab == "" {
		o.XLab = "Result"
	}
	if o.YLab == "" {
		o.YLab = "Parameter"
	}
	return o
}
