// Package visual 把 ChartSpec 翻译成 go-echarts 的水平条形图。
// 这里只做配置翻译，不碰渲染引擎本身：类目轴 = 排序后的变量，
// 数值轴锁定在计算好的边界上，图例隐藏，条上文字是原始参数取值。
package visual

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"tornado/internal/tornado"
)

const (
	colorBackground = "#ffffff"
	colorHigh       = "#34d399"
	colorLow        = "#f87171"

	defaultWidthPx  = 900
	defaultHeightPx = 520
)

// Config 控制画布，不影响图表的逻辑契约。
type Config struct {
	Title  string
	Width  int
	Height int
}

// RenderHTML 渲染完整的图表页面。
func RenderHTML(spec *tornado.ChartSpec, cfg Config) ([]byte, error) {
	if spec == nil {
		return nil, fmt.Errorf("nil chart spec")
	}
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(BuildBar(spec, cfg))
	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBar 组装条形图：XY 翻转得到水平条，level 决定填充色。
func BuildBar(spec *tornado.ChartSpec, cfg Config) *charts.Bar {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidthPx
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeightPx
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:           fmt.Sprintf("%dpx", cfg.Width),
			Height:          fmt.Sprintf("%dpx", cfg.Height),
			BackgroundColor: colorBackground,
		}),
		charts.WithTitleOpts(opts.Title{Title: cfg.Title, Left: "left"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		// XYReversal 只把类目 Data 从 X 轴搬到 Y 轴，轴的其余配置原地不动：
		// X 轴始终是数值轴（边界、刻度、去基线的标签都配在这里），
		// Y 轴不设 type，待 Data 迁移过去后按 echarts 规则自动成为类目轴。
		charts.WithXAxisOpts(opts.XAxis{
			Type:        "value",
			Name:        spec.XLab,
			Min:         spec.Axis.Lower,
			Max:         spec.Axis.Upper,
			SplitNumber: tickSplits(spec.Axis),
			AxisLabel: &opts.AxisLabel{
				Show:      opts.Bool(true),
				Formatter: uncenteredLabel(spec.Baseline),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: spec.YLab,
		}),
	)
	bar.SetXAxis(spec.Order)
	addLevelSeries(bar, spec)
	bar.XYReversal()
	return bar
}

// addLevelSeries 每个档位一条 series，数据槽位跟随 spec.Order。
// 同一 (变量, 档位) 出现多行时溢出到追加的同名 series，条不会互相覆盖。
func addLevelSeries(bar *charts.Bar, spec *tornado.ChartSpec) {
	slot := make(map[string]int, len(spec.Order))
	for i, name := range spec.Order {
		slot[name] = i
	}
	var levels []tornado.Level
	rounds := make(map[tornado.Level][][]opts.BarData)
	for _, entry := range spec.Entries {
		idx, ok := slot[entry.Variable]
		if !ok {
			continue
		}
		if _, seen := rounds[entry.Level]; !seen {
			levels = append(levels, entry.Level)
		}
		row := -1
		for r, data := range rounds[entry.Level] {
			if data[idx].Value == nil {
				row = r
				break
			}
		}
		if row < 0 {
			rounds[entry.Level] = append(rounds[entry.Level], emptyRow(len(spec.Order)))
			row = len(rounds[entry.Level]) - 1
		}
		rounds[entry.Level][row][idx] = opts.BarData{
			Value: entry.Centered,
			Label: &opts.Label{
				Show:      opts.Bool(true),
				Position:  "right",
				Formatter: formatValue(entry.Value),
			},
		}
	}
	for _, level := range levels {
		for _, data := range rounds[level] {
			bar.AddSeries(string(level), data,
				charts.WithItemStyleOpts(opts.ItemStyle{Color: levelColor(level)}),
			)
		}
	}
}

func emptyRow(width int) []opts.BarData {
	row := make([]opts.BarData, width)
	for i := range row {
		row[i] = opts.BarData{Value: nil}
	}
	return row
}

func levelColor(level tornado.Level) string {
	if level == tornado.LevelLow {
		return colorLow
	}
	return colorHigh
}

// uncenteredLabel 让数值轴在去基线的坐标上显示加回基线的刻度值，
// 与 Axis.Labels 的两位小数口径一致。
func uncenteredLabel(baseline float64) types.FuncStr {
	return opts.FuncOpts(fmt.Sprintf(
		"function (value) { return (value + %s).toFixed(2); }",
		strconv.FormatFloat(baseline, 'g', -1, 64),
	))
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// tickSplits 返回数值轴的分段数：刻度数减一。
func tickSplits(axis tornado.Axis) int {
	if len(axis.Ticks) < 2 {
		return 1
	}
	return len(axis.Ticks) - 1
}
