package tornado

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"tornado/internal/table"
)

const tickCount = 6

// Prep 把敏感性结果表整理成 ChartSpec，五步严格顺序执行：
// 投影 → 去基线 → 分组求影响幅度 → 轴边界 → 刻度，纯函数，不改输入。
func Prep(tbl *table.Table, opts Options) (*ChartSpec, error) {
	opts = opts.withDefaults()
	if math.IsNaN(opts.Baseline) || math.IsInf(opts.Baseline, 0) {
		return nil, fmt.Errorf("baseline must be a finite number, got %v", opts.Baseline)
	}
	records, err := project(tbl, opts)
	if err != nil {
		return nil, err
	}
	entries := center(records, opts.Baseline)
	order := rankByImpact(entries)
	axis := buildAxis(entries, opts.Baseline)
	return &ChartSpec{
		Baseline: opts.Baseline,
		Entries:  entries,
		Order:    order,
		Axis:     axis,
		XLab:     opts.XLab,
		YLab:     opts.YLab,
	}, nil
}

// project 把四个命名列投影到规范结构，保持行序。
// 列缺失在解析任何数值之前就以 SchemaError 报出。
func project(tbl *table.Table, opts Options) ([]Record, error) {
	for _, col := range []string{opts.VarColumn, opts.LevelColumn, opts.ValueColumn, opts.ResultColumn} {
		if !tbl.HasColumn(col) {
			return nil, &SchemaError{Column: col}
		}
	}
	if tbl.Len() == 0 {
		return nil, ErrEmptyInput
	}
	records := make([]Record, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		name, _ := tbl.Cell(i, opts.VarColumn)
		level, _ := tbl.Cell(i, opts.LevelColumn)
		value, err := numericCell(tbl, i, opts.ValueColumn)
		if err != nil {
			return nil, err
		}
		result, err := numericCell(tbl, i, opts.ResultColumn)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			Variable: name,
			Level:    Level(level),
			Value:    value,
			Result:   result,
		})
	}
	return records, nil
}

func numericCell(tbl *table.Table, row int, column string) (float64, error) {
	cell, _ := tbl.Cell(row, column)
	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d column %q: %q is not a number", row, column, cell)
	}
	return value, nil
}

func center(records []Record, baseline float64) []Entry {
	entries := make([]Entry, len(records))
	for i, rec := range records {
		entries[i] = Entry{
			Variable: rec.Variable,
			Level:    rec.Level,
			Value:    rec.Value,
			Centered: rec.Result - baseline,
		}
	}
	return entries
}

// rankByImpact 计算每个变量的 Σ|Centered|，写回每条 Entry，
// 并返回按影响幅度升序的变量序。相等时保持首次出现的顺序。
func rankByImpact(entries []Entry) []string {
	totals := make(map[string]float64, len(entries))
	order := make([]string, 0, len(entries))
	for i := range entries {
		name := entries[i].Variable
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += math.Abs(entries[i].Centered)
	}
	for i := range entries {
		entries[i].ImpactRange = totals[entries[i].Variable]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] < totals[order[j]]
	})
	return order
}

// buildAxis 把边界向外取整到 0.1，再在两界之间等分出 6 个刻度。
// 边界重合（所有去基线结果落在同一取整值）时，两侧各放宽一个取整单位，
// 保证刻度间距非零，不会产出 NaN/Inf。
func buildAxis(entries []Entry, baseline float64) Axis {
	minC, maxC := entries[0].Centered, entries[0].Centered
	for _, e := range entries[1:] {
		if e.Centered < minC {
			minC = e.Centered
		}
		if e.Centered > maxC {
			maxC = e.Centered
		}
	}
	lower := decimal.NewFromFloat(minC).RoundFloor(1)
	upper := decimal.NewFromFloat(maxC).RoundCeil(1)
	if lower.Equal(upper) {
		unit := decimal.New(1, -1)
		lower = lower.Sub(unit)
		upper = upper.Add(unit)
	}
	step := upper.Sub(lower).Div(decimal.NewFromInt(tickCount - 1))
	base := decimal.NewFromFloat(baseline)
	ticks := make([]float64, tickCount)
	labels := make([]string, tickCount)
	for i := 0; i < tickCount; i++ {
		pos := lower.Add(step.Mul(decimal.NewFromInt(int64(i))))
		ticks[i], _ = pos.Float64()
		labels[i] = pos.Add(base).StringFixed(2)
	}
	lowerF, _ := lower.Float64()
	upperF, _ := upper.Float64()
	return Axis{Lower: lowerF, Upper: upperF, Ticks: ticks, Labels: labels}
}
