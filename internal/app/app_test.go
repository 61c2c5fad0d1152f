package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tornado/internal/config"
)

func testConfig(t *testing.T, csvBody string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(inputPath, []byte(csvBody), 0o644))
	return &config.Config{
		App:   config.AppConfig{LogLevel: "error"},
		Input: config.InputConfig{Path: inputPath, Baseline: 0.8},
		Chart: config.ChartConfig{XLab: "Result", YLab: "Parameter", Width: 900, Height: 520},
		Output: config.OutputConfig{
			HTML: filepath.Join(dir, "out", "chart.html"),
		},
	}
}

const carCSV = `var,level,val,result
price,high,10,0.95
price,low,20,0.15
fuelEconomy,high,25,0.90
fuelEconomy,low,15,0.60
accelTime,high,10,0.85
accelTime,low,6,0.75
`

func TestRunOneShot(t *testing.T) {
	cfg := testConfig(t, carCSV)
	a, err := NewApp(cfg)
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	html, err := os.ReadFile(cfg.Output.HTML)
	require.NoError(t, err)
	assert.Contains(t, string(html), "echarts")

	snap := a.snapshot()
	require.NoError(t, snap.Err)
	assert.Equal(t, []string{"accelTime", "fuelEconomy", "price"}, snap.Spec.Order)
}

func TestRunSurfacesPrepErrors(t *testing.T) {
	cfg := testConfig(t, "var,level,val\nprice,high,10\n")
	a, err := NewApp(cfg)
	require.NoError(t, err)
	err = a.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestReloadReplacesSnapshot(t *testing.T) {
	cfg := testConfig(t, carCSV)
	a, err := NewApp(cfg)
	require.NoError(t, err)

	snap := a.reload()
	require.NoError(t, snap.Err)
	assert.Len(t, snap.Spec.Entries, 6)

	// 输入损坏后快照携带错误，旧图不再返回
	require.NoError(t, os.WriteFile(cfg.Input.Path, []byte("var,level\nprice,high\n"), 0o644))
	snap = a.reload()
	require.Error(t, snap.Err)
	assert.Error(t, a.snapshot().Err)
}

func TestNewAppRejectsNilConfig(t *testing.T) {
	_, err := NewApp(nil)
	assert.Error(t, err)
}

func TestDebounceDropsStaleTick(t *testing.T) {
	deb := &debounce{d: 20 * time.Millisecond}
	deb.bump()
	// 让定时器到期但不消费，制造残留 tick
	time.Sleep(60 * time.Millisecond)
	deb.bump()

	select {
	case <-deb.fire:
		t.Fatal("fired before the debounce window elapsed")
	case <-time.After(10 * time.Millisecond):
	}
	select {
	case <-deb.fire:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("debounce never fired")
	}
	deb.done()
	assert.Nil(t, deb.fire)
}
