package notify

import (
	"fmt"
	"math"
	"testing"

	"github.com/decker502/lootfeed/pkg/quality"
)

func driverConfig() Config {
	return Config{
		Enabled:        true,
		IconSize:       24,
		FontSize:       16,
		Lifetime:       3,
		FadeStart:      2,
		ScrollDistance: 120,
		Mode:           ModeScrolling,
		MaxVisible:     5,
		Align:          AlignLeft,
		MinQuality:     quality.TierCommon,
		GlowEnabled:    true,
		GlowMinQuality: quality.TierRare,
		ScreenWidth:    800,
		ScreenHeight:   600,
	}
}

func itemContent(text string, tier quality.Tier) Content {
	return Content{
		Icon:         "inv_misc_bag_08",
		Text:         text,
		Quality:      tier,
		HasQuality:   true,
		ContentWidth: 150,
	}
}

// TestSpawnSequence 测试依次激活 N 条通知后活动集恰有 N 项
func TestSpawnSequence(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()

	for i := 1; i <= cfg.MaxVisible; i++ {
		if _, ok := d.Spawn(cfg, itemContent(fmt.Sprintf("item %d", i), quality.TierCommon)); !ok {
			t.Fatalf("Spawn #%d should succeed", i)
		}
		if d.ActiveCount() != i {
			t.Fatalf("ActiveCount after %d spawns: got %d, want %d", i, d.ActiveCount(), i)
		}
	}
}

// TestSpawnEvictsOldest 测试超出上限时驱逐最旧的一条
func TestSpawnEvictsOldest(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()
	cfg.MaxVisible = 3

	for i := 1; i <= 3; i++ {
		d.Spawn(cfg, itemContent(fmt.Sprintf("item %d", i), quality.TierCommon))
	}

	d.Spawn(cfg, itemContent("item 4", quality.TierCommon))

	if d.ActiveCount() != 3 {
		t.Fatalf("ActiveCount after overflow: got %d, want 3", d.ActiveCount())
	}
	// 最旧的 item 1 被驱逐，活动集保持插入序
	if d.Active()[0].Text != "item 2" {
		t.Errorf("oldest remaining: got %q, want %q", d.Active()[0].Text, "item 2")
	}
	if d.Active()[2].Text != "item 4" {
		t.Errorf("newest: got %q, want %q", d.Active()[2].Text, "item 4")
	}
	// 被驱逐的实例回到池中
	if d.Pool().FreeCount() != 1 {
		t.Errorf("FreeCount after eviction: got %d, want 1", d.Pool().FreeCount())
	}
}

// TestSpawnGating 测试总开关与品质过滤
func TestSpawnGating(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()
	cfg.MinQuality = quality.TierRare

	// 低于最低品质被过滤
	if _, ok := d.Spawn(cfg, itemContent("grey junk", quality.TierPoor)); ok {
		t.Error("Spawn below MinQuality should be filtered")
	}

	// 不携带品质的事实（金钱/荣誉）不参与品质过滤
	money := Content{Text: "1 Gold", ContentWidth: 80}
	if _, ok := d.Spawn(cfg, money); !ok {
		t.Error("Spawn without quality should bypass the quality filter")
	}

	// 总开关关闭时全部过滤
	cfg.Enabled = false
	if _, ok := d.Spawn(cfg, itemContent("epic item", quality.TierEpic)); ok {
		t.Error("Spawn with Enabled=false should be filtered")
	}
}

// TestSpawnPreviewExempt 测试预览实例豁免开关与品质过滤
func TestSpawnPreviewExempt(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()
	cfg.Enabled = false
	cfg.MinQuality = quality.TierEpic

	c := itemContent("preview item", quality.TierPoor)
	c.Preview = true
	toast, ok := d.Spawn(cfg, c)
	if !ok {
		t.Fatal("preview Spawn should bypass enabled/quality gating")
	}
	if !toast.Preview {
		t.Error("spawned toast should carry the preview flag")
	}
}

// TestSpawnGlow 测试发光效果的独立品质过滤
func TestSpawnGlow(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig() // GlowMinQuality = Rare

	low, _ := d.Spawn(cfg, itemContent("common", quality.TierCommon))
	high, _ := d.Spawn(cfg, itemContent("epic", quality.TierEpic))

	if low.Glow {
		t.Error("below GlowMinQuality should not glow")
	}
	if !high.Glow {
		t.Error("at/above GlowMinQuality should glow")
	}

	cfg.GlowEnabled = false
	off, _ := d.Spawn(cfg, itemContent("epic 2", quality.TierEpic))
	if off.Glow {
		t.Error("glow disabled in config should not glow")
	}
}

// TestUpdateRetires 测试到期通知在同一帧内退役并归还池
func TestUpdateRetires(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()
	cfg.Lifetime = 1.0

	toast, _ := d.Spawn(cfg, itemContent("short lived", quality.TierCommon))

	d.Update(0.5, cfg)
	if d.ActiveCount() != 1 {
		t.Fatalf("ActiveCount at 0.5s: got %d, want 1", d.ActiveCount())
	}

	// 跨过生命周期：退役、归还、立即复用时状态干净
	d.Update(0.6, cfg)
	if d.ActiveCount() != 0 {
		t.Fatalf("ActiveCount after lifetime: got %d, want 0", d.ActiveCount())
	}
	if d.Pool().FreeCount() != 1 {
		t.Errorf("FreeCount after retirement: got %d, want 1", d.Pool().FreeCount())
	}

	again := d.Pool().Acquire()
	if again != toast {
		t.Fatal("retired instance should be reusable from the pool")
	}
	if again.Elapsed != 0 || again.Preview || again.Glow {
		t.Error("reacquired instance should be fully reset")
	}
}

// TestUpdateExactLifetime 测试恰好到达生命周期也退役（边界闭区间）
func TestUpdateExactLifetime(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()
	cfg.Lifetime = 2.0

	d.Spawn(cfg, itemContent("boundary", quality.TierCommon))
	d.Update(2.0, cfg)

	if d.ActiveCount() != 0 {
		t.Errorf("ActiveCount at elapsed == lifetime: got %d, want 0", d.ActiveCount())
	}
}

// TestClearPreviews 测试预览结束时只清除预览实例
func TestClearPreviews(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()

	d.Spawn(cfg, itemContent("real", quality.TierCommon))
	p := itemContent("preview", quality.TierCommon)
	p.Preview = true
	d.Spawn(cfg, p)
	d.Spawn(cfg, itemContent("real 2", quality.TierCommon))

	d.ClearPreviews()

	if d.ActiveCount() != 2 {
		t.Fatalf("ActiveCount after ClearPreviews: got %d, want 2", d.ActiveCount())
	}
	for _, toast := range d.Active() {
		if toast.Preview {
			t.Error("preview toast left in active set after ClearPreviews")
		}
	}
}

// TestPositionOfScrolling 测试滚动模式的位置推导
func TestPositionOfScrolling(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()

	toast, _ := d.Spawn(cfg, itemContent("mover", quality.TierCommon))
	_, y0 := PositionOf(cfg, toast)

	d.Update(1.5, cfg) // 半程
	_, y1 := PositionOf(cfg, toast)

	want := cfg.ScrollDistance * 0.5
	if got := y0 - y1; math.Abs(got-want) > 1e-9 {
		t.Errorf("scroll travel at half lifetime: got %v, want %v", got, want)
	}
}

// TestPositionOfTracksConfigChange 测试显示期间修改偏移立即生效
func TestPositionOfTracksConfigChange(t *testing.T) {
	d := NewDriver()
	cfg := driverConfig()

	toast, _ := d.Spawn(cfg, itemContent("dragged", quality.TierCommon))
	x0, _ := PositionOf(cfg, toast)

	// 拖拽改位：下一帧位置必须反映新偏移，而不是缓存的旧锚点
	cfg.OffsetX += 77
	x1, _ := PositionOf(cfg, toast)

	if x1-x0 != 77 {
		t.Errorf("position after live offset change: got shift %v, want 77", x1-x0)
	}
}

// TestAlphaOfScrolling 测试滚动模式的透明度曲线
func TestAlphaOfScrolling(t *testing.T) {
	cfg := driverConfig() // Lifetime=3, FadeStart=2

	tests := []struct {
		elapsed float64
		want    float64
	}{
		{0, 1},    // 激活瞬间完全不透明
		{1.9, 1},  // 淡出起点前恒为 1
		{2.5, 0.5}, // 淡出中点
		{3, 0},    // 生命周期终点为 0
	}

	for _, tt := range tests {
		got := AlphaOf(cfg, tt.elapsed)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AlphaOf(scrolling, %v): got %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

// TestAlphaOfStatic 测试静态模式的淡入淡出曲线
func TestAlphaOfStatic(t *testing.T) {
	cfg := driverConfig()
	cfg.Mode = ModeStatic // 淡入窗口 0.3s

	// 激活瞬间从 0 开始淡入
	if got := AlphaOf(cfg, 0); got != 0 {
		t.Errorf("AlphaOf(static, 0): got %v, want 0", got)
	}
	// 淡入窗口中点
	if got := AlphaOf(cfg, 0.15); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("AlphaOf(static, 0.15): got %v, want 0.5", got)
	}
	// 淡入完成后保持 1
	if got := AlphaOf(cfg, 1.0); got != 1 {
		t.Errorf("AlphaOf(static, 1.0): got %v, want 1", got)
	}
	// 生命周期终点为 0
	if got := AlphaOf(cfg, 3.0); got != 0 {
		t.Errorf("AlphaOf(static, 3.0): got %v, want 0", got)
	}
}

// TestAlphaOfStaticOverlap 测试淡入窗口越过淡出起点时两系数相乘
func TestAlphaOfStaticOverlap(t *testing.T) {
	cfg := driverConfig()
	cfg.Mode = ModeStatic
	cfg.Lifetime = 1.0
	cfg.FadeStart = 0.1 // 淡入窗口(0.3s)越过淡出起点

	elapsed := 0.2
	fadeIn := elapsed / 0.3
	fadeOut := 1 - (elapsed-0.1)/(1.0-0.1)
	want := fadeIn * fadeOut

	if got := AlphaOf(cfg, elapsed); math.Abs(got-want) > 1e-9 {
		t.Errorf("AlphaOf overlap: got %v, want %v (multiplicative blend)", got, want)
	}
}

// TestAlphaOfClamped 测试配置不一致时透明度仍被钳制在 [0,1]
func TestAlphaOfClamped(t *testing.T) {
	cfg := driverConfig()
	cfg.FadeStart = 5 // 淡出起点在生命周期之后（配置不一致）
	cfg.Lifetime = 3

	for _, elapsed := range []float64{0, 2, 5, 10} {
		got := AlphaOf(cfg, elapsed)
		if got < 0 || got > 1 {
			t.Errorf("AlphaOf(%v) out of range: got %v", elapsed, got)
		}
	}
}
