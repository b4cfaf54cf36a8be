package game

import (
	"os"
	"strings"
	"testing"

	"github.com/decker502/lootfeed/pkg/notify"
	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时目录创建 gdata 管理器
func newTestGdata(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认设置的关键字段
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s == nil {
		t.Fatal("DefaultSettings() returned nil")
	}
	if !s.Enabled {
		t.Error("Enabled: got false, want true")
	}
	if s.Duration != 3.0 {
		t.Errorf("Duration: got %v, want 3.0", s.Duration)
	}
	if s.FadeStart != 2.0 {
		t.Errorf("FadeStart: got %v, want 2.0", s.FadeStart)
	}
	if s.MaxVisible != 5 {
		t.Errorf("MaxVisible: got %v, want 5", s.MaxVisible)
	}
	if s.DisplayMode != "scroll" {
		t.Errorf("DisplayMode: got %q, want %q", s.DisplayMode, "scroll")
	}
	if s.HonorColor == nil {
		t.Fatal("HonorColor: got nil, want default color record")
	}
	if s.HonorColor.R != 255 || s.HonorColor.G != 64 || s.HonorColor.B != 64 {
		t.Errorf("HonorColor: got %+v, want {255 64 64}", *s.HonorColor)
	}
	if s.FastLoot {
		t.Error("FastLoot: got true, want false")
	}
}

// TestDefaultSettingsDeepCopy 测试嵌套颜色记录每次都是新分配
func TestDefaultSettingsDeepCopy(t *testing.T) {
	a := DefaultSettings()
	b := DefaultSettings()

	if a.HonorColor == b.HonorColor {
		t.Error("HonorColor should be a fresh allocation per DefaultSettings() call")
	}

	a.HonorColor.R = 1
	if b.HonorColor.R == 1 {
		t.Error("mutating one settings instance should not affect another")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdata 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("NewSettingsManager(nil) error: %v", err)
	}
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 的往返
func TestSettingsLoadSave(t *testing.T) {
	m := newTestGdata(t, "test_lootfeed_load_save")

	sm1, err := NewSettingsManager(m)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	s := sm1.GetSettings()
	s.FontSize = 22
	s.DisplayMode = "static"
	s.OffsetX = -120
	s.ShowBackground = true
	s.HonorColor.G = 200

	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2, err := NewSettingsManager(m)
	if err != nil {
		t.Fatalf("NewSettingsManager() error on reload: %v", err)
	}

	loaded := sm2.GetSettings()
	if loaded.FontSize != 22 {
		t.Errorf("Loaded FontSize: got %v, want 22", loaded.FontSize)
	}
	if loaded.DisplayMode != "static" {
		t.Errorf("Loaded DisplayMode: got %q, want %q", loaded.DisplayMode, "static")
	}
	if loaded.OffsetX != -120 {
		t.Errorf("Loaded OffsetX: got %v, want -120", loaded.OffsetX)
	}
	if !loaded.ShowBackground {
		t.Error("Loaded ShowBackground: got false, want true")
	}
	if loaded.HonorColor.G != 200 {
		t.Errorf("Loaded HonorColor.G: got %v, want 200", loaded.HonorColor.G)
	}
}

// TestSettingsBackfill 测试缺失键从默认值回填
func TestSettingsBackfill(t *testing.T) {
	m := newTestGdata(t, "test_lootfeed_backfill")

	// 持久化状态只有一个键，其余应全部回填默认值
	partial := []byte("fontSize: 30\n")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, partial); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(m)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}

	s := sm.GetSettings()
	if s.FontSize != 30 {
		t.Errorf("FontSize: got %v, want 30 (from persisted state)", s.FontSize)
	}
	if s.Duration != 3.0 {
		t.Errorf("Duration: got %v, want default 3.0", s.Duration)
	}
	if s.HonorColor == nil || s.HonorColor.R != 255 {
		t.Error("HonorColor should be backfilled from defaults (deep copy)")
	}
	if !s.Enabled {
		t.Error("Enabled should be backfilled to default true")
	}
}

// TestSettingsMigrateAnchorSide 测试旧版 anchorSide 键的迁移
func TestSettingsMigrateAnchorSide(t *testing.T) {
	tests := []struct {
		name        string
		persisted   string
		wantOffsetX float64
	}{
		{"left converts to negative offset", "anchorSide: left\n", -legacyAnchorOffset},
		{"right converts to positive offset", "anchorSide: right\n", legacyAnchorOffset},
		{"explicit offsetX wins over legacy key", "anchorSide: left\noffsetX: 42\n", 42},
	}

	for _, tt := range tests {
		m := newTestGdata(t, "test_lootfeed_migrate")
		if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte(tt.persisted)); err != nil {
			t.Fatalf("%s: SaveObjectProp() error: %v", tt.name, err)
		}

		sm, err := NewSettingsManager(m)
		if err != nil {
			t.Fatalf("%s: NewSettingsManager() error: %v", tt.name, err)
		}
		if got := sm.GetSettings().OffsetX; got != tt.wantOffsetX {
			t.Errorf("%s: OffsetX got %v, want %v", tt.name, got, tt.wantOffsetX)
		}
	}
}

// TestSettingsMigrationDropsLegacyKey 测试保存后旧键不再出现
func TestSettingsMigrationDropsLegacyKey(t *testing.T) {
	m := newTestGdata(t, "test_lootfeed_migrate_drop")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("anchorSide: right\n")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm, err := NewSettingsManager(m)
	if err != nil {
		t.Fatalf("NewSettingsManager() error: %v", err)
	}
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := m.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		t.Fatalf("LoadObjectProp() error: %v", err)
	}
	if strings.Contains(string(data), "anchorSide") {
		t.Error("persisted settings should no longer contain the legacy anchorSide key")
	}
	if !strings.Contains(string(data), "offsetX") {
		t.Error("persisted settings should contain the migrated offsetX key")
	}
}

// TestSettingsReset 测试恢复默认
func TestSettingsReset(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	sm.GetSettings().FontSize = 99
	if err := sm.Reset(); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	if sm.GetSettings().FontSize != 16 {
		t.Errorf("FontSize after Reset: got %v, want default 16", sm.GetSettings().FontSize)
	}
}

// TestOverlayConversion 测试设置到引擎配置快照的换算
func TestOverlayConversion(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	s := sm.GetSettings()
	s.DisplayMode = "static"
	s.TextAlign = "right"
	s.Duration = 4.5
	s.OffsetX = 33

	cfg := sm.Overlay(800, 600)

	if cfg.Mode != notify.ModeStatic {
		t.Errorf("Mode: got %v, want ModeStatic", cfg.Mode)
	}
	if cfg.Align != notify.AlignRight {
		t.Errorf("Align: got %v, want AlignRight", cfg.Align)
	}
	if cfg.Lifetime != 4.5 {
		t.Errorf("Lifetime: got %v, want 4.5", cfg.Lifetime)
	}
	if cfg.OffsetX != 33 {
		t.Errorf("OffsetX: got %v, want 33", cfg.OffsetX)
	}
	if cfg.ScreenWidth != 800 || cfg.ScreenHeight != 600 {
		t.Errorf("screen size: got %vx%v, want 800x600", cfg.ScreenWidth, cfg.ScreenHeight)
	}

	// 修改设置后重新换算立即反映新值
	s.OffsetX = -70
	cfg2 := sm.Overlay(800, 600)
	if cfg2.OffsetX != -70 {
		t.Errorf("OffsetX after live change: got %v, want -70", cfg2.OffsetX)
	}
}
