package game

import (
	"fmt"
	"log"

	"github.com/decker502/lootfeed/pkg/notify"
	"github.com/decker502/lootfeed/pkg/quality"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RGB 嵌套颜色记录
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Settings 通知浮层的全局设置记录
//
// 扁平的键值记录，所有组件每帧/每事件读取；只由选项面板或
// 重置操作修改。每个键都有默认值：加载时持久化状态里缺失的键
// 从默认值回填（嵌套颜色记录做深拷贝）。
type Settings struct {
	// 通知显示
	Enabled         bool    `yaml:"enabled"`         // 总开关
	IconSize        float64 `yaml:"iconSize"`        // 图标尺寸（像素）
	FontSize        float64 `yaml:"fontSize"`        // 字体尺寸（像素）
	Duration        float64 `yaml:"duration"`        // 通知总显示时长（秒）
	FadeStart       float64 `yaml:"fadeStart"`       // 淡出起点（秒）
	ScrollDistance  float64 `yaml:"scrollDistance"`  // 滚动模式的移动距离（像素）
	DisplayMode     string  `yaml:"displayMode"`     // 显示模式："scroll" 或 "static"
	MaxVisible      int     `yaml:"maxVisible"`      // 最大并发通知数
	OffsetX         float64 `yaml:"offsetX"`         // 相对屏幕中心的水平偏移
	OffsetY         float64 `yaml:"offsetY"`         // 相对屏幕中心的垂直偏移
	TextAlign       string  `yaml:"textAlign"`       // 文字对齐："left"/"center"/"right"
	ShowQuantity    bool    `yaml:"showQuantity"`    // 是否显示数量后缀
	MinQuality      int     `yaml:"minQuality"`      // 通知显示的最低品质
	GlowMinQuality  int     `yaml:"glowMinQuality"`  // 发光效果的最低品质
	ShowBackground  bool    `yaml:"showBackground"`  // 背景框开关
	BackgroundAlpha float64 `yaml:"backgroundAlpha"` // 背景框不透明度（0~1）
	GlowEnabled     bool    `yaml:"glowEnabled"`     // 发光效果开关

	// 金钱/荣誉
	ShowMoney  bool `yaml:"showMoney"`  // 金钱通知开关
	ShowHonor  bool `yaml:"showHonor"`  // 荣誉通知开关
	HonorColor *RGB `yaml:"honorColor"` // 荣誉文字颜色（嵌套记录）

	// 快速拾取
	FastLoot          bool    `yaml:"fastLoot"`          // 快速拾取开关
	BindDialogOffsetX float64 `yaml:"bindDialogOffsetX"` // 绑定确认框水平偏移
	BindDialogOffsetY float64 `yaml:"bindDialogOffsetY"` // 绑定确认框垂直偏移
}

// DefaultSettings 返回默认设置
//
// 每次调用都构造全新实例（嵌套颜色记录同样是新分配），
// 保证回填时的深拷贝语义。
func DefaultSettings() *Settings {
	return &Settings{
		Enabled:           true,
		IconSize:          24,
		FontSize:          16,
		Duration:          3.0,
		FadeStart:         2.0,
		ScrollDistance:    120,
		DisplayMode:       "scroll",
		MaxVisible:        5,
		OffsetX:           0,
		OffsetY:           -150,
		TextAlign:         "center",
		ShowQuantity:      true,
		MinQuality:        int(quality.TierPoor),
		GlowMinQuality:    int(quality.TierRare),
		ShowBackground:    false,
		BackgroundAlpha:   0.4,
		GlowEnabled:       true,
		ShowMoney:         true,
		ShowHonor:         true,
		HonorColor:        &RGB{R: 255, G: 64, B: 64},
		FastLoot:          false,
		BindDialogOffsetX: 0,
		BindDialogOffsetY: 120,
	}
}

// legacyAnchorOffset 旧版 anchorSide 设置迁移后的水平偏移量（像素）
const legacyAnchorOffset = 220.0

// SettingsManager 设置管理器
// 负责设置的加载、保存、字段迁移和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *Settings      // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "overlay"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 返回：
//   - *SettingsManager: 设置管理器实例
//   - error: 如果加载设置失败返回错误（不影响创建）
func NewSettingsManager(gdataManager *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认设置
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm, nil
}

// Load 从 gdata 加载设置
//
// 持久化状态以默认值为底合并：文件中缺失的键保留默认值
// （yaml 反序列化不会覆盖未出现的字段），嵌套颜色记录来自
// DefaultSettings 的新分配，天然是深拷贝。
// 同时执行一次字段迁移：旧版两值的 anchorSide 设置转换为
// 数值偏移 offsetX，旧键在下次保存时自然消失。
//
// 返回：
//   - error: 如果反序列化失败返回错误
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 以默认值为底，逐键覆盖文件中出现的设置
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	// 字段迁移：anchorSide ("left"/"right") → offsetX
	if err := migrateLegacyKeys(data, loaded); err != nil {
		log.Printf("[SettingsManager] Warning: legacy key migration failed: %v", err)
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// migrateLegacyKeys 把旧版设置键转换为当前布局
//
// 唯一的迁移：两值的 anchorSide 设置转换为带符号的 offsetX。
// 仅当文件中没有显式的 offsetX 时才转换，避免覆盖新键。
func migrateLegacyKeys(data []byte, s *Settings) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	side, hasLegacy := raw["anchorSide"]
	if !hasLegacy {
		return nil
	}
	if _, hasNew := raw["offsetX"]; hasNew {
		return nil
	}

	switch side {
	case "left":
		s.OffsetX = -legacyAnchorOffset
	case "right":
		s.OffsetX = legacyAnchorOffset
	default:
		return fmt.Errorf("unknown anchorSide value: %v", side)
	}
	log.Printf("[SettingsManager] Migrated legacy anchorSide=%v to offsetX=%v", side, s.OffsetX)
	return nil
}

// Save 保存设置到 gdata
//
// 序列化当前设置结构；旧版键（如 anchorSide）不在结构中，
// 保存后即从持久化状态消失。
//
// 返回：
//   - error: 如果序列化或保存失败返回错误
func (sm *SettingsManager) Save() error {
	// 降级模式：无法持久化，但不报错
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Reset 恢复默认设置并立即持久化
func (sm *SettingsManager) Reset() error {
	sm.settings = DefaultSettings()
	return sm.Save()
}

// GetSettings 获取当前设置
//
// 返回内部实例：选项面板直接修改字段后调用 Save() 持久化。
func (sm *SettingsManager) GetSettings() *Settings {
	return sm.settings
}

// SetEnabled 设置通知总开关
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetEnabled(enabled bool) {
	sm.settings.Enabled = enabled
}

// Overlay 把当前设置换算为通知引擎的配置快照
//
// 引擎的每次 Spawn/Update/渲染都重新换算，保证"总是读取当前值"。
//
// 参数：
//   - screenWidth, screenHeight: 逻辑屏幕尺寸
func (sm *SettingsManager) Overlay(screenWidth, screenHeight float64) notify.Config {
	s := sm.settings

	mode := notify.ModeScrolling
	if s.DisplayMode == "static" {
		mode = notify.ModeStatic
	}

	align := notify.AlignCenter
	switch s.TextAlign {
	case "left":
		align = notify.AlignLeft
	case "right":
		align = notify.AlignRight
	}

	return notify.Config{
		Enabled:         s.Enabled,
		IconSize:        s.IconSize,
		FontSize:        s.FontSize,
		Lifetime:        s.Duration,
		FadeStart:       s.FadeStart,
		ScrollDistance:  s.ScrollDistance,
		Mode:            mode,
		MaxVisible:      s.MaxVisible,
		OffsetX:         s.OffsetX,
		OffsetY:         s.OffsetY,
		Align:           align,
		MinQuality:      quality.Tier(s.MinQuality),
		GlowEnabled:     s.GlowEnabled,
		GlowMinQuality:  quality.Tier(s.GlowMinQuality),
		ShowBackground:  s.ShowBackground,
		BackgroundAlpha: s.BackgroundAlpha,
		ScreenWidth:     screenWidth,
		ScreenHeight:    screenHeight,
	}
}
