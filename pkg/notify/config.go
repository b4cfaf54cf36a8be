// Package notify 实现通知浮层的生命周期引擎
//
// 包含四个部分：可复用的通知实例（Toast）、对象池（Pool）、
// 位置计算与堆叠避让（placement）、逐帧时间积分与退役（Driver）。
// 引擎每次调用都显式接收一份当前配置快照，从不缓存绝对位置，
// 保证配置（偏移、对齐等）在通知显示期间被实时修改时立即生效。
package notify

import "github.com/decker502/lootfeed/pkg/quality"

// Mode 显示模式
type Mode int

const (
	// ModeScrolling 滚动模式：通知随时间向上移动并在后段淡出
	ModeScrolling Mode = iota
	// ModeStatic 静态模式：位置固定，短暂淡入后保持，后段淡出
	ModeStatic
)

// Align 文字对齐方式
type Align int

const (
	// AlignLeft 锚点作为内容左边缘
	AlignLeft Align = iota
	// AlignCenter 锚点作为内容中心
	AlignCenter
	// AlignRight 锚点作为内容右边缘
	AlignRight
)

// Config 引擎读取的配置快照
//
// 由调用方在每次 Spawn/Update/渲染时从设置记录换算得到。
// 引擎只读取，从不修改。
type Config struct {
	Enabled         bool         // 总开关（预览实例不受约束）
	IconSize        float64      // 图标尺寸（像素）
	FontSize        float64      // 字体尺寸（像素）
	Lifetime        float64      // 通知总显示时长（秒）
	FadeStart       float64      // 淡出起点（秒，自激活起算）
	ScrollDistance  float64      // 滚动模式的总移动距离（像素）
	Mode            Mode         // 显示模式
	MaxVisible      int          // 最大并发通知数
	OffsetX         float64      // 相对屏幕中心的水平偏移
	OffsetY         float64      // 相对屏幕中心的垂直偏移
	Align           Align        // 文字对齐方式
	MinQuality      quality.Tier // 通知显示的最低品质（仅对携带品质的事实生效）
	GlowEnabled     bool         // 发光效果开关
	GlowMinQuality  quality.Tier // 发光效果的最低品质
	ShowBackground  bool         // 背景框开关
	BackgroundAlpha float64      // 背景框不透明度（0~1）
	ScreenWidth     float64      // 逻辑屏幕宽度
	ScreenHeight    float64      // 逻辑屏幕高度
}
