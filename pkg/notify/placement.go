package notify

import (
	"math"

	"github.com/decker502/lootfeed/pkg/config"
)

// Anchor 计算通知的基准锚点
//
// 基准锚点 = 屏幕中心 + 配置偏移，再按对齐方式做水平修正：
//   - 左对齐：锚点即内容左边缘（不修正）
//   - 居中：向左移内容宽度的一半
//   - 右对齐：向左移整个内容宽度（锚点成为右边缘）
//
// 该计算每帧只依赖 {配置, 内容宽度}，从不使用缓存的绝对位置，
// 保证拖拽改位等实时配置变化立即对所有可见通知生效。
func Anchor(cfg Config, contentWidth float64) (x, y float64) {
	x = cfg.ScreenWidth/2 + cfg.OffsetX
	y = cfg.ScreenHeight/2 + cfg.OffsetY

	switch cfg.Align {
	case AlignCenter:
		x -= contentWidth / 2
	case AlignRight:
		x -= contentWidth
	}
	return x, y
}

// SpacingUnit 计算堆叠间距单位
//
// 间距取图标尺寸与字体尺寸中的较大者；绘制背景时再加上
// 额外边距，避免背景框贴边。
func SpacingUnit(cfg Config) float64 {
	s := math.Max(cfg.IconSize, cfg.FontSize)
	if cfg.ShowBackground {
		s += config.StackExtraMargin
	}
	return s
}

// EffectiveOffset 活动通知的有效垂直偏移
//
// 即堆叠偏移加上滚动模式下当前滚动进度在移动距离上的投影。
// 静态模式下就是堆叠偏移本身。
func EffectiveOffset(cfg Config, t *Toast) float64 {
	off := t.StackOffset
	if cfg.Mode == ModeScrolling && cfg.Lifetime > 0 {
		off -= cfg.ScrollDistance * (t.Elapsed / cfg.Lifetime)
	}
	return off
}

// StackOffsetFor 为即将显示的新通知计算堆叠偏移
//
// 首次适配贪心：按插入顺序逐个对比每条活动通知的有效偏移，
// 落入间距阈值内就把候选偏移向远离屏幕中心的方向挪一个间距单位
// （锚点在中心上方时向上生长，下方或居中时向下）。
// 这不是全局布局求解，后来的通知可能相对更早的通知有偏移，
// 但算法只做成对检查。
func StackOffsetFor(cfg Config, active []*Toast) float64 {
	spacing := SpacingUnit(cfg)
	step := spacing
	if cfg.OffsetY < 0 {
		step = -spacing
	}

	candidate := 0.0
	for _, t := range active {
		if math.Abs(candidate-EffectiveOffset(cfg, t)) < spacing {
			candidate += step
		}
	}
	return candidate
}
