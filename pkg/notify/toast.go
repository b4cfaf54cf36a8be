package notify

import "image/color"

// Toast 一条可复用的通知实例
//
// 实例只有两种状态：在池中（不可见、已重置）或活动中（活动集中
// 恰好一项，Elapsed ∈ [0, 生命周期)）。字段在 Spawn 时由调用方
// 完整填充；StackOffset 是相对于基准锚点的偏移而非绝对坐标，
// 因此配置变化时位置自动跟随。
type Toast struct {
	// Elapsed 自激活起经过的时间（秒），每帧单调递增
	Elapsed float64

	// StackOffset 垂直堆叠偏移（相对量，像素）
	StackOffset float64

	// Preview 预览实例标记
	// 预览实例由选项面板产生，不受总开关和品质过滤约束，
	// 预览结束时被整体清除
	Preview bool

	// ContentWidth 缓存的内容宽度（像素），用于对齐计算
	ContentWidth float64

	// Icon 图标标识（由渲染系统解析为图像）
	Icon string

	// Text 标签文字
	Text string

	// Color 文字颜色
	Color color.RGBA

	// Glow 发光效果标记
	Glow bool

	// pooled 实例当前是否在池中（防止重复归还）
	pooled bool
}

// reset 把实例恢复到"在池中"的初始状态
//
// 清空位置、计时、堆叠偏移、内容宽度、预览标记和发光状态，
// 并恢复默认的内容布局。归还路径统一经由此方法。
func (t *Toast) reset() {
	t.Elapsed = 0
	t.StackOffset = 0
	t.Preview = false
	t.ContentWidth = 0
	t.Icon = ""
	t.Text = ""
	t.Color = color.RGBA{}
	t.Glow = false
}
