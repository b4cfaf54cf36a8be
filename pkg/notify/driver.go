package notify

import (
	"image/color"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/quality"
)

// Content 新通知的内容描述
//
// 由事件管线在解析出结构化事实后组装；ContentWidth 由渲染侧
// 预先测量（图标 + 间距 + 文字宽度）。
type Content struct {
	Icon         string       // 图标标识
	Text         string       // 标签文字
	Color        color.RGBA   // 文字颜色
	Quality      quality.Tier // 品质等级（仅物品事实携带）
	HasQuality   bool         // 是否携带品质（金钱/荣誉不携带，不参与品质过滤）
	Preview      bool         // 预览实例标记
	ContentWidth float64      // 预先测量的内容宽度
}

// Driver 通知生命周期驱动器
//
// 维护活动集（插入序，最旧在前）和对象池，每帧推进活动通知的
// 已逝时间并退役到期通知。所有修改都发生在宿主序列化的事件回调
// 与逐帧回调上，无并发访问。
type Driver struct {
	pool   *Pool
	active []*Toast
}

// NewDriver 创建通知驱动器
func NewDriver() *Driver {
	return &Driver{
		pool:   NewPool(),
		active: make([]*Toast, 0, 8),
	}
}

// Spawn 按内容描述激活一条新通知
//
// 非预览实例受总开关和最低品质过滤约束；预览实例豁免。
// 活动集达到上限时先驱逐最旧的通知（插入序头部）。
// 堆叠偏移在驱逐之后、入列之前按剩余活动集计算。
//
// 返回：
//   - *Toast: 激活的实例
//   - bool: 是否实际激活（被过滤时为 false）
func (d *Driver) Spawn(cfg Config, c Content) (*Toast, bool) {
	if !c.Preview {
		if !cfg.Enabled {
			return nil, false
		}
		if c.HasQuality && c.Quality < cfg.MinQuality {
			return nil, false
		}
	}

	// 驱逐最旧通知以腾出名额
	if cfg.MaxVisible > 0 {
		for len(d.active) >= cfg.MaxVisible {
			d.retireAt(0)
		}
	}

	// Acquire 不保证内容清空，这里完整填充
	t := d.pool.Acquire()
	t.Elapsed = 0
	t.Icon = c.Icon
	t.Text = c.Text
	t.Color = c.Color
	t.Preview = c.Preview
	t.ContentWidth = c.ContentWidth
	t.Glow = cfg.GlowEnabled && c.HasQuality && c.Quality >= cfg.GlowMinQuality
	t.StackOffset = StackOffsetFor(cfg, d.active)

	d.active = append(d.active, t)
	return t, true
}

// Update 逐帧推进所有活动通知
//
// 每条通知的已逝时间增加帧间隔；达到或超过生命周期的通知
// 在同一帧内退役（移出活动集并归还对象池），之后不再被渲染。
//
// 参数：
//   - dt: 距上一帧的时间（秒）
//   - cfg: 当前配置快照
func (d *Driver) Update(dt float64, cfg Config) {
	out := d.active[:0]
	for _, t := range d.active {
		t.Elapsed += dt
		if t.Elapsed >= cfg.Lifetime {
			d.pool.Release(t)
			continue
		}
		out = append(out, t)
	}
	// 清掉尾部残留引用，避免池外实例被活动集拖住
	for i := len(out); i < len(d.active); i++ {
		d.active[i] = nil
	}
	d.active = out
}

// Active 返回当前活动集（插入序，最旧在前）
//
// 返回内部切片，调用方只读遍历，不得修改。
func (d *Driver) Active() []*Toast {
	return d.active
}

// ActiveCount 返回当前活动通知数量
func (d *Driver) ActiveCount() int {
	return len(d.active)
}

// ClearPreviews 清除所有预览实例
//
// 预览模式结束时调用，预览实例全部归还对象池，真实通知不受影响。
func (d *Driver) ClearPreviews() {
	out := d.active[:0]
	for _, t := range d.active {
		if t.Preview {
			d.pool.Release(t)
			continue
		}
		out = append(out, t)
	}
	for i := len(out); i < len(d.active); i++ {
		d.active[i] = nil
	}
	d.active = out
}

// Clear 清除所有活动通知
func (d *Driver) Clear() {
	for _, t := range d.active {
		d.pool.Release(t)
	}
	d.active = d.active[:0]
}

// Pool 返回驱动器使用的对象池（用于测试和诊断）
func (d *Driver) Pool() *Pool {
	return d.pool
}

// retireAt 退役活动集中指定下标的通知
func (d *Driver) retireAt(i int) {
	t := d.active[i]
	d.active = append(d.active[:i], d.active[i+1:]...)
	d.pool.Release(t)
}

// PositionOf 计算通知当前帧的屏幕位置
//
// 位置 = 基准锚点 + 堆叠偏移，滚动模式下再叠加与已逝时间
// 成比例的移动量。该函数每帧从配置重新推导，从不读取缓存位置。
func PositionOf(cfg Config, t *Toast) (x, y float64) {
	x, y = Anchor(cfg, t.ContentWidth)
	y += t.StackOffset
	if cfg.Mode == ModeScrolling && cfg.Lifetime > 0 {
		y -= cfg.ScrollDistance * (t.Elapsed / cfg.Lifetime)
	}
	return x, y
}

// AlphaOf 计算通知当前帧的不透明度
//
// 滚动模式：淡出起点之前恒为 1，之后线性降到生命周期终点的 0。
// 静态模式：激活后在固定的短淡入窗口内从 0 线性升到 1，之后与
// 滚动模式相同的淡出规则；淡入窗口越过淡出起点时两个系数相乘。
//
// 配置不一致（如淡出起点 ≥ 生命周期）可能产生越界的插值分数，
// 结果统一钳制到 [0,1]。
func AlphaOf(cfg Config, elapsed float64) float64 {
	fadeOut := 1.0
	if elapsed >= cfg.FadeStart {
		denom := cfg.Lifetime - cfg.FadeStart
		if denom > 0 {
			fadeOut = 1 - (elapsed-cfg.FadeStart)/denom
		} else {
			fadeOut = 0
		}
	}

	alpha := fadeOut
	if cfg.Mode == ModeStatic {
		fadeIn := 1.0
		if config.StaticFadeInWindow > 0 {
			fadeIn = elapsed / config.StaticFadeInWindow
			if fadeIn > 1 {
				fadeIn = 1
			}
		}
		alpha = fadeIn * fadeOut
	}

	return clamp01(alpha)
}

// clamp01 把值钳制到 [0,1]
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
