package notify

// Pool 通知实例对象池
//
// 高频拾取场景下通知的创建/销毁非常频繁，池化避免分配抖动。
// 实例按需惰性创建，归还后反复复用。
type Pool struct {
	free []*Toast
}

// NewPool 创建空对象池
func NewPool() *Pool {
	return &Pool{free: make([]*Toast, 0, 8)}
}

// Acquire 获取一个通知实例
//
// 有空闲实例时复用，否则新建。Acquire 只保证结构有效
// （所有可视子元素就位），不保证内容已清空：调用方必须在
// 显示前完整填充实例内容。
func (p *Pool) Acquire() *Toast {
	n := len(p.free)
	if n == 0 {
		return &Toast{}
	}
	t := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	t.pooled = false
	return t
}

// Release 归还通知实例
//
// 隐藏并完整重置实例（计时、堆叠偏移、内容宽度、预览标记、
// 发光状态、默认布局），然后放回池中。对已在池中的实例
// 重复调用是安全的空操作。
func (p *Pool) Release(t *Toast) {
	if t == nil || t.pooled {
		return
	}
	t.reset()
	t.pooled = true
	p.free = append(p.free, t)
}

// FreeCount 返回池中空闲实例数量（用于测试和诊断）
func (p *Pool) FreeCount() int {
	return len(p.free)
}
