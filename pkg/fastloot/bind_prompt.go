package fastloot

import "log"

// BindHost 绑定确认提示的协作方
type BindHost interface {
	// ConfirmSlot 确认拾取挂起的槽位
	ConfirmSlot(slot int)
	// AbandonSlot 放弃挂起的槽位
	AbandonSlot(slot int)
	// SetDefaultBindPromptVisible 控制默认绑定确认提示的显隐
	SetDefaultBindPromptVisible(visible bool)
}

// PendingBind 被拦截的绑定确认请求
type PendingBind struct {
	Slot int    // 待确认的槽位
	Name string // 物品名称
	Icon string // 物品图标
}

// BindPromptController 绑定确认提示控制器
//
// 与主控制器协作的第二个状态机：物品"拾取后绑定"需要额外
// 确认时，只要快速拾取开关打开且主控制器不处于 DefaultShown，
// 就用自定义确认面（显示物品图标与名称、提供接受/取消动作）
// 替换默认提示；DefaultShown 时不干预默认提示。
type BindPromptController struct {
	host    BindHost
	main    *Controller
	pending *PendingBind
}

// NewBindPromptController 创建绑定确认提示控制器
func NewBindPromptController(host BindHost, main *Controller) *BindPromptController {
	return &BindPromptController{
		host: host,
		main: main,
	}
}

// OnBindPrompt 处理一次绑定确认请求
//
// 快速拾取开关关闭时完全不介入；DefaultShown 会话保留默认提示；
// 其余情形（含窗口外到来的提示）一律拦截。
//
// 参数：
//   - slot: 待确认的槽位
//   - name: 物品名称
//   - icon: 物品图标
//
// 返回：
//   - bool: 是否拦截了默认提示（拦截后由自定义确认面接管）
func (b *BindPromptController) OnBindPrompt(slot int, name, icon string) bool {
	if !b.main.enabled() || b.main.State() == StateDefaultShown {
		return false
	}

	b.pending = &PendingBind{Slot: slot, Name: name, Icon: icon}
	b.host.SetDefaultBindPromptVisible(false)
	log.Printf("[BindPrompt] Intercepted bind confirmation for %q (slot %d)", name, slot)
	return true
}

// Active 是否有挂起的绑定确认
func (b *BindPromptController) Active() bool {
	return b.pending != nil
}

// Pending 返回挂起的绑定确认请求
func (b *BindPromptController) Pending() *PendingBind {
	return b.pending
}

// Accept 接受挂起的绑定确认
func (b *BindPromptController) Accept() {
	if b.pending == nil {
		return
	}
	b.host.ConfirmSlot(b.pending.Slot)
	b.pending = nil
}

// Cancel 取消挂起的绑定确认
func (b *BindPromptController) Cancel() {
	if b.pending == nil {
		return
	}
	b.host.AbandonSlot(b.pending.Slot)
	b.pending = nil
}

// Clear 清除挂起状态（窗口关闭时调用，不触发任何动作）
func (b *BindPromptController) Clear() {
	b.pending = nil
}
