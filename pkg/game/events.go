package game

// 事件分发
//
// 宿主运行时把离散的事件回调（聊天消息、拾取信号、设置就绪）
// 串行地派发给注册的处理器；事件回调与逐帧动画回调从不交错执行，
// 因此处理器内部不需要任何加锁。

// ChatKind 聊天事件类别
type ChatKind int

const (
	// ChatLoot 本地玩家拾取物品的聊天行
	ChatLoot ChatKind = iota
	// ChatMoney 金钱获取聊天行
	ChatMoney
	// ChatHonor 荣誉获取聊天行
	ChatHonor
)

// ChatEvent 一条聊天日志事件
type ChatEvent struct {
	Kind    ChatKind // 类别
	Message string   // 自由文本负载
}

// LootSignal 拾取子系统信号
type LootSignal int

const (
	// LootOpened 拾取窗口打开
	LootOpened LootSignal = iota
	// LootReady 拾取数据就绪
	LootReady
	// LootSlotCleared 单个槽位被清空（多件物品容器的继续拾取重试）
	LootSlotCleared
	// LootClosed 拾取窗口关闭
	LootClosed
)

// LootEvent 一条拾取子系统事件
type LootEvent struct {
	Signal LootSignal // 信号类别
	Slot   int        // 槽位下标（仅 LootSlotCleared 有效）
}

// Dispatcher 事件分发器
//
// 注册与派发都发生在宿主序列化的回调上，无并发访问。
type Dispatcher struct {
	chatHandlers     []func(ChatEvent)
	lootHandlers     []func(LootEvent)
	settingsHandlers []func()
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// OnChat 注册聊天事件处理器
func (d *Dispatcher) OnChat(fn func(ChatEvent)) {
	d.chatHandlers = append(d.chatHandlers, fn)
}

// OnLoot 注册拾取信号处理器
func (d *Dispatcher) OnLoot(fn func(LootEvent)) {
	d.lootHandlers = append(d.lootHandlers, fn)
}

// OnSettingsLoaded 注册设置就绪处理器
// 该信号在持久化状态可用后只触发一次
func (d *Dispatcher) OnSettingsLoaded(fn func()) {
	d.settingsHandlers = append(d.settingsHandlers, fn)
}

// DispatchChat 派发聊天事件
func (d *Dispatcher) DispatchChat(ev ChatEvent) {
	for _, fn := range d.chatHandlers {
		fn(ev)
	}
}

// DispatchLoot 派发拾取信号
func (d *Dispatcher) DispatchLoot(ev LootEvent) {
	for _, fn := range d.lootHandlers {
		fn(ev)
	}
}

// DispatchSettingsLoaded 派发设置就绪信号
func (d *Dispatcher) DispatchSettingsLoaded() {
	for _, fn := range d.settingsHandlers {
		fn()
	}
}
