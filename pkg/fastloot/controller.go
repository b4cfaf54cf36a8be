package fastloot

import (
	"log"
	"time"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/quality"
	"golang.org/x/time/rate"
)

// State 快速拾取控制器状态
type State int

const (
	// StateIdle 无拾取窗口打开
	StateIdle State = iota
	// StateSuppressed 窗口已打开且快速拾取生效：默认拾取界面被隐藏，
	// 逐槽位自动确认
	StateSuppressed
	// StateDefaultShown 窗口已打开但例外条件命中：保留默认拾取界面，
	// 不做自动确认
	StateDefaultShown
)

// String 返回状态的可读名称
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateSuppressed:
		return "Suppressed"
	case StateDefaultShown:
		return "DefaultShown"
	default:
		return "Unknown"
	}
}

// Flags 拾取窗口打开瞬间采样的决策输入
type Flags struct {
	FastLootEnabled bool // 快速拾取总开关
	OverrideHeld    bool // 覆盖修饰键当前按住
	SupervisedItem  bool // 监督分配模式下存在达到保留品质阈值的槽位
	InventoryFull   bool // 背包无剩余空位
}

// Decide 窗口打开事件的纯决策函数
//
// 例外条件按固定优先级逐项检查：总开关关闭时完全不介入
// （等同 Idle）；覆盖键按住、监督分配槽位存在、背包已满
// 三者任一命中则保留默认界面；否则进入抑制状态。
//
// 参数：
//   - f: 打开瞬间的决策输入快照
//
// 返回：
//   - State: 本次窗口会话的控制器状态
func Decide(f Flags) State {
	if !f.FastLootEnabled {
		return StateIdle
	}
	if f.OverrideHeld {
		return StateDefaultShown
	}
	if f.SupervisedItem {
		return StateDefaultShown
	}
	if f.InventoryFull {
		return StateDefaultShown
	}
	return StateSuppressed
}

// LootHost 拾取子系统协作方
//
// 控制器通过该接口读取槽位状态、发出确认动作、
// 控制默认拾取界面的显隐。
type LootHost interface {
	// NumSlots 返回当前拾取窗口的槽位数
	NumSlots() int
	// SlotExists 槽位是否仍有物品
	SlotExists(slot int) bool
	// SlotLocked 槽位是否被锁定（他人正在拾取等）
	SlotLocked(slot int) bool
	// SlotQuality 返回槽位物品的品质等级
	SlotQuality(slot int) quality.Tier
	// ConfirmSlot 确认拾取一个槽位
	ConfirmSlot(slot int)
	// SetDefaultUIVisible 控制默认拾取界面的显隐
	SetDefaultUIVisible(visible bool)
	// FreeBagSlots 返回背包剩余空位数
	FreeBagSlots() int
	// OverrideKeyHeld 覆盖修饰键当前是否按住
	OverrideKeyHeld() bool
	// SupervisedMode 当前是否处于监督分配拾取模式
	SupervisedMode() bool
	// ReservedQualityThreshold 监督分配的保留品质阈值
	ReservedQualityThreshold() quality.Tier
}

// Controller 快速拾取控制器
//
// 事件驱动的小型状态机：窗口打开时执行一次例外级联决策，
// 抑制状态下对每个可拾取的未锁定槽位做节流的自动确认。
// 槽位清空重试绕过节流，以便多件物品容器连续拾取。
// 监督分配模式下即使处于抑制状态也跳过达到保留品质阈值的
// 槽位，留给手动分配。
type Controller struct {
	host     LootHost
	enabled  func() bool // 读取快速拾取总开关的当前值
	state    State
	throttle *rate.Limiter
}

// NewController 创建快速拾取控制器
//
// 参数：
//   - host: 拾取子系统协作方
//   - enabled: 快速拾取总开关的读取函数（每次窗口打开时重新求值）
func NewController(host LootHost, enabled func() bool) *Controller {
	interval := time.Duration(config.AutoLootInterval * float64(time.Second))
	return &Controller{
		host:     host,
		enabled:  enabled,
		state:    StateIdle,
		throttle: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// State 返回控制器当前状态
func (c *Controller) State() State {
	return c.state
}

// OnLootOpened 处理拾取窗口打开事件
//
// 决策只在打开瞬间执行一次；会话期间例外条件的变化不会
// 改变已定下的状态。
func (c *Controller) OnLootOpened() {
	c.state = Decide(Flags{
		FastLootEnabled: c.enabled(),
		OverrideHeld:    c.host.OverrideKeyHeld(),
		SupervisedItem:  c.hasSupervisedSlot(),
		InventoryFull:   c.host.FreeBagSlots() <= 0,
	})

	switch c.state {
	case StateSuppressed:
		c.host.SetDefaultUIVisible(false)
		log.Printf("[FastLoot] Window opened, default UI suppressed")
	case StateDefaultShown:
		c.host.SetDefaultUIVisible(true)
		log.Printf("[FastLoot] Window opened, exception applies, default UI shown")
	}
}

// OnLootReady 处理拾取数据就绪事件
//
// 抑制状态下触发一轮节流的自动确认扫描。
func (c *Controller) OnLootReady() {
	if c.state != StateSuppressed {
		return
	}
	if !c.throttle.Allow() {
		return
	}
	c.sweep()
}

// OnSlotCleared 处理单槽位清空事件
//
// 多件物品容器逐件弹出时的继续拾取重试，绕过节流立即扫描。
func (c *Controller) OnSlotCleared(slot int) {
	if c.state != StateSuppressed {
		return
	}
	c.sweep()
}

// OnLootClosed 处理拾取窗口关闭事件
func (c *Controller) OnLootClosed() {
	if c.state == StateSuppressed {
		c.host.SetDefaultUIVisible(true)
	}
	c.state = StateIdle
}

// sweep 对所有可拾取槽位执行一轮自动确认
func (c *Controller) sweep() {
	supervised := c.host.SupervisedMode()
	threshold := c.host.ReservedQualityThreshold()

	for slot := 0; slot < c.host.NumSlots(); slot++ {
		if !c.host.SlotExists(slot) {
			continue
		}
		if c.host.SlotLocked(slot) {
			continue
		}
		// 监督分配：达到保留阈值的槽位留给手动分配
		if supervised && c.host.SlotQuality(slot) >= threshold {
			continue
		}
		c.host.ConfirmSlot(slot)
	}
}

// hasSupervisedSlot 监督分配模式下是否存在达到保留阈值的槽位
func (c *Controller) hasSupervisedSlot() bool {
	if !c.host.SupervisedMode() {
		return false
	}
	threshold := c.host.ReservedQualityThreshold()
	for slot := 0; slot < c.host.NumSlots(); slot++ {
		if c.host.SlotExists(slot) && c.host.SlotQuality(slot) >= threshold {
			return true
		}
	}
	return false
}
