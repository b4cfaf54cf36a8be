package app

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/fastloot"
	"github.com/decker502/lootfeed/pkg/game"
	"github.com/decker502/lootfeed/pkg/parser"
	"github.com/decker502/lootfeed/pkg/quality"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// demoSlot 模拟拾取窗口中的一个槽位
type demoSlot struct {
	itemID int
	name   string
	icon   string
	tier   quality.Tier
	copper int // 金钱槽位：铜币总量（itemID 为 0 时有效）

	exists       bool
	locked       bool
	binds        bool // 拾取后绑定，需要额外确认
	bindApproved bool // 绑定确认已通过
}

// DemoLootHost 模拟拾取子系统
//
// 实现 fastloot.LootHost 与 fastloot.BindHost：维护一组模拟
// 槽位，确认拾取时通过事件分发器发出本地化的聊天行（进而触发
// 通知），并跟踪默认拾取界面和默认绑定提示的显隐。
type DemoLootHost struct {
	slots      []demoSlot
	freeBag    int
	supervised bool
	threshold  quality.Tier

	defaultUIVisible  bool
	bindPromptVisible bool

	dispatcher *game.Dispatcher
	items      *game.ItemStore
	locale     *config.LocaleConfig
	prompts    *fastloot.BindPromptController // 构造后注入

	labelFont *text.GoTextFace

	windowWidth  int
	windowHeight int
}

// NewDemoLootHost 创建模拟拾取子系统
func NewDemoLootHost(
	dispatcher *game.Dispatcher,
	items *game.ItemStore,
	locale *config.LocaleConfig,
	faceSource *text.GoTextFaceSource,
	windowWidth, windowHeight int,
) *DemoLootHost {
	h := &DemoLootHost{
		freeBag:      16,
		threshold:    quality.TierRare,
		dispatcher:   dispatcher,
		items:        items,
		locale:       locale,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
	if faceSource != nil {
		h.labelFont = &text.GoTextFace{Source: faceSource, Size: config.OptionsPanelLabelFontSize}
	}
	return h
}

// SetBindPrompts 注入绑定确认控制器
//
// 控制器构造时需要宿主，宿主确认槽位时又要咨询控制器，
// 因此绑定关系在两者都创建完成后建立。
func (h *DemoLootHost) SetBindPrompts(prompts *fastloot.BindPromptController) {
	h.prompts = prompts
}

// OpenLoot 打开一个模拟拾取窗口
//
// 依次派发窗口打开与数据就绪信号，快速拾取控制器在打开信号上
// 执行例外级联决策。
func (h *DemoLootHost) OpenLoot(slots []demoSlot) {
	h.slots = slots
	h.defaultUIVisible = true
	log.Printf("[DemoLootHost] Loot window opened with %d slots", len(slots))

	h.dispatcher.DispatchLoot(game.LootEvent{Signal: game.LootOpened})
	h.dispatcher.DispatchLoot(game.LootEvent{Signal: game.LootReady})
}

// CloseLoot 关闭模拟拾取窗口
func (h *DemoLootHost) CloseLoot() {
	if h.slots == nil {
		return
	}
	h.slots = nil
	if h.prompts != nil {
		h.prompts.Clear()
	}
	h.bindPromptVisible = true
	h.dispatcher.DispatchLoot(game.LootEvent{Signal: game.LootClosed})
	log.Printf("[DemoLootHost] Loot window closed")
}

// IsOpen 拾取窗口是否打开
func (h *DemoLootHost) IsOpen() bool {
	return h.slots != nil
}

// SetSupervised 切换监督分配模式
func (h *DemoLootHost) SetSupervised(on bool) {
	h.supervised = on
}

// NumSlots 实现 fastloot.LootHost
func (h *DemoLootHost) NumSlots() int {
	return len(h.slots)
}

// SlotExists 实现 fastloot.LootHost
func (h *DemoLootHost) SlotExists(slot int) bool {
	return slot < len(h.slots) && h.slots[slot].exists
}

// SlotLocked 实现 fastloot.LootHost
func (h *DemoLootHost) SlotLocked(slot int) bool {
	return h.slots[slot].locked
}

// SlotQuality 实现 fastloot.LootHost
func (h *DemoLootHost) SlotQuality(slot int) quality.Tier {
	return h.slots[slot].tier
}

// ConfirmSlot 确认拾取一个槽位
//
// 绑定物品先经过绑定确认控制器：拦截成功时本次确认挂起，
// 等待自定义确认面的接受动作再次进入；未拦截时视为默认提示
// 已被用户接受。确认后发出本地化聊天行并派发槽位清空信号。
func (h *DemoLootHost) ConfirmSlot(slot int) {
	if slot >= len(h.slots) || !h.slots[slot].exists {
		return
	}
	s := &h.slots[slot]

	if s.binds && !s.bindApproved {
		if h.prompts != nil && h.prompts.OnBindPrompt(slot, s.name, s.icon) {
			s.bindApproved = true
			return
		}
		// 未拦截：默认提示接管，模拟用户直接接受
		s.bindApproved = true
	}

	s.exists = false

	if s.itemID == 0 {
		h.dispatcher.DispatchChat(game.ChatEvent{Kind: game.ChatMoney, Message: h.moneyLine(s.copper)})
	} else {
		h.freeBag--
		h.items.WarmLink(h.itemLink(s))
		h.dispatcher.DispatchChat(game.ChatEvent{Kind: game.ChatLoot, Message: h.lootLine(s)})
	}

	h.dispatcher.DispatchLoot(game.LootEvent{Signal: game.LootSlotCleared, Slot: slot})

	// 所有槽位清空后自动关窗
	for i := range h.slots {
		if h.slots[i].exists {
			return
		}
	}
	h.CloseLoot()
}

// SetDefaultUIVisible 实现 fastloot.LootHost
func (h *DemoLootHost) SetDefaultUIVisible(visible bool) {
	h.defaultUIVisible = visible
}

// FreeBagSlots 实现 fastloot.LootHost
func (h *DemoLootHost) FreeBagSlots() int {
	return h.freeBag
}

// OverrideKeyHeld 实现 fastloot.LootHost：按住 Shift 保留默认界面
func (h *DemoLootHost) OverrideKeyHeld() bool {
	return ebiten.IsKeyPressed(ebiten.KeyShift)
}

// SupervisedMode 实现 fastloot.LootHost
func (h *DemoLootHost) SupervisedMode() bool {
	return h.supervised
}

// ReservedQualityThreshold 实现 fastloot.LootHost
func (h *DemoLootHost) ReservedQualityThreshold() quality.Tier {
	return h.threshold
}

// AbandonSlot 实现 fastloot.BindHost
func (h *DemoLootHost) AbandonSlot(slot int) {
	if slot >= len(h.slots) {
		return
	}
	h.slots[slot].exists = false
	log.Printf("[DemoLootHost] Slot %d abandoned", slot)
}

// SetDefaultBindPromptVisible 实现 fastloot.BindHost
func (h *DemoLootHost) SetDefaultBindPromptVisible(visible bool) {
	h.bindPromptVisible = visible
}

// lootLine 生成本地化的拾取聊天行
func (h *DemoLootHost) lootLine(s *demoSlot) string {
	return fmt.Sprintf(h.locale.LootSelf, h.itemLink(s))
}

// moneyLine 生成本地化的金钱聊天行
func (h *DemoLootHost) moneyLine(copper int) string {
	gold := copper / parser.CopperPerGold
	silver := (copper % parser.CopperPerGold) / parser.CopperPerSilver
	rest := copper % parser.CopperPerSilver

	line := "You loot"
	if gold > 0 {
		line += " " + fmt.Sprintf(h.locale.GoldAmount, gold)
	}
	if silver > 0 {
		line += " " + fmt.Sprintf(h.locale.SilverAmount, silver)
	}
	if rest > 0 {
		line += " " + fmt.Sprintf(h.locale.CopperAmount, rest)
	}
	return line
}

// itemLink 生成槽位物品的结构化链接
func (h *DemoLootHost) itemLink(s *demoSlot) string {
	c := quality.ColorOf(s.tier)
	return fmt.Sprintf("|cff%02x%02x%02x|Hitem:%d::|h[%s]|h|r", c.R, c.G, c.B, s.itemID, s.name)
}

// Draw 渲染默认拾取界面（被抑制时不渲染）
func (h *DemoLootHost) Draw(screen *ebiten.Image) {
	if !h.IsOpen() || !h.defaultUIVisible {
		return
	}

	const w, rowH = 220.0, 28.0
	x := float64(h.windowWidth) - w - 24
	y := 80.0
	height := rowH*float64(len(h.slots)) + 16

	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(height),
		color.RGBA{20, 20, 28, 230}, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(height),
		1, color.RGBA{120, 120, 140, 255}, false)

	for i, s := range h.slots {
		if !s.exists {
			continue
		}
		label := s.name
		if s.itemID == 0 {
			label = "Coins"
		}
		if h.labelFont != nil {
			op := &text.DrawOptions{}
			op.LayoutOptions.SecondaryAlign = text.AlignCenter
			op.GeoM.Translate(x+10, y+8+rowH*float64(i)+rowH/2)
			op.ColorScale.ScaleWithColor(quality.ColorOf(s.tier))
			text.Draw(screen, label, h.labelFont, op)
		}
	}
}

// HandleClick 处理默认拾取界面上的点击（手动逐槽拾取）
func (h *DemoLootHost) HandleClick(mx, my int) bool {
	if !h.IsOpen() || !h.defaultUIVisible {
		return false
	}

	const w, rowH = 220.0, 28.0
	x := float64(h.windowWidth) - w - 24
	y := 80.0
	fx, fy := float64(mx), float64(my)

	if fx < x || fx > x+w {
		return false
	}
	slot := int((fy - y - 8) / rowH)
	if slot < 0 || slot >= len(h.slots) || !h.slots[slot].exists {
		return false
	}
	h.ConfirmSlot(slot)
	return true
}
