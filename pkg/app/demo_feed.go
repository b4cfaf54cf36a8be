package app

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/game"
	"github.com/decker502/lootfeed/pkg/quality"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// demoDrops 演示用掉落表
var demoDrops = []demoSlot{
	{itemID: 2589, name: "Linen Cloth", icon: "inv_fabric_linen_01", tier: quality.TierCommon, exists: true},
	{itemID: 117, name: "Tough Jerky", icon: "inv_misc_food_14", tier: quality.TierUncommon, exists: true},
	{itemID: 1465, name: "Worn Dagger", icon: "inv_weapon_shortblade_01", tier: quality.TierPoor, exists: true},
	{itemID: 873, name: "Sword of Omens", icon: "inv_sword_04", tier: quality.TierRare, exists: true},
	{itemID: 30910, name: "Band of Trials", icon: "inv_jewelry_ring_66", tier: quality.TierEpic, exists: true},
}

// DemoFeed 演示事件源
//
// 把键盘快捷键翻译成系统的入站事件：注入本地化聊天行、
// 打开各种形态的模拟拾取窗口。仅存在于演示宿主，真实客户端
// 环境里这些事件来自聊天日志与拾取子系统。
//
// 快捷键：
//   - K: 注入一条本人拾取聊天行
//   - J: 注入一条他人拾取聊天行（应被忽略）
//   - M: 注入一条金钱聊天行
//   - H: 注入一条荣誉聊天行
//   - O: 打开普通拾取窗口（按住 Shift 可观察覆盖键例外）
//   - P: 打开含保留品质物品的监督分配拾取窗口
//   - B: 打开含绑定物品的拾取窗口
type DemoFeed struct {
	dispatcher *game.Dispatcher
	host       *DemoLootHost
	locale     *config.LocaleConfig
	rng        *rand.Rand
}

// NewDemoFeed 创建演示事件源
func NewDemoFeed(dispatcher *game.Dispatcher, host *DemoLootHost, locale *config.LocaleConfig, seed int64) *DemoFeed {
	return &DemoFeed{
		dispatcher: dispatcher,
		host:       host,
		locale:     locale,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Update 轮询快捷键并注入事件
func (f *DemoFeed) Update() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		f.injectOwnLoot()
	case inpututil.IsKeyJustPressed(ebiten.KeyJ):
		f.injectOtherLoot()
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		f.injectMoney()
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		f.injectHonor()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		f.openNormalLoot()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		f.openSupervisedLoot()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		f.openBindLoot()
	}
}

// injectOwnLoot 注入一条本人拾取聊天行
func (f *DemoFeed) injectOwnLoot() {
	drop := demoDrops[f.rng.Intn(len(demoDrops))]
	f.host.items.WarmLink(f.host.itemLink(&drop))

	payload := f.host.itemLink(&drop)
	if f.rng.Intn(3) == 0 {
		// 数量后缀紧跟链接，位于模板句号之前
		payload += fmt.Sprintf("x%d", 2+f.rng.Intn(4))
	}
	line := fmt.Sprintf(f.locale.LootSelf, payload)
	log.Printf("[DemoFeed] Chat: %s", line)
	f.dispatcher.DispatchChat(game.ChatEvent{Kind: game.ChatLoot, Message: line})
}

// injectOtherLoot 注入一条他人拾取聊天行（解析应不命中）
func (f *DemoFeed) injectOtherLoot() {
	drop := demoDrops[f.rng.Intn(len(demoDrops))]
	line := fmt.Sprintf("Aldren receives loot: %s.", f.host.itemLink(&drop))
	log.Printf("[DemoFeed] Chat: %s", line)
	f.dispatcher.DispatchChat(game.ChatEvent{Kind: game.ChatLoot, Message: line})
}

// injectMoney 注入一条金钱聊天行
func (f *DemoFeed) injectMoney() {
	line := "You loot"
	line += " " + fmt.Sprintf(f.locale.GoldAmount, 1+f.rng.Intn(3))
	line += " " + fmt.Sprintf(f.locale.SilverAmount, f.rng.Intn(100))
	line += " " + fmt.Sprintf(f.locale.CopperAmount, f.rng.Intn(100))
	log.Printf("[DemoFeed] Chat: %s", line)
	f.dispatcher.DispatchChat(game.ChatEvent{Kind: game.ChatMoney, Message: line})
}

// injectHonor 注入一条荣誉聊天行
func (f *DemoFeed) injectHonor() {
	line := fmt.Sprintf("You have been awarded %d %s points.", 50+f.rng.Intn(300), f.locale.HonorWord)
	log.Printf("[DemoFeed] Chat: %s", line)
	f.dispatcher.DispatchChat(game.ChatEvent{Kind: game.ChatHonor, Message: line})
}

// openNormalLoot 打开一个普通拾取窗口
func (f *DemoFeed) openNormalLoot() {
	if f.host.IsOpen() {
		f.host.CloseLoot()
		return
	}
	f.host.SetSupervised(false)

	slots := []demoSlot{
		demoDrops[f.rng.Intn(len(demoDrops))],
		demoDrops[f.rng.Intn(len(demoDrops))],
		{copper: 100 + f.rng.Intn(5000), exists: true},
	}
	f.host.OpenLoot(slots)
}

// openSupervisedLoot 打开一个监督分配模式的拾取窗口
//
// 含一件达到保留品质阈值的物品，窗口打开即触发例外级联的
// 监督分配分支。
func (f *DemoFeed) openSupervisedLoot() {
	if f.host.IsOpen() {
		f.host.CloseLoot()
		return
	}
	f.host.SetSupervised(true)

	slots := []demoSlot{
		{itemID: 2589, name: "Linen Cloth", icon: "inv_fabric_linen_01", tier: quality.TierCommon, exists: true},
		{itemID: 30910, name: "Band of Trials", icon: "inv_jewelry_ring_66", tier: quality.TierEpic, exists: true},
	}
	f.host.OpenLoot(slots)
}

// openBindLoot 打开一个含绑定物品的拾取窗口
func (f *DemoFeed) openBindLoot() {
	if f.host.IsOpen() {
		f.host.CloseLoot()
		return
	}
	f.host.SetSupervised(false)

	slots := []demoSlot{
		{itemID: 873, name: "Sword of Omens", icon: "inv_sword_04", tier: quality.TierRare, exists: true, binds: true},
		{itemID: 2589, name: "Linen Cloth", icon: "inv_fabric_linen_01", tier: quality.TierCommon, exists: true},
	}
	f.host.OpenLoot(slots)
}
