package app

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/game"
	"github.com/decker502/lootfeed/pkg/notify"
	"github.com/decker502/lootfeed/pkg/parser"
	"github.com/decker502/lootfeed/pkg/quality"
	"github.com/decker502/lootfeed/pkg/systems"
)

// moneyColor 金钱通知的文字颜色
var moneyColor = color.RGBA{255, 209, 0, 255}

// EventPipeline 事件管线
//
// 把聊天日志事件接到通知引擎：解析出结构化事实，组装显示内容
// （文字、颜色、品质），测量内容宽度，然后激活通知。解析未命中
// 静默忽略，不记录为错误。
type EventPipeline struct {
	parser   *parser.Parser
	driver   *notify.Driver
	render   *systems.NotificationRenderSystem
	settings *game.SettingsManager
	locale   *config.LocaleConfig

	windowWidth  float64
	windowHeight float64

	previewCycle int // 预览物品轮换下标
}

// NewEventPipeline 创建事件管线
func NewEventPipeline(
	p *parser.Parser,
	driver *notify.Driver,
	render *systems.NotificationRenderSystem,
	settings *game.SettingsManager,
	locale *config.LocaleConfig,
	windowWidth, windowHeight float64,
) *EventPipeline {
	return &EventPipeline{
		parser:       p,
		driver:       driver,
		render:       render,
		settings:     settings,
		locale:       locale,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
}

// HandleChat 处理一条聊天日志事件
func (ep *EventPipeline) HandleChat(ev game.ChatEvent) {
	switch ev.Kind {
	case game.ChatLoot:
		ep.handleLoot(ev.Message)
	case game.ChatMoney:
		ep.handleMoney(ev.Message)
	case game.ChatHonor:
		ep.handleHonor(ev.Message)
	}
}

// handleLoot 解析并激活一条物品通知
func (ep *EventPipeline) handleLoot(msg string) {
	fact, ok := ep.parser.ParseLoot(msg)
	if !ok {
		return
	}

	label := fact.Name
	if ep.settings.GetSettings().ShowQuantity && fact.Quantity > 1 {
		label = fmt.Sprintf("%s x%d", fact.Name, fact.Quantity)
	}

	ep.spawn(notify.Content{
		Icon:       fact.Icon,
		Text:       label,
		Color:      quality.ColorOf(fact.Quality),
		Quality:    fact.Quality,
		HasQuality: true,
	})
}

// handleMoney 解析并激活一条金钱通知
func (ep *EventPipeline) handleMoney(msg string) {
	if !ep.settings.GetSettings().ShowMoney {
		return
	}
	fact, ok := ep.parser.ParseMoney(msg)
	if !ok {
		return
	}

	ep.spawn(notify.Content{
		Icon:  "coin",
		Text:  ep.formatMoney(fact.Copper),
		Color: moneyColor,
	})
}

// handleHonor 解析并激活一条荣誉通知
func (ep *EventPipeline) handleHonor(msg string) {
	s := ep.settings.GetSettings()
	if !s.ShowHonor {
		return
	}
	fact, ok := ep.parser.ParseHonor(msg)
	if !ok {
		return
	}

	honorColor := moneyColor
	if s.HonorColor != nil {
		honorColor = color.RGBA{s.HonorColor.R, s.HonorColor.G, s.HonorColor.B, 255}
	}

	ep.spawn(notify.Content{
		Icon:  "honor",
		Text:  fmt.Sprintf("%+d %s", fact.Points, ep.locale.HonorWord),
		Color: honorColor,
	})
}

// spawn 测量内容宽度并激活通知
func (ep *EventPipeline) spawn(c notify.Content) {
	cfg := ep.settings.Overlay(ep.windowWidth, ep.windowHeight)
	c.ContentWidth = ep.render.MeasureContent(cfg, c.Text)
	if _, ok := ep.driver.Spawn(cfg, c); ok {
		log.Printf("[EventPipeline] Notification spawned: %q", c.Text)
	}
}

// previewItems 预览通知轮换使用的示例物品
var previewItems = []struct {
	name string
	icon string
	tier quality.Tier
}{
	{"Worn Dagger", "inv_weapon_shortblade_01", quality.TierPoor},
	{"Linen Cloth", "inv_fabric_linen_01", quality.TierCommon},
	{"Tough Jerky", "inv_misc_food_14", quality.TierUncommon},
	{"Sword of Omens", "inv_sword_04", quality.TierRare},
	{"Band of Trials", "inv_jewelry_ring_66", quality.TierEpic},
	{"Fiery Warhammer", "inv_hammer_05", quality.TierLegendary},
}

// SpawnPreviewLoot 激活一条物品预览通知
//
// 预览实例豁免总开关和品质过滤，轮换示例物品以便观察不同品质
// 的颜色与辉光效果。
func (ep *EventPipeline) SpawnPreviewLoot() {
	item := previewItems[ep.previewCycle%len(previewItems)]
	ep.previewCycle++

	ep.spawn(notify.Content{
		Icon:       item.icon,
		Text:       item.name,
		Color:      quality.ColorOf(item.tier),
		Quality:    item.tier,
		HasQuality: true,
		Preview:    true,
	})
}

// SpawnPreviewMoney 激活一条金钱预览通知
func (ep *EventPipeline) SpawnPreviewMoney() {
	ep.spawn(notify.Content{
		Icon:    "coin",
		Text:    ep.formatMoney(12345),
		Color:   moneyColor,
		Preview: true,
	})
}

// SpawnPreviewHonor 激活一条荣誉预览通知
func (ep *EventPipeline) SpawnPreviewHonor() {
	s := ep.settings.GetSettings()
	honorColor := moneyColor
	if s.HonorColor != nil {
		honorColor = color.RGBA{s.HonorColor.R, s.HonorColor.G, s.HonorColor.B, 255}
	}
	ep.spawn(notify.Content{
		Icon:    "honor",
		Text:    fmt.Sprintf("%+d %s", 198, ep.locale.HonorWord),
		Color:   honorColor,
		Preview: true,
	})
}

// ClearPreviews 清除所有预览通知
func (ep *EventPipeline) ClearPreviews() {
	ep.driver.ClearPreviews()
}

// formatMoney 按区域模板把铜币总量格式化成显示文本
//
// 为零的面额省略；总量为零时显示零铜币。
func (ep *EventPipeline) formatMoney(copper int) string {
	gold := copper / parser.CopperPerGold
	silver := (copper % parser.CopperPerGold) / parser.CopperPerSilver
	rest := copper % parser.CopperPerSilver

	var parts []string
	if gold > 0 {
		parts = append(parts, fmt.Sprintf(ep.locale.GoldAmount, gold))
	}
	if silver > 0 {
		parts = append(parts, fmt.Sprintf(ep.locale.SilverAmount, silver))
	}
	if rest > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf(ep.locale.CopperAmount, rest))
	}
	return strings.Join(parts, " ")
}
