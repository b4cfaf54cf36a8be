// Package quality 提供物品品质等级到显示颜色和标签的静态映射
//
// 品质等级是一个整数（0~7），每个等级对应一种固定的显示颜色。
// 该表是纯数据，没有任何行为；当宿主环境无法提供品质颜色时，
// 所有组件都回退到这张内置表。
package quality

import "image/color"

// Tier 物品品质等级
type Tier int

// 品质等级常量（与游戏客户端的品质编号一致）
const (
	TierPoor      Tier = 0 // 粗糙（灰色）
	TierCommon    Tier = 1 // 普通（白色）
	TierUncommon  Tier = 2 // 优秀（绿色）
	TierRare      Tier = 3 // 精良（蓝色）
	TierEpic      Tier = 4 // 史诗（紫色）
	TierLegendary Tier = 5 // 传说（橙色）
	TierArtifact  Tier = 6 // 神器（浅金色）
	TierHeirloom  Tier = 7 // 传家宝（浅蓝色）
)

// Info 单个品质等级的显示信息
type Info struct {
	Label string     // 品质标签（如 "Rare"）
	Color color.RGBA // 显示颜色
}

// table 内置品质颜色表
// 注意：顺序必须与 Tier 常量一致（索引即等级）
var table = [...]Info{
	{Label: "Poor", Color: color.RGBA{R: 0x9D, G: 0x9D, B: 0x9D, A: 0xFF}},
	{Label: "Common", Color: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
	{Label: "Uncommon", Color: color.RGBA{R: 0x1E, G: 0xFF, B: 0x00, A: 0xFF}},
	{Label: "Rare", Color: color.RGBA{R: 0x00, G: 0x70, B: 0xDD, A: 0xFF}},
	{Label: "Epic", Color: color.RGBA{R: 0xA3, G: 0x35, B: 0xEE, A: 0xFF}},
	{Label: "Legendary", Color: color.RGBA{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}},
	{Label: "Artifact", Color: color.RGBA{R: 0xE6, G: 0xCC, B: 0x80, A: 0xFF}},
	{Label: "Heirloom", Color: color.RGBA{R: 0x00, G: 0xCC, B: 0xFF, A: 0xFF}},
}

// Lookup 查询品质等级的显示信息
//
// 超出范围的等级回退到 Common（白色），保证调用方永远能拿到
// 一个可用的颜色，而不是产生一条"不可见"的通知。
func Lookup(tier Tier) Info {
	if tier < TierPoor || int(tier) >= len(table) {
		return table[TierCommon]
	}
	return table[tier]
}

// ColorOf 查询品质等级的显示颜色（Lookup 的便捷包装）
func ColorOf(tier Tier) color.RGBA {
	return Lookup(tier).Color
}
