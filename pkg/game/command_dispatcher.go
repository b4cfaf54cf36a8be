package game

import (
	"log"
	"strings"
)

// CommandActions 命令面需要的外部动作回调
//
// 命令分发器不直接持有选项面板或通知驱动器，
// 通过回调与它们交互（可选，缺省为空操作）。
type CommandActions struct {
	OpenOptions   func() // 打开配置界面
	ToggleOptions func() // 切换配置界面显隐
	PreviewLoot   func() // 触发一条物品预览通知
	PreviewMoney  func() // 触发一条金钱预览通知
	PreviewHonor  func() // 触发一条荣誉预览通知
}

// commandUsage 无效命令时的用法提示
const commandUsage = "Usage: /lootfeed [options | toggle | test | testmoney | testhonor | enable | disable | reset]"

// CommandDispatcher 用户命令分发器
//
// 单一命名空间下的子命令面：打开/切换配置界面、触发各类别的
// 预览通知、启用/禁用、恢复默认。无效输入返回简短用法提示，
// 这是唯一会呈现给用户的"错误"。
type CommandDispatcher struct {
	settings *SettingsManager
	actions  CommandActions
}

// NewCommandDispatcher 创建命令分发器
//
// 参数：
//   - settings: 设置管理器
//   - actions: 外部动作回调集合（字段可为 nil）
func NewCommandDispatcher(settings *SettingsManager, actions CommandActions) *CommandDispatcher {
	return &CommandDispatcher{
		settings: settings,
		actions:  actions,
	}
}

// Handle 处理一条用户命令
//
// 参数：
//   - input: 子命令文本（不含命令前缀），大小写不敏感
//
// 返回：
//   - string: 反馈消息，空字符串表示无需反馈
func (cd *CommandDispatcher) Handle(input string) string {
	sub := strings.ToLower(strings.TrimSpace(input))

	switch sub {
	case "", "options":
		cd.call(cd.actions.OpenOptions)
		return ""

	case "toggle":
		cd.call(cd.actions.ToggleOptions)
		return ""

	case "test":
		cd.call(cd.actions.PreviewLoot)
		return ""

	case "testmoney":
		cd.call(cd.actions.PreviewMoney)
		return ""

	case "testhonor":
		cd.call(cd.actions.PreviewHonor)
		return ""

	case "enable":
		cd.settings.SetEnabled(true)
		if err := cd.settings.Save(); err != nil {
			log.Printf("[CommandDispatcher] Warning: failed to save settings: %v", err)
		}
		return "Loot notifications enabled."

	case "disable":
		cd.settings.SetEnabled(false)
		if err := cd.settings.Save(); err != nil {
			log.Printf("[CommandDispatcher] Warning: failed to save settings: %v", err)
		}
		return "Loot notifications disabled."

	case "reset":
		if err := cd.settings.Reset(); err != nil {
			log.Printf("[CommandDispatcher] Warning: failed to reset settings: %v", err)
		}
		return "Settings restored to defaults."

	default:
		return commandUsage
	}
}

// call 执行可选回调
func (cd *CommandDispatcher) call(fn func()) {
	if fn != nil {
		fn()
	}
}
