package game

import "testing"

// TestCommandDispatcherSubcommands 测试各子命令触发对应动作
func TestCommandDispatcherSubcommands(t *testing.T) {
	sm, _ := NewSettingsManager(nil)

	var opened, toggled, loot, money, honor int
	cd := NewCommandDispatcher(sm, CommandActions{
		OpenOptions:   func() { opened++ },
		ToggleOptions: func() { toggled++ },
		PreviewLoot:   func() { loot++ },
		PreviewMoney:  func() { money++ },
		PreviewHonor:  func() { honor++ },
	})

	tests := []struct {
		input string
		check func() bool
	}{
		{"options", func() bool { return opened == 1 }},
		{"", func() bool { return opened == 2 }}, // 空子命令等同 options
		{"toggle", func() bool { return toggled == 1 }},
		{"test", func() bool { return loot == 1 }},
		{"testmoney", func() bool { return money == 1 }},
		{"testhonor", func() bool { return honor == 1 }},
		{"  TEST  ", func() bool { return loot == 2 }}, // 大小写与空白不敏感
	}

	for _, tt := range tests {
		if msg := cd.Handle(tt.input); msg != "" {
			t.Errorf("Handle(%q): got feedback %q, want none", tt.input, msg)
		}
		if !tt.check() {
			t.Errorf("Handle(%q): expected action not invoked", tt.input)
		}
	}
}

// TestCommandDispatcherEnableDisable 测试 enable/disable 修改设置
func TestCommandDispatcherEnableDisable(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	cd := NewCommandDispatcher(sm, CommandActions{})

	if msg := cd.Handle("disable"); msg == "" {
		t.Error("Handle(disable) should return a feedback message")
	}
	if sm.GetSettings().Enabled {
		t.Error("Enabled after disable: got true, want false")
	}

	cd.Handle("enable")
	if !sm.GetSettings().Enabled {
		t.Error("Enabled after enable: got false, want true")
	}
}

// TestCommandDispatcherReset 测试 reset 恢复默认设置
func TestCommandDispatcherReset(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	cd := NewCommandDispatcher(sm, CommandActions{})

	sm.GetSettings().FontSize = 99
	cd.Handle("reset")

	if sm.GetSettings().FontSize != 16 {
		t.Errorf("FontSize after reset: got %v, want default 16", sm.GetSettings().FontSize)
	}
}

// TestCommandDispatcherUsage 测试无效命令返回用法提示
func TestCommandDispatcherUsage(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	cd := NewCommandDispatcher(sm, CommandActions{})

	for _, input := range []string{"bogus", "help", "xyzzy"} {
		if msg := cd.Handle(input); msg != commandUsage {
			t.Errorf("Handle(%q): got %q, want usage hint", input, msg)
		}
	}
}

// TestCommandDispatcherNilActions 测试未绑定回调时不崩溃
func TestCommandDispatcherNilActions(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	cd := NewCommandDispatcher(sm, CommandActions{})

	for _, input := range []string{"options", "toggle", "test", "testmoney", "testhonor"} {
		cd.Handle(input) // 不应 panic
	}
}

// TestDispatcherEvents 测试事件分发器的注册与派发
func TestDispatcherEvents(t *testing.T) {
	d := NewDispatcher()

	var gotChat []ChatEvent
	var gotLoot []LootEvent
	settingsFired := 0

	d.OnChat(func(ev ChatEvent) { gotChat = append(gotChat, ev) })
	d.OnLoot(func(ev LootEvent) { gotLoot = append(gotLoot, ev) })
	d.OnSettingsLoaded(func() { settingsFired++ })

	d.DispatchChat(ChatEvent{Kind: ChatLoot, Message: "hello"})
	d.DispatchLoot(LootEvent{Signal: LootSlotCleared, Slot: 2})
	d.DispatchSettingsLoaded()

	if len(gotChat) != 1 || gotChat[0].Message != "hello" {
		t.Errorf("chat events: got %v, want one event with message %q", gotChat, "hello")
	}
	if len(gotLoot) != 1 || gotLoot[0].Slot != 2 {
		t.Errorf("loot events: got %v, want one event with slot 2", gotLoot)
	}
	if settingsFired != 1 {
		t.Errorf("settings-loaded handlers fired %d times, want 1", settingsFired)
	}
}
