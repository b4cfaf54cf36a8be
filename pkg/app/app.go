// Package app 提供通知浮层演示宿主的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：装配解析器、通知引擎、
// 快速拾取控制器、选项面板和演示事件源，并实现 ebiten.Game
// 接口驱动逐帧回调。
package app

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/fastloot"
	"github.com/decker502/lootfeed/pkg/game"
	"github.com/decker502/lootfeed/pkg/modules"
	"github.com/decker502/lootfeed/pkg/notify"
	"github.com/decker502/lootfeed/pkg/parser"
	"github.com/decker502/lootfeed/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/quasilyte/gdata/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ItemDatabase 物品数据库文件路径，为空则使用内置演示数据
	ItemDatabase string
	// Locale 区域模板文件路径，为空则使用内置 enUS 模板
	Locale string
}

// App 是演示宿主的核心包装器，实现 ebiten.Game 接口
type App struct {
	settings   *game.SettingsManager
	dispatcher *game.Dispatcher
	driver     *notify.Driver
	render     *systems.NotificationRenderSystem
	pipeline   *EventPipeline

	lootCtrl   *fastloot.Controller
	lootHost   *DemoLootHost
	bindDialog *modules.BindDialogModule

	options *modules.OptionsPanelModule
	input   *CommandInput
	feed    *DemoFeed

	hintFont *text.GoTextFace
}

// NewApp 创建并装配演示宿主
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 字体
	faceSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Printf("[App] Warning: failed to load font, text rendering disabled: %v", err)
		faceSource = nil
	}

	// 持久化：失败时降级为内存设置
	dataManager, err := gdata.Open(gdata.Config{AppName: "lootfeed"})
	if err != nil {
		log.Printf("[App] Warning: persistent storage unavailable, settings will not be saved: %v", err)
		dataManager = nil
	}

	settings, err := game.NewSettingsManager(dataManager)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}

	// 物品数据
	items := game.NewItemStore()
	if cfg.ItemDatabase != "" {
		if err := items.LoadDatabase(cfg.ItemDatabase); err != nil {
			log.Printf("[App] Warning: %v, falling back to built-in demo items", err)
		}
	}
	if items.Count() == 0 {
		for _, d := range demoDrops {
			items.AddItem(d.itemID, parser.ItemInfo{Name: d.name, Icon: d.icon, Quality: d.tier})
		}
		log.Printf("[App] Seeded %d built-in demo items", items.Count())
	}

	// 区域模板
	locale := config.DefaultLocaleConfig()
	if cfg.Locale != "" {
		loaded, err := config.LoadLocaleConfig(cfg.Locale)
		if err != nil {
			log.Printf("[App] Warning: %v, falling back to default locale", err)
		} else {
			locale = loaded
		}
	}

	p, err := parser.New(locale, items)
	if err != nil {
		return nil, fmt.Errorf("failed to compile locale templates: %w", err)
	}

	// 通知引擎
	driver := notify.NewDriver()
	render := systems.NewNotificationRenderSystem(faceSource)

	dispatcher := game.NewDispatcher()
	pipeline := NewEventPipeline(p, driver, render, settings, locale,
		config.GameWindowWidth, config.GameWindowHeight)
	dispatcher.OnChat(pipeline.HandleChat)

	// 快速拾取
	lootHost := NewDemoLootHost(dispatcher, items, locale, faceSource,
		config.GameWindowWidth, config.GameWindowHeight)
	lootCtrl := fastloot.NewController(lootHost, func() bool {
		return settings.GetSettings().FastLoot
	})
	prompts := fastloot.NewBindPromptController(lootHost, lootCtrl)
	lootHost.SetBindPrompts(prompts)

	dispatcher.OnLoot(func(ev game.LootEvent) {
		switch ev.Signal {
		case game.LootOpened:
			lootCtrl.OnLootOpened()
		case game.LootReady:
			lootCtrl.OnLootReady()
		case game.LootSlotCleared:
			lootCtrl.OnSlotCleared(ev.Slot)
		case game.LootClosed:
			lootCtrl.OnLootClosed()
		}
	})

	// 选项面板与命令面
	options := modules.NewOptionsPanelModule(settings, faceSource,
		config.GameWindowWidth, config.GameWindowHeight,
		pipeline.SpawnPreviewLoot, pipeline.ClearPreviews)

	commands := game.NewCommandDispatcher(settings, game.CommandActions{
		OpenOptions:   options.Show,
		ToggleOptions: options.Toggle,
		PreviewLoot:   pipeline.SpawnPreviewLoot,
		PreviewMoney:  pipeline.SpawnPreviewMoney,
		PreviewHonor:  pipeline.SpawnPreviewHonor,
	})

	a := &App{
		settings:   settings,
		dispatcher: dispatcher,
		driver:     driver,
		render:     render,
		pipeline:   pipeline,
		lootCtrl:   lootCtrl,
		lootHost:   lootHost,
		bindDialog: modules.NewBindDialogModule(prompts, settings, faceSource, config.GameWindowWidth, config.GameWindowHeight),
		options:    options,
		input:      NewCommandInput(commands, faceSource, config.GameWindowWidth, config.GameWindowHeight),
		feed:       NewDemoFeed(dispatcher, lootHost, locale, time.Now().UnixNano()),
	}
	if faceSource != nil {
		a.hintFont = &text.GoTextFace{Source: faceSource, Size: 12}
	}

	// 持久化状态就绪信号只触发一次
	dispatcher.OnSettingsLoaded(func() {
		log.Printf("[App] Settings loaded, overlay enabled: %v", settings.GetSettings().Enabled)
	})
	dispatcher.DispatchSettingsLoaded()

	log.Printf("[App] Initialized successfully")
	return a, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	a.input.Update(dt)

	// 命令输入期间挂起演示快捷键
	if !a.input.IsCapturing() {
		a.feed.Update()

		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && a.options.IsActive() {
			a.options.Hide()
		}
	}

	a.options.Update(dt)
	a.bindDialog.Update()

	// 默认拾取界面上的手动逐槽点击（面板打开时面板优先）
	if !a.options.IsActive() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		a.lootHost.HandleClick(mx, my)
	}

	a.driver.Update(dt, a.settings.Overlay(config.GameWindowWidth, config.GameWindowHeight))
	return nil
}

// Draw 渲染一帧
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{28, 32, 36, 255})

	a.drawHints(screen)
	a.lootHost.Draw(screen)

	cfg := a.settings.Overlay(config.GameWindowWidth, config.GameWindowHeight)
	a.render.Draw(screen, cfg, a.driver.Active())

	a.bindDialog.Draw(screen, a.render.IconImage)
	a.options.Draw(screen)
	a.input.Draw(screen)
}

// drawHints 渲染快捷键提示
func (a *App) drawHints(screen *ebiten.Image) {
	if a.hintFont == nil {
		return
	}
	hints := "K loot   J other-player   M money   H honor   O/P/B loot windows   /lootfeed commands"
	op := &text.DrawOptions{}
	op.GeoM.Translate(12, 10)
	op.ColorScale.ScaleWithColor(color.RGBA{140, 150, 160, 255})
	text.Draw(screen, hints, a.hintFont, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}
