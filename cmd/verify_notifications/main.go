// verify_notifications 通知生命周期验证程序
//
// 无头运行：按脚本注入一批聊天行和配置变更，逐帧推进通知引擎，
// 打印活动集的位置、堆叠偏移和不透明度，用于人工核对生命周期、
// 驱逐和堆叠行为。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/notify"
	"github.com/decker502/lootfeed/pkg/parser"
	"github.com/decker502/lootfeed/pkg/quality"
)

var verbose = flag.Bool("verbose", false, "显示详细调试信息")

// scriptResolver 脚本内置的物品数据
type scriptResolver struct{}

func (scriptResolver) ResolveLink(link string) (parser.ItemInfo, bool) {
	return parser.ItemInfo{}, false
}

func (scriptResolver) ResolveID(id int) (parser.ItemInfo, bool) {
	items := map[int]parser.ItemInfo{
		2589:  {Name: "Linen Cloth", Icon: "inv_fabric_linen_01", Quality: quality.TierCommon},
		873:   {Name: "Sword of Omens", Icon: "inv_sword_04", Quality: quality.TierRare},
		30910: {Name: "Band of Trials", Icon: "inv_jewelry_ring_66", Quality: quality.TierEpic},
	}
	info, ok := items[id]
	return info, ok
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetFlags(0)
	}

	loc := config.DefaultLocaleConfig()
	p, err := parser.New(loc, scriptResolver{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "parser init failed: %v\n", err)
		os.Exit(1)
	}

	driver := notify.NewDriver()
	cfg := notify.Config{
		Enabled:        true,
		IconSize:       24,
		FontSize:       16,
		Lifetime:       3.0,
		FadeStart:      2.0,
		ScrollDistance: 120,
		Mode:           notify.ModeScrolling,
		MaxVisible:     3,
		OffsetY:        -150,
		Align:          notify.AlignCenter,
		ScreenWidth:    config.GameWindowWidth,
		ScreenHeight:   config.GameWindowHeight,
	}

	// 脚本：突发 4 条拾取行（上限 3，最旧的一条应被驱逐）
	lines := []string{
		"You receive loot: |cffffffff|Hitem:2589::|h[Linen Cloth]|h|rx3.",
		"You receive loot: |cff0070dd|Hitem:873::|h[Sword of Omens]|h|r.",
		"You receive loot: |cffa335ee|Hitem:30910::|h[Band of Trials]|h|r.",
		"You receive loot: |cffffffff|Hitem:2589::|h[Linen Cloth]|h|r.",
		"Aldren receives loot: |cff0070dd|Hitem:873::|h[Sword of Omens]|h|r.",
	}

	fmt.Println("=== Burst: 5 chat lines (1 other-player, max visible 3) ===")
	for _, line := range lines {
		fact, ok := p.ParseLoot(line)
		if !ok {
			fmt.Printf("  parse miss (expected for other players): %q\n", line)
			continue
		}
		label := fact.Name
		if fact.Quantity > 1 {
			label = fmt.Sprintf("%s x%d", fact.Name, fact.Quantity)
		}
		driver.Spawn(cfg, notify.Content{
			Icon:         fact.Icon,
			Text:         label,
			Color:        quality.ColorOf(fact.Quality),
			Quality:      fact.Quality,
			HasQuality:   true,
			ContentWidth: 30 + 8*float64(len(label)),
		})
		fmt.Printf("  spawned %q, active=%d\n", label, driver.ActiveCount())
	}

	if driver.ActiveCount() != cfg.MaxVisible {
		fmt.Fprintf(os.Stderr, "FAIL: active=%d, want %d\n", driver.ActiveCount(), cfg.MaxVisible)
		os.Exit(1)
	}

	// 逐帧推进：每 0.5 秒打印一次快照，中途改一次水平偏移
	const dt = 1.0 / 60.0
	fmt.Println("\n=== Timeline (snapshot every 0.5s, offsetX +80 at 1.5s) ===")
	for frame := 1; frame <= int(3.5/dt); frame++ {
		elapsed := float64(frame) * dt
		if frame == int(1.5/dt) {
			cfg.OffsetX += 80
			fmt.Println("  -- config change: offsetX += 80 --")
		}
		driver.Update(dt, cfg)

		if frame%30 == 0 {
			fmt.Printf("  t=%.1fs active=%d\n", elapsed, driver.ActiveCount())
			for _, t := range driver.Active() {
				x, y := notify.PositionOf(cfg, t)
				fmt.Printf("    %-24q pos=(%6.1f,%6.1f) stack=%5.1f alpha=%.2f\n",
					t.Text, x, y, t.StackOffset, notify.AlphaOf(cfg, t.Elapsed))
			}
		}
	}

	if driver.ActiveCount() != 0 {
		fmt.Fprintf(os.Stderr, "FAIL: active=%d after lifetime, want 0\n", driver.ActiveCount())
		os.Exit(1)
	}
	if driver.Pool().FreeCount() < cfg.MaxVisible {
		fmt.Fprintf(os.Stderr, "FAIL: pool free=%d, want >= %d\n", driver.Pool().FreeCount(), cfg.MaxVisible)
		os.Exit(1)
	}

	fmt.Println("\nAll notifications retired and returned to the pool. OK")
}
