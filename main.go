package main

import (
	"flag"
	"log"

	"github.com/decker502/lootfeed/pkg/app"
	"github.com/decker502/lootfeed/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	itemDB := flag.String("items", "assets/items.yaml", "item database file")
	locale := flag.String("locale", "", "locale template file (default built-in enUS)")
	flag.Parse()

	a, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		ItemDatabase: *itemDB,
		Locale:       *locale,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Loot Feed Overlay")

	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
