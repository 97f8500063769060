package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fastgun/pkg/app"
	"github.com/decker502/fastgun/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "外部场景配置文件（默认使用嵌入的 data/gallery.yaml）")
	coil       = flag.Bool("coil", false, "模拟赞助者（解锁额外的亡命徒）")
	coilDelay  = flag.Float64("coil-delay", 0, "赞助开始前的延迟（秒）")
	mute       = flag.Bool("mute", false, "关闭音效")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Coil:       *coil,
		CoilDelay:  *coilDelay,
		Mute:       *mute,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	window := gameApp.Window()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetTPS(window.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
