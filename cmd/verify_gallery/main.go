// verify_gallery 无窗口验证程序
//
// 按脚本依次凝视实体，每一步打印会话阶段和 HUD 文本，用于检查场景配置
// （联动关系、选择器、额外内容）是否符合预期。
//
// 用法：
//
//	go run ./cmd/verify_gallery -script "#start-button,#outlaw-6,#outlaw-3,#outlaw-2,#outlaw-1,#outlaw-5,#outlaw-4"
//	go run ./cmd/verify_gallery -coil -coil-delay 1 -settle 120
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/config"
	"github.com/decker502/fastgun/pkg/ecs"
	"github.com/decker502/fastgun/pkg/entities"
	"github.com/decker502/fastgun/pkg/game"
	"github.com/decker502/fastgun/pkg/scenes"
	"github.com/decker502/fastgun/pkg/systems"
	"github.com/decker502/fastgun/pkg/utils"
)

const defaultScript = "#start-button,#outlaw-6,#outlaw-3,#outlaw-2,#outlaw-1,#outlaw-5,#outlaw-4"

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "data/gallery.yaml", "场景配置文件")
	script     = flag.String("script", defaultScript, "依次凝视的实体选择器（逗号分隔）")
	coil       = flag.Bool("coil", false, "模拟赞助者")
	coilDelay  = flag.Float64("coil-delay", 0, "赞助开始前的延迟（秒）")
	settle     = flag.Int("settle", 60, "脚本结束后继续运行的帧数")
)

// scriptedGaze 每帧返回下一个准星位置
type scriptedGaze struct {
	x, y int
}

func (g *scriptedGaze) source() (int, int) {
	return g.x, g.y
}

func main() {
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "verify_gallery: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadGalleryConfig(*configPath)
	if err != nil {
		return err
	}

	scene, err := scenes.NewGalleryScene(cfg, game.NewSimulatedMonetization(*coil, *coilDelay), game.NewRecordManager(nil))
	if err != nil {
		return err
	}

	camera := utils.Camera{
		PixelsPerUnit: cfg.Camera.PixelsPerUnit,
		HorizonY:      cfg.Camera.HorizonY,
		CenterX:       cfg.Camera.CenterX,
	}
	gaze := &scriptedGaze{x: -1000, y: -1000}
	scene.SetGazeSource(gaze.source)

	dt := 1.0 / float64(cfg.Window.TPS)
	em := scene.EntityManager()

	fmt.Printf("%-16s %s\n", "step", "state")
	report("init", scene)

	for _, selector := range strings.Split(*script, ",") {
		selector = strings.TrimSpace(selector)
		if selector == "" {
			continue
		}

		x, y, err := aim(em, camera, selector)
		if err != nil {
			return err
		}
		gaze.x, gaze.y = x, y
		scene.Update(dt)
		report(selector, scene)
	}

	gaze.x, gaze.y = -1000, -1000
	for i := 0; i < *settle; i++ {
		scene.Update(dt)
	}
	report(fmt.Sprintf("+%d frames", *settle), scene)
	return nil
}

// aim 返回实体命中区域中心的屏幕坐标
func aim(em *ecs.EntityManager, camera utils.Camera, selector string) (int, int, error) {
	id, err := entities.QuerySelector(em, selector)
	if err != nil {
		return 0, 0, err
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return 0, 0, fmt.Errorf("%s has no transform", selector)
	}
	gazeable, ok := ecs.GetComponent[*components.GazeableComponent](em, id)
	if !ok {
		return 0, 0, fmt.Errorf("%s is not gazeable", selector)
	}

	x, y := camera.WorldToScreen(transform.X, transform.Y+gazeable.OffsetY+gazeable.Height/2)
	return int(x), int(y), nil
}

func report(step string, scene *scenes.GalleryScene) {
	session := scene.Session()
	up := 0
	for _, id := range session.Targets() {
		if scene.Targets().IsUp(id) {
			up++
		}
	}
	fmt.Printf("%-16s phase=%-7s %s  shots=%d  outlaws up=%d/%d  extra=%v\n",
		step, session.Phase(), systems.FormatClock(session.ElapsedSeconds()), session.ShotsFired(),
		up, len(session.Targets()), session.IsExtraContentUnlocked())
}
