package scenes

import (
	"strings"
	"testing"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/config"
	"github.com/decker502/fastgun/pkg/ecs"
	"github.com/decker502/fastgun/pkg/entities"
	"github.com/decker502/fastgun/pkg/game"
	"github.com/decker502/fastgun/pkg/utils"
)

const galleryConfigPath = "../../data/gallery.yaml"

func loadShippedConfig(t *testing.T) *config.GalleryConfig {
	t.Helper()
	cfg, err := config.LoadGalleryConfig(galleryConfigPath)
	if err != nil {
		t.Fatalf("LoadGalleryConfig failed: %v", err)
	}
	return cfg
}

// scriptedGaze 依次把准星移到实体上（每帧一个位置）
type scriptedGaze struct {
	camera utils.Camera
	points [][2]int
	next   int
}

func (g *scriptedGaze) source() (int, int) {
	if g.next >= len(g.points) {
		return -1000, -1000
	}
	p := g.points[g.next]
	g.next++
	return p[0], p[1]
}

// aim 瞄准实体的命中区域中心
func (g *scriptedGaze) aim(t *testing.T, em *ecs.EntityManager, selector string) {
	t.Helper()
	id, err := entities.QuerySelector(em, selector)
	if err != nil {
		t.Fatalf("QuerySelector(%q) failed: %v", selector, err)
	}
	transform, _ := ecs.GetComponent[*components.TransformComponent](em, id)
	gaze, ok := ecs.GetComponent[*components.GazeableComponent](em, id)
	if !ok {
		t.Fatalf("%s is not gazeable", selector)
	}
	x, y := g.camera.WorldToScreen(transform.X, transform.Y+gaze.OffsetY+gaze.Height/2)
	g.points = append(g.points, [2]int{int(x), int(y)})
}

func newScriptedScene(t *testing.T, cfg *config.GalleryConfig, monetization game.MonetizationSource, records *game.RecordManager) (*GalleryScene, *scriptedGaze) {
	t.Helper()
	scene, err := NewGalleryScene(cfg, monetization, records)
	if err != nil {
		t.Fatalf("NewGalleryScene failed: %v", err)
	}
	gaze := &scriptedGaze{camera: utils.Camera{
		PixelsPerUnit: cfg.Camera.PixelsPerUnit,
		HorizonY:      cfg.Camera.HorizonY,
		CenterX:       cfg.Camera.CenterX,
	}}
	scene.SetGazeSource(gaze.source)
	return scene, gaze
}

// runFrames 推进若干帧
func runFrames(scene *GalleryScene, frames int) {
	for i := 0; i < frames; i++ {
		scene.Update(1.0 / 60)
	}
}

func TestGallerySceneFullRun(t *testing.T) {
	cfg := loadShippedConfig(t)
	records := game.NewRecordManager(nil)
	scene, gaze := newScriptedScene(t, cfg, nil, records)
	em := scene.EntityManager()

	// 标题阶段：亡命徒在地下，凝视不到
	gaze.aim(t, em, "#start-button")
	runFrames(scene, 1)
	if scene.Session().Phase() != components.PhasePlaying {
		t.Fatalf("Gazing the start button should start the game, got %s", scene.Session().Phase())
	}

	// 按联动关系从后往前击倒，避免被复活
	for _, sel := range []string{"#outlaw-6", "#outlaw-3", "#outlaw-2", "#outlaw-1", "#outlaw-5", "#outlaw-4"} {
		gaze.aim(t, em, sel)
	}
	runFrames(scene, 6)

	if got := scene.Session().ShotsFired(); got != 6 {
		t.Fatalf("Expected 6 shots, got %d", got)
	}
	if !scene.IsFinished() {
		t.Fatalf("Expected game ended after all outlaws are down, phase %s", scene.Session().Phase())
	}

	best, err := entities.QuerySelector(em, "#best")
	if err != nil {
		t.Fatalf("QuerySelector(#best) failed: %v", err)
	}
	if !entities.IsVisible(em, best) {
		t.Error("Best record should be shown at the end")
	}
	if text := entities.GetText(em, best); !strings.Contains(text, "fewest shots 6") {
		t.Errorf("Unexpected best text %q", text)
	}
	if !records.Best(game.RecordModeStandard).HasRecord() {
		t.Error("Run should be recorded in standard mode")
	}
	if records.Best(game.RecordModeExtra).HasRecord() {
		t.Error("Run must not be recorded in extra mode")
	}
}

func TestGallerySceneStashedTargetsIgnoreGaze(t *testing.T) {
	cfg := loadShippedConfig(t)
	scene, gaze := newScriptedScene(t, cfg, nil, nil)
	em := scene.EntityManager()

	// 瞄准亡命徒原本所在的位置（地面上）
	var original config.PositionConfig
	for _, e := range cfg.Entities {
		if e.ID == "outlaw-1" {
			original = e.Position
		}
	}
	x, y := gaze.camera.WorldToScreen(original.X, original.Y+1)
	gaze.points = append(gaze.points, [2]int{int(x), int(y)})
	runFrames(scene, 1)

	outlaw, _ := entities.QuerySelector(em, "#outlaw-1")
	if !scene.Targets().IsUp(outlaw) {
		t.Error("Stashed outlaw must not be shot on the title screen")
	}
	if scene.Session().ShotsFired() != 0 {
		t.Errorf("Expected no shots, got %d", scene.Session().ShotsFired())
	}
}

func TestGalleryScenePractice(t *testing.T) {
	cfg := loadShippedConfig(t)
	scene, gaze := newScriptedScene(t, cfg, nil, nil)
	em := scene.EntityManager()

	gaze.aim(t, em, "#chicken-left")
	runFrames(scene, 1)

	left, _ := entities.QuerySelector(em, "#chicken-left")
	if scene.Targets().IsUp(left) {
		t.Error("Chicken should fall when gazed")
	}
	if scene.Session().Phase() != components.PhaseTitle {
		t.Error("Practice must not start the game")
	}
	if scene.Session().ShotsFired() != 0 {
		t.Error("Practice shots must not count")
	}
}

func TestGallerySceneMonetization(t *testing.T) {
	cfg := loadShippedConfig(t)
	monetization := game.NewSimulatedMonetization(true, 0.5)
	records := game.NewRecordManager(nil)
	scene, _ := newScriptedScene(t, cfg, monetization, records)

	if scene.Session().IsExtraContentUnlocked() {
		t.Fatal("Must not unlock while pending")
	}

	runFrames(scene, 31)

	if !scene.Session().IsExtraContentUnlocked() {
		t.Fatal("Expected unlock after the simulated delay")
	}
	if got := len(scene.Session().Targets()); got != 8 {
		t.Errorf("Expected 8 outlaws after unlock, got %d", got)
	}

	start, _ := entities.QuerySelector(scene.EntityManager(), "#start-button")
	if text := entities.GetText(scene.EntityManager(), start); !strings.Contains(text, "Cowboy Coil") {
		t.Errorf("Expected alternate start text, got %q", text)
	}
}

func TestNewGallerySceneMissingEntity(t *testing.T) {
	cfg := loadShippedConfig(t)
	kept := cfg.Entities[:0]
	for _, e := range cfg.Entities {
		if e.ID != "timer" {
			kept = append(kept, e)
		}
	}
	cfg.Entities = kept

	if _, err := NewGalleryScene(cfg, nil, nil); err == nil {
		t.Error("Expected error when the timer entity is missing")
	}
}

func TestFormatBest(t *testing.T) {
	best := game.BestRecord{FastestSeconds: 65.4, FewestShots: 8, Runs: 3}

	if got := FormatBest(best, false); got != "best  1:05  /  fewest shots 8" {
		t.Errorf("Unexpected text %q", got)
	}
	if got := FormatBest(best, true); !strings.HasPrefix(got, "new best!") {
		t.Errorf("Expected new best prefix, got %q", got)
	}
}
