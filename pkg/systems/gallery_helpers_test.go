package systems

import (
	"testing"

	"github.com/decker502/fastgun/pkg/config"
	"github.com/decker502/fastgun/pkg/ecs"
	"github.com/decker502/fastgun/pkg/entities"
	"github.com/decker502/fastgun/pkg/event"
)

// countingNotifier 记录 OnShotFired 调用次数和调用时机
type countingNotifier struct {
	calls int
	onHit func()
}

func (n *countingNotifier) OnShotFired() {
	n.calls++
	if n.onHit != nil {
		n.onHit()
	}
}

// linearGameplay 线性缓动的玩法常量，方便计算插值
func linearGameplay() config.GameplayConfig {
	return config.GameplayConfig{
		AnimationDuration: 0.8,
		UpAngle:           0,
		DownAngle:         -90,
		Easing:            "linear",
		Elasticity:        800,
		StashOffset:       101,
		StartButtonOffset: 100,
	}
}

// addTarget 创建一个靶子实体
func addTarget(t *testing.T, em *ecs.EntityManager, id string, scoreRelevant bool, revive string, classes ...string) ecs.EntityID {
	t.Helper()
	entityID, err := entities.NewTargetEntity(em, config.EntityConfig{
		ID:       id,
		Classes:  classes,
		Type:     config.EntityTypeTarget,
		Width:    1,
		Height:   2,
		Target:   &config.TargetConfig{ScoreRelevant: scoreRelevant, Revive: revive},
		Position: config.PositionConfig{X: 0, Y: 0, Z: -5},
	}, 0)
	if err != nil {
		t.Fatalf("NewTargetEntity(%s) failed: %v", id, err)
	}
	return entityID
}

// newTargetFixture 创建靶子系统并注册所有已创建的靶子
func newTargetFixture(t *testing.T, em *ecs.EntityManager, notifier ShotNotifier) (*TargetSystem, *event.Dispatcher) {
	t.Helper()
	dispatcher := event.NewDispatcher()
	system, err := NewTargetSystem(em, dispatcher, notifier, linearGameplay())
	if err != nil {
		t.Fatalf("NewTargetSystem failed: %v", err)
	}
	if err := system.RegisterTargets(); err != nil {
		t.Fatalf("RegisterTargets failed: %v", err)
	}
	return system, dispatcher
}

func approxEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

// testGalleryYAML 精简的射击场：3 个亡命徒 + 1 个赞助靶 + 2 只鸡
const testGalleryYAML = `
gameplay:
  easing: linear
selectors:
  title: "#title"
  startButton: "#start-button"
  end: "#end"
  timer: "#timer"
  shots: "#shots"
  practice: ".chicken"
  targets: ".outlaw:not(.coil)"
  extraTargets: ".outlaw"
texts:
  extraStartButton: "coil start"
  extraEnd: "coil end"
entities:
  - {id: title, type: text, text: "title", position: {y: 6}}
  - {id: start-button, type: text, text: "start", position: {y: 4}, gazeable: {width: 4, height: 1}}
  - {id: timer, type: text, text: "time\n0:00", visible: false}
  - {id: shots, type: text, text: "shots\n0", visible: false}
  - {id: end, type: text, text: "end", visible: false}
  - {id: chicken-a, class: [chicken], type: target, width: 1, height: 1, target: {revive: "#chicken-b"}}
  - {id: chicken-b, class: [chicken], type: target, width: 1, height: 1, target: {revive: "#chicken-a"}}
  - {id: outlaw-1, class: [outlaw], type: target, width: 1, height: 2, target: {scoreRelevant: true}}
  - {id: outlaw-2, class: [outlaw], type: target, width: 1, height: 2, target: {scoreRelevant: true, revive: "#outlaw-1"}}
  - {id: outlaw-3, class: [outlaw], type: target, width: 1, height: 2, target: {scoreRelevant: true}}
  - {id: coil-1, class: [outlaw, coil], type: target, width: 1, height: 2, target: {scoreRelevant: true}}
`

// galleryFixture 完整的会话 + 靶子系统
type galleryFixture struct {
	em         *ecs.EntityManager
	dispatcher *event.Dispatcher
	session    *SessionSystem
	targets    *TargetSystem
	cfg        *config.GalleryConfig
}

func newGalleryFixture(t *testing.T) *galleryFixture {
	t.Helper()
	cfg, err := config.ParseGalleryConfig([]byte(testGalleryYAML), "test")
	if err != nil {
		t.Fatalf("ParseGalleryConfig failed: %v", err)
	}

	em := ecs.NewEntityManager()
	if _, err := entities.BuildGallery(em, cfg); err != nil {
		t.Fatalf("BuildGallery failed: %v", err)
	}

	dispatcher := event.NewDispatcher()
	session, err := NewSessionSystem(em, dispatcher, cfg)
	if err != nil {
		t.Fatalf("NewSessionSystem failed: %v", err)
	}
	targets, err := NewTargetSystem(em, dispatcher, session, cfg.Gameplay)
	if err != nil {
		t.Fatalf("NewTargetSystem failed: %v", err)
	}
	if err := targets.RegisterTargets(); err != nil {
		t.Fatalf("RegisterTargets failed: %v", err)
	}

	return &galleryFixture{em: em, dispatcher: dispatcher, session: session, targets: targets, cfg: cfg}
}

// mustFind 按选择器查找实体
func (f *galleryFixture) mustFind(t *testing.T, selector string) ecs.EntityID {
	t.Helper()
	id, err := entities.QuerySelector(f.em, selector)
	if err != nil {
		t.Fatalf("QuerySelector(%q) failed: %v", selector, err)
	}
	return id
}

// gaze 模拟准星进入实体
func (f *galleryFixture) gaze(t *testing.T, selector string) {
	t.Helper()
	f.dispatcher.Dispatch(event.Event{Type: event.MouseEnter, Target: f.mustFind(t, selector)})
}
