package scenes

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/config"
	"github.com/decker502/fastgun/pkg/ecs"
	"github.com/decker502/fastgun/pkg/entities"
	"github.com/decker502/fastgun/pkg/event"
	"github.com/decker502/fastgun/pkg/game"
	"github.com/decker502/fastgun/pkg/systems"
	"github.com/decker502/fastgun/pkg/utils"
)

var (
	_ Scene           = (*GalleryScene)(nil)
	_ game.Finishable = (*GalleryScene)(nil)
)

// GazeSource 返回准星的屏幕坐标
type GazeSource func() (x, y int)

// ticker 需要随帧推进的赞助信号（模拟实现）
type ticker interface {
	Update(dt float64)
}

// GalleryScene 射击场场景
//
// 持有实体管理器和所有系统，每帧按以下顺序更新：
//  1. 赞助信号（模拟实现需要推进计时）
//  2. 凝视：准星进入靶子即射击，进入开始按钮即开始
//  3. 靶子翻转动画
//  4. 会话：计时、胜利判定
type GalleryScene struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher

	sessionSystem *systems.SessionSystem
	targetSystem  *systems.TargetSystem
	gazeSystem    *systems.GazeSystem
	renderSystem  *systems.RenderSystem

	monetization game.MonetizationSource
	records      *game.RecordManager
	audio        *game.AudioManager
	gazeSource   GazeSource

	// bestEntity 最佳成绩文字实体，0 表示场景中没有
	bestEntity ecs.EntityID
}

// NewGalleryScene 根据配置创建射击场场景
//
// 参数：
//   - cfg: 场景配置（实体、选择器、玩法常量）
//   - monetization: 赞助信号，可为 nil
//   - records: 最佳成绩管理器，可为 nil（不记录成绩）
//
// 返回：
//   - 场景实例
//   - 配置中缺少会话需要的实体或选择器无效时返回错误
func NewGalleryScene(cfg *config.GalleryConfig, monetization game.MonetizationSource, records *game.RecordManager) (*GalleryScene, error) {
	em := ecs.NewEntityManager()
	dispatcher := event.NewDispatcher()

	if _, err := entities.BuildGallery(em, cfg); err != nil {
		return nil, fmt.Errorf("failed to build gallery: %w", err)
	}

	sessionSystem, err := systems.NewSessionSystem(em, dispatcher, cfg)
	if err != nil {
		return nil, err
	}

	targetSystem, err := systems.NewTargetSystem(em, dispatcher, sessionSystem, cfg.Gameplay)
	if err != nil {
		return nil, err
	}
	if err := targetSystem.RegisterTargets(); err != nil {
		return nil, err
	}

	camera := utils.Camera{
		PixelsPerUnit: cfg.Camera.PixelsPerUnit,
		HorizonY:      cfg.Camera.HorizonY,
		CenterX:       cfg.Camera.CenterX,
	}
	sky, _ := config.ParseHexColor(cfg.Colors.Sky)
	ground, _ := config.ParseHexColor(cfg.Colors.Ground)

	s := &GalleryScene{
		entityManager: em,
		dispatcher:    dispatcher,
		sessionSystem: sessionSystem,
		targetSystem:  targetSystem,
		gazeSystem:    systems.NewGazeSystem(em, dispatcher, camera),
		renderSystem:  systems.NewRenderSystem(em, camera, sky, ground, cfg.Window.Width, cfg.Window.Height),
		monetization:  monetization,
		records:       records,
		gazeSource:    utils.GazePoint,
	}

	// 最佳成绩显示是可选的
	if cfg.Selectors.Best != "" {
		s.bestEntity, err = entities.QuerySelector(em, cfg.Selectors.Best)
		if err != nil && !errors.Is(err, entities.ErrEntityNotFound) {
			return nil, fmt.Errorf("best record: %w", err)
		}
	}

	dispatcher.Subscribe(event.Global, event.TargetShot, func(event.Event) {
		s.audio.PlaySound(game.SoundShot)
	})
	dispatcher.Subscribe(event.Global, event.TargetRevived, func(event.Event) {
		s.audio.PlaySound(game.SoundRevive)
	})
	sessionSystem.SetOnGameEnded(s.onGameEnded)
	sessionSystem.ConnectMonetization(monetization)

	log.Printf("[GalleryScene] Scene created with %d entities", len(em.AllEntities()))
	return s, nil
}

// SetGazeSource 替换准星来源（测试和脚本化运行使用）
func (s *GalleryScene) SetGazeSource(source GazeSource) {
	s.gazeSource = source
}

// SetAudio 设置音频管理器，nil 表示静音
func (s *GalleryScene) SetAudio(audio *game.AudioManager) {
	s.audio = audio
}

// onGameEnded 记录成绩并显示最佳成绩
func (s *GalleryScene) onGameEnded(elapsed float64, shots int) {
	s.audio.PlaySound(game.SoundWin)

	if s.records == nil {
		return
	}

	mode := game.RecordModeStandard
	if s.sessionSystem.IsExtraContentUnlocked() {
		mode = game.RecordModeExtra
	}

	best, fastest, err := s.records.Submit(mode, elapsed, shots)
	if err != nil {
		log.Printf("[GalleryScene] Warning: Failed to save record: %v", err)
	}

	if s.bestEntity == 0 {
		return
	}
	entities.SetText(s.entityManager, s.bestEntity, FormatBest(best, fastest))
	entities.SetVisible(s.entityManager, s.bestEntity, true)
}

// FormatBest 最佳成绩文本
func FormatBest(best game.BestRecord, newRecord bool) string {
	prefix := "best"
	if newRecord {
		prefix = "new best!"
	}
	return fmt.Sprintf("%s  %s  /  fewest shots %d", prefix, systems.FormatClock(best.FastestSeconds), best.FewestShots)
}

// Update 更新场景逻辑
func (s *GalleryScene) Update(deltaTime float64) {
	if t, ok := s.monetization.(ticker); ok {
		t.Update(deltaTime)
	}

	if s.gazeSource != nil {
		x, y := s.gazeSource()
		s.gazeSystem.Update(float64(x), float64(y))
	}

	s.targetSystem.Update(deltaTime)
	s.sessionSystem.Update(deltaTime)
}

// Draw 绘制场景
func (s *GalleryScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
}

// IsFinished 所有亡命徒都已倒下
func (s *GalleryScene) IsFinished() bool {
	return s.sessionSystem.Phase() == components.PhaseEnded
}

// Session 返回会话系统
func (s *GalleryScene) Session() *systems.SessionSystem {
	return s.sessionSystem
}

// Targets 返回靶子系统
func (s *GalleryScene) Targets() *systems.TargetSystem {
	return s.targetSystem
}

// EntityManager 返回实体管理器
func (s *GalleryScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}
