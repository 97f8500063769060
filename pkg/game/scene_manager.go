package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于重新创建场景（再来一局），避免循环依赖
type SceneFactory func() (Scene, error)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Reload to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Reload 使用工厂函数重新创建场景
// 创建失败时保留当前场景
func (sm *SceneManager) Reload() error {
	if sm.sceneFactory == nil {
		return fmt.Errorf("scene factory not set")
	}

	scene, err := sm.sceneFactory()
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] Scene reloaded")
	return nil
}

// CanReload 当前场景是否已结束，可以重新开始
func (sm *SceneManager) CanReload() bool {
	finishable, ok := sm.currentScene.(Finishable)
	return ok && finishable.IsFinished()
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
