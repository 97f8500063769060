package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	deltaTime    float64
	finished     bool
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {}

func (m *MockScene) IsFinished() bool {
	return m.finished
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected no current scene initially")
	}
	if sm.CanReload() {
		t.Error("Expected CanReload=false without a scene")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // 没有场景时不应 panic

	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)
	sm.Update(0.016)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != 0.016 {
		t.Errorf("Expected deltaTime 0.016, got %.3f", mockScene.deltaTime)
	}
}

func TestSceneManagerReload(t *testing.T) {
	t.Run("没有工厂函数", func(t *testing.T) {
		sm := NewSceneManager()
		if err := sm.Reload(); err == nil {
			t.Error("Expected error without scene factory")
		}
	})

	t.Run("重新创建场景", func(t *testing.T) {
		sm := NewSceneManager()
		created := 0
		sm.SetSceneFactory(func() (Scene, error) {
			created++
			return &MockScene{}, nil
		})

		if err := sm.Reload(); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}
		first := sm.GetCurrentScene()
		if err := sm.Reload(); err != nil {
			t.Fatalf("Reload failed: %v", err)
		}

		if created != 2 {
			t.Errorf("Expected factory called twice, got %d", created)
		}
		if sm.GetCurrentScene() == first {
			t.Error("Reload should switch to a new scene")
		}
	})

	t.Run("创建失败保留当前场景", func(t *testing.T) {
		sm := NewSceneManager()
		current := &MockScene{}
		sm.SwitchTo(current)
		sm.SetSceneFactory(func() (Scene, error) {
			return nil, errors.New("boom")
		})

		if err := sm.Reload(); err == nil {
			t.Error("Expected error from failing factory")
		}
		if sm.GetCurrentScene() != current {
			t.Error("Current scene should be kept when reload fails")
		}
	})
}

func TestSceneManagerCanReload(t *testing.T) {
	sm := NewSceneManager()
	scene := &MockScene{}
	sm.SwitchTo(scene)

	if sm.CanReload() {
		t.Error("Running scene cannot be reloaded")
	}
	scene.finished = true
	if !sm.CanReload() {
		t.Error("Finished scene should be reloadable")
	}
}
