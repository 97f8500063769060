package systems

import (
	"image/color"
	"testing"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/ecs"
)

func addDrawable(em *ecs.EntityManager, z float64, visible bool) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.TransformComponent{Z: z})
	ecs.AddComponent(em, id, &components.VisibilityComponent{Visible: visible})
	return id
}

func TestRenderSystemDrawOrder(t *testing.T) {
	em := ecs.NewEntityManager()
	near := addDrawable(em, -2, true)
	far := addDrawable(em, -10, true)
	addDrawable(em, -5, false)
	mid := addDrawable(em, -6, true)
	midSameZ := addDrawable(em, -6, true)

	system := NewRenderSystem(em, testCamera, color.RGBA{A: 255}, color.RGBA{A: 255}, 960, 540)
	order := system.DrawOrder()

	expected := []ecs.EntityID{far, mid, midSameZ, near}
	if len(order) != len(expected) {
		t.Fatalf("Expected %d drawables, got %d (%v)", len(expected), len(order), order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("order[%d]: expected %d, got %d", i, expected[i], order[i])
		}
	}
}
