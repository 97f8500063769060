package systems

import (
	"math"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/ecs"
	"github.com/decker502/fastgun/pkg/event"
	"github.com/decker502/fastgun/pkg/utils"
)

// GroundLevel 地面高度，低于地面的实体不可被凝视
const GroundLevel = 0.0

// GazeSystem 凝视系统
//
// 把准星（鼠标/触摸位置）翻译成实体上的 mouseenter 事件：
// 每帧找出准星下最靠前的可凝视实体，与上一帧不同时派发一次事件。
// 准星停留在同一实体上不会重复触发。
//
// 可见性不参与判断，需要禁用交互的实体必须移到地面以下。
type GazeSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	camera        utils.Camera

	// hovered 上一帧准星下的实体，0 表示没有
	hovered ecs.EntityID
}

// NewGazeSystem 创建凝视系统
func NewGazeSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, camera utils.Camera) *GazeSystem {
	return &GazeSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		camera:        camera,
	}
}

// Update 根据准星屏幕坐标更新凝视目标
func (s *GazeSystem) Update(screenX, screenY float64) {
	worldX, worldY := s.camera.ScreenToWorld(screenX, screenY)
	hit := s.Pick(worldX, worldY)
	if hit == s.hovered {
		return
	}

	s.hovered = hit
	if hit != 0 {
		s.dispatcher.Dispatch(event.Event{Type: event.MouseEnter, Target: hit})
	}
}

// Hovered 返回当前准星下的实体
func (s *GazeSystem) Hovered() ecs.EntityID {
	return s.hovered
}

// Pick 返回世界坐标处最靠前（Z 最大）的可凝视实体，没有则返回 0
// Z 相同时后创建的实体优先（与绘制顺序一致）
func (s *GazeSystem) Pick(worldX, worldY float64) ecs.EntityID {
	var best ecs.EntityID
	bestZ := math.Inf(-1)

	ids := ecs.GetEntitiesWith2[*components.GazeableComponent, *components.TransformComponent](s.entityManager)
	for _, id := range ids {
		gaze, _ := ecs.GetComponent[*components.GazeableComponent](s.entityManager, id)
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		if transform.Y < GroundLevel {
			continue
		}
		if !gazeBoxContains(gaze, transform, worldX, worldY) {
			continue
		}
		if transform.Z >= bestZ {
			best = id
			bestZ = transform.Z
		}
	}
	return best
}

// gazeBoxContains 判断点是否在命中区域内
// 区域高度随绕 X 轴的旋转缩放，倒下的靶子几乎没有命中面积
func gazeBoxContains(gaze *components.GazeableComponent, transform *components.TransformComponent, x, y float64) bool {
	halfWidth := gaze.Width / 2
	if x < transform.X-halfWidth || x > transform.X+halfWidth {
		return false
	}

	height := gaze.Height * math.Abs(math.Cos(transform.RotationX*math.Pi/180))
	bottom := transform.Y + gaze.OffsetY
	return y >= bottom && y <= bottom+height
}
