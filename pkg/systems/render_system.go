package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/ecs"
	"github.com/decker502/fastgun/pkg/utils"
)

// RenderSystem 渲染系统
// 绘制天空、地面、靶子木板和文字，按 Z 从远到近排序
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        utils.Camera
	face          *text.GoXFace

	skyColor    color.RGBA
	groundColor color.RGBA
	width       int
	height      int
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, camera utils.Camera, sky, ground color.RGBA, width, height int) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		camera:        camera,
		face:          text.NewGoXFace(basicfont.Face7x13),
		skyColor:      sky,
		groundColor:   ground,
		width:         width,
		height:        height,
	}
}

// DrawOrder 返回可见实体的绘制顺序（Z 升序，相同 Z 按创建顺序）
func (s *RenderSystem) DrawOrder() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.VisibilityComponent, *components.TransformComponent](s.entityManager)
	visible := make([]ecs.EntityID, 0, len(ids))
	for _, id := range ids {
		vis, _ := ecs.GetComponent[*components.VisibilityComponent](s.entityManager, id)
		if vis.Visible {
			visible = append(visible, id)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		ti, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, visible[i])
		tj, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, visible[j])
		return ti.Z < tj.Z
	})
	return visible
}

// Draw 绘制整个场景
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(s.skyColor)
	horizon := float32(s.camera.HorizonY)
	vector.DrawFilledRect(screen, 0, horizon, float32(s.width), float32(s.height)-horizon, s.groundColor, false)

	for _, id := range s.DrawOrder() {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if board, ok := ecs.GetComponent[*components.BoardComponent](s.entityManager, id); ok {
			s.drawBoard(screen, board, transform)
		}
		if label, ok := ecs.GetComponent[*components.TextComponent](s.entityManager, id); ok {
			s.drawText(screen, label, transform)
		}
	}
}

// drawBoard 绘制靶子木板
// 以底边为轴向后翻转，屏幕上的高度为 height·cos(rotationX)
func (s *RenderSystem) drawBoard(screen *ebiten.Image, board *components.BoardComponent, transform *components.TransformComponent) {
	baseX, baseY := s.camera.WorldToScreen(transform.X, transform.Y)
	w := s.camera.WorldLength(board.Width)
	h := s.camera.WorldLength(board.Height) * math.Cos(transform.RotationX*math.Pi/180)

	top := baseY - h
	if h < 0 {
		// 弹性缓动越过 -90 度时木板翻到地面以下
		top, h = baseY, -h
	}
	if h < 1 {
		h = 1
	}

	x := float32(baseX - w/2)
	vector.DrawFilledRect(screen, x, float32(top), float32(w), float32(h), board.Color, false)
	vector.StrokeRect(screen, x, float32(top), float32(w), float32(h), 2, color.RGBA{A: 0xff}, false)
}

// drawText 绘制多行文字，以实体位置为中心
func (s *RenderSystem) drawText(screen *ebiten.Image, label *components.TextComponent, transform *components.TransformComponent) {
	if label.Value == "" {
		return
	}

	scale := label.Scale
	if scale == 0 {
		scale = 1
	}
	metrics := s.face.Metrics()
	lineSpacing := metrics.HAscent + metrics.HDescent + metrics.HLineGap

	cx, cy := s.camera.WorldToScreen(transform.X, transform.Y)

	op := &text.DrawOptions{}
	op.LayoutOptions.LineSpacing = lineSpacing
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(label.Color)
	text.Draw(screen, label.Value, s.face, op)
}
