package entities

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/config"
	"github.com/decker502/fastgun/pkg/ecs"
)

// BuildGallery 根据配置创建场景中的所有实体
// 返回按配置顺序排列的实体ID（与创建顺序一致）
func BuildGallery(em *ecs.EntityManager, cfg *config.GalleryConfig) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(cfg.Entities))
	for i, entityCfg := range cfg.Entities {
		var (
			id  ecs.EntityID
			err error
		)
		switch entityCfg.Type {
		case config.EntityTypeText:
			id, err = NewTextEntity(em, entityCfg)
		case config.EntityTypeTarget:
			id, err = NewTargetEntity(em, entityCfg, cfg.Gameplay.UpAngle)
		default:
			err = fmt.Errorf("unknown entity type %q", entityCfg.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("entity %d (%s): %w", i, entityCfg.ID, err)
		}
		ids = append(ids, id)
	}

	log.Printf("[GalleryFactory] Created %d entities", len(ids))
	return ids, nil
}

// NewTextEntity 创建文字实体（标题、按钮、HUD、结束语）
func NewTextEntity(em *ecs.EntityManager, cfg config.EntityConfig) (ecs.EntityID, error) {
	textColor, err := entityColor(cfg.Color, color.RGBA{A: 0xff})
	if err != nil {
		return 0, err
	}

	id := newBaseEntity(em, cfg)
	ecs.AddComponent(em, id, &components.TextComponent{
		Value: cfg.Text,
		Color: textColor,
		Scale: cfg.Scale,
	})
	return id, nil
}

// NewTargetEntity 创建靶子实体
//
// 靶子初始为立起状态（"up" 标签，旋转角为 upAngle）。
// 没有配置凝视区域时使用木板尺寸。
func NewTargetEntity(em *ecs.EntityManager, cfg config.EntityConfig, upAngle float64) (ecs.EntityID, error) {
	boardColor, err := entityColor(cfg.Color, color.RGBA{R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff})
	if err != nil {
		return 0, err
	}

	id := newBaseEntity(em, cfg)
	if transform, ok := ecs.GetComponent[*components.TransformComponent](em, id); ok {
		transform.RotationX = upAngle
	}

	ecs.AddComponent(em, id, &components.BoardComponent{
		Width:  cfg.Width,
		Height: cfg.Height,
		Color:  boardColor,
	})
	if _, ok := ecs.GetComponent[*components.GazeableComponent](em, id); !ok {
		ecs.AddComponent(em, id, &components.GazeableComponent{Width: cfg.Width, Height: cfg.Height})
	}

	target := &components.TargetComponent{}
	if cfg.Target != nil {
		target.ReviveSelector = cfg.Target.Revive
		target.ScoreRelevant = cfg.Target.ScoreRelevant
		if board, ok := ecs.GetComponent[*components.BoardComponent](em, id); ok {
			board.Texture = cfg.Target.Texture
		}
	}
	ecs.AddComponent(em, id, target)
	ecs.AddComponent(em, id, components.NewStateComponent(components.StateUp))
	return id, nil
}

// newBaseEntity 创建带选择器、位置、可见性（以及可选凝视区域）的实体
func newBaseEntity(em *ecs.EntityManager, cfg config.EntityConfig) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewSelectorComponent(cfg.ID, cfg.Classes...))
	ecs.AddComponent(em, id, &components.TransformComponent{
		X: cfg.Position.X,
		Y: cfg.Position.Y,
		Z: cfg.Position.Z,
	})
	ecs.AddComponent(em, id, &components.VisibilityComponent{Visible: cfg.IsVisible()})
	if cfg.Gazeable != nil {
		ecs.AddComponent(em, id, &components.GazeableComponent{
			Width:   cfg.Gazeable.Width,
			Height:  cfg.Gazeable.Height,
			OffsetY: cfg.Gazeable.OffsetY,
		})
	}
	return id
}

func entityColor(value string, fallback color.RGBA) (color.RGBA, error) {
	if value == "" {
		return fallback, nil
	}
	return config.ParseHexColor(value)
}
