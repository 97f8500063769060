package systems

import (
	"fmt"
	"log"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/config"
	"github.com/decker502/fastgun/pkg/ecs"
	"github.com/decker502/fastgun/pkg/entities"
	"github.com/decker502/fastgun/pkg/event"
	"github.com/decker502/fastgun/pkg/utils"
)

// ShotNotifier 接收"计分靶被击中"的通知
// SessionSystem 实现此接口；测试中可以注入假的实现
type ShotNotifier interface {
	OnShotFired()
}

// TargetSystem 靶子系统
//
// 每个靶子是一个 Up/Down 状态机：
//   - Shoot: Up → Down，播放倒下动画，复活联动靶子，计分靶通知会话
//   - Revive: Down → Up，播放立起动画，不会继续复活其他靶子
//
// 对同一状态重复调用是无操作。动画可以被打断：新动画从旧动画的当前插值角度出发，
// 时长扣除旧动画已播放的时间，保证反向翻转连贯。
type TargetSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher
	notifier      ShotNotifier

	duration  float64 // 完整翻转时长（秒）
	upAngle   float64
	downAngle float64
	easing    utils.EasingFunc

	// gazeListeners 每个靶子的凝视监听
	gazeListeners map[ecs.EntityID]event.ListenerID
}

// NewTargetSystem 创建靶子系统
//
// 参数：
//   - em: 实体管理器
//   - dispatcher: 事件分发器（凝视事件、动画完成事件）
//   - notifier: 计分靶被击中时的通知对象，可为 nil
//   - gameplay: 玩法常量（动画时长、角度、缓动）
//
// 返回：
//   - 靶子系统实例
//   - 缓动函数名称无效时返回错误
func NewTargetSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, notifier ShotNotifier, gameplay config.GameplayConfig) (*TargetSystem, error) {
	easing, err := utils.EasingByName(gameplay.Easing, gameplay.Elasticity)
	if err != nil {
		return nil, fmt.Errorf("target system: %w", err)
	}

	return &TargetSystem{
		entityManager: em,
		dispatcher:    dispatcher,
		notifier:      notifier,
		duration:      gameplay.AnimationDuration,
		upAngle:       gameplay.UpAngle,
		downAngle:     gameplay.DownAngle,
		easing:        easing,
		gazeListeners: make(map[ecs.EntityID]event.ListenerID),
	}, nil
}

// RegisterTargets 初始化场景中的所有靶子
//
// 解析每个靶子的联动选择器（匹配为空是合法的，自身会被排除），
// 并订阅凝视事件：准星进入靶子即射击。
// 选择器语法错误属于配置错误，直接返回。
func (s *TargetSystem) RegisterTargets() error {
	ids := ecs.GetEntitiesWith1[*components.TargetComponent](s.entityManager)
	for _, id := range ids {
		if err := s.registerTarget(id); err != nil {
			return err
		}
	}
	log.Printf("[TargetSystem] Registered %d targets", len(ids))
	return nil
}

func (s *TargetSystem) registerTarget(id ecs.EntityID) error {
	target, _ := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)

	linked, err := entities.QuerySelectorAll(s.entityManager, target.ReviveSelector)
	if err != nil {
		return fmt.Errorf("target %d revive selector: %w", id, err)
	}
	target.Linked = target.Linked[:0]
	for _, other := range linked {
		if other == id {
			continue
		}
		if !ecs.HasComponent[*components.TargetComponent](s.entityManager, other) {
			log.Printf("[TargetSystem] WARNING: revive selector %q of target %d matched non-target %d, ignored",
				target.ReviveSelector, id, other)
			continue
		}
		target.Linked = append(target.Linked, other)
	}

	if old, ok := s.gazeListeners[id]; ok {
		s.dispatcher.Unsubscribe(old)
	}
	targetID := id
	s.gazeListeners[id] = s.dispatcher.Subscribe(id, event.MouseEnter, func(event.Event) {
		s.Shoot(targetID)
	})
	return nil
}

// IsUp 靶子是否立起
func (s *TargetSystem) IsUp(id ecs.EntityID) bool {
	return entities.IsState(s.entityManager, id, components.StateUp)
}

// Shoot 击倒靶子
// 已倒下的靶子不受影响（不计分、不打断动画）
func (s *TargetSystem) Shoot(id ecs.EntityID) {
	target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
	if !ok || !s.IsUp(id) {
		return
	}

	entities.RemoveState(s.entityManager, id, components.StateUp)
	s.startAnimation(id, s.upAngle, s.downAngle)
	s.dispatcher.Dispatch(event.Event{Type: event.TargetShot, Target: event.Global, Data: id})

	// 联动靶子复活：Revive 只翻转自身，环和自引用都是安全的
	for _, other := range target.Linked {
		s.Revive(other)
	}

	if target.ScoreRelevant && s.notifier != nil {
		s.notifier.OnShotFired()
	}
}

// Revive 复活靶子
// 已立起的靶子不受影响
func (s *TargetSystem) Revive(id ecs.EntityID) {
	if !ecs.HasComponent[*components.TargetComponent](s.entityManager, id) || s.IsUp(id) {
		return
	}

	entities.AddState(s.entityManager, id, components.StateUp)
	s.startAnimation(id, s.downAngle, s.upAngle)
	s.dispatcher.Dispatch(event.Event{Type: event.TargetRevived, Target: event.Global, Data: id})
}

// startAnimation 开始（或替换）翻转动画
//
// restAngle 为没有动画时的起始角度；有进行中的动画时，
// 从其当前插值角度出发，时长扣除已播放时间（不小于 0）。
func (s *TargetSystem) startAnimation(id ecs.EntityID, restAngle, to float64) {
	from := restAngle
	duration := s.duration

	if current, ok := ecs.GetComponent[*components.RotationAnimationComponent](s.entityManager, id); ok {
		from = current.CurrentValue()
		duration -= current.Elapsed
		if duration < 0 {
			duration = 0
		}
	}

	ecs.AddComponent(s.entityManager, id, &components.RotationAnimationComponent{
		From:     from,
		To:       to,
		Duration: duration,
		Easing:   s.easing,
	})

	if transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id); ok {
		transform.RotationX = from
	}
}

// Update 推进所有进行中的翻转动画
//
// 参数：
//   - dt: 时间增量（秒）
func (s *TargetSystem) Update(dt float64) {
	ids := ecs.GetEntitiesWith1[*components.RotationAnimationComponent](s.entityManager)
	for _, id := range ids {
		anim, ok := ecs.GetComponent[*components.RotationAnimationComponent](s.entityManager, id)
		if !ok {
			continue
		}
		anim.Elapsed += dt

		transform, hasTransform := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		if !anim.IsFinished() {
			if hasTransform {
				transform.RotationX = anim.CurrentValue()
			}
			continue
		}

		// 动画结束：落到目标角度并清除动画组件
		if hasTransform {
			transform.RotationX = anim.To
		}
		ecs.RemoveComponent[*components.RotationAnimationComponent](s.entityManager, id)
		s.dispatcher.Dispatch(event.Event{Type: event.AnimationComplete, Target: id})
	}
}

// GetAnimation 返回靶子进行中的动画（无动画时返回 nil, false）
func (s *TargetSystem) GetAnimation(id ecs.EntityID) (*components.RotationAnimationComponent, bool) {
	return ecs.GetComponent[*components.RotationAnimationComponent](s.entityManager, id)
}
