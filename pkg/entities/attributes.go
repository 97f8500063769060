package entities

import (
	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/ecs"
)

// 实体属性读写辅助函数
//
// 系统通过这些函数修改状态标签、可见性、文字和位置，
// 缺少对应组件时会按需补齐，读取则返回零值。

// AddState 为实体添加状态标签，返回是否发生了变化
func AddState(em *ecs.EntityManager, id ecs.EntityID, state string) bool {
	comp, ok := ecs.GetComponent[*components.StateComponent](em, id)
	if !ok {
		comp = components.NewStateComponent()
		ecs.AddComponent(em, id, comp)
	}
	if _, exists := comp.States[state]; exists {
		return false
	}
	comp.States[state] = struct{}{}
	return true
}

// RemoveState 移除实体的状态标签，返回是否发生了变化
func RemoveState(em *ecs.EntityManager, id ecs.EntityID, state string) bool {
	comp, ok := ecs.GetComponent[*components.StateComponent](em, id)
	if !ok {
		return false
	}
	if _, exists := comp.States[state]; !exists {
		return false
	}
	delete(comp.States, state)
	return true
}

// IsState 检查实体是否带有状态标签
func IsState(em *ecs.EntityManager, id ecs.EntityID, state string) bool {
	comp, ok := ecs.GetComponent[*components.StateComponent](em, id)
	if !ok {
		return false
	}
	_, exists := comp.States[state]
	return exists
}

// SetVisible 设置实体可见性
func SetVisible(em *ecs.EntityManager, id ecs.EntityID, visible bool) {
	comp, ok := ecs.GetComponent[*components.VisibilityComponent](em, id)
	if !ok {
		ecs.AddComponent(em, id, &components.VisibilityComponent{Visible: visible})
		return
	}
	comp.Visible = visible
}

// IsVisible 返回实体是否可见（没有可见性组件视为不可见）
func IsVisible(em *ecs.EntityManager, id ecs.EntityID) bool {
	comp, ok := ecs.GetComponent[*components.VisibilityComponent](em, id)
	return ok && comp.Visible
}

// SetText 设置文字实体的内容
func SetText(em *ecs.EntityManager, id ecs.EntityID, value string) {
	comp, ok := ecs.GetComponent[*components.TextComponent](em, id)
	if !ok {
		ecs.AddComponent(em, id, &components.TextComponent{Value: value})
		return
	}
	comp.Value = value
}

// GetText 读取文字实体的内容
func GetText(em *ecs.EntityManager, id ecs.EntityID) string {
	comp, ok := ecs.GetComponent[*components.TextComponent](em, id)
	if !ok {
		return ""
	}
	return comp.Value
}

// OffsetY 沿 Y 轴移动实体
func OffsetY(em *ecs.EntityManager, id ecs.EntityID, dy float64) {
	comp, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		comp = &components.TransformComponent{}
		ecs.AddComponent(em, id, comp)
	}
	comp.Y += dy
}

// GetY 读取实体 Y 坐标
func GetY(em *ecs.EntityManager, id ecs.EntityID) float64 {
	comp, ok := ecs.GetComponent[*components.TransformComponent](em, id)
	if !ok {
		return 0
	}
	return comp.Y
}
