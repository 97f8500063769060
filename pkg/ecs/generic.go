package ecs

import "reflect"

// 泛型组件访问 API
//
// 所有系统优先使用这些函数而不是反射版本：
//
//	target, ok := ecs.GetComponent[*components.TargetComponent](em, id)
//	ecs.AddComponent(em, id, &components.TextComponent{Value: "shots\n0"})
//	ids := ecs.GetEntitiesWith2[*components.TargetComponent, *components.StateComponent](em)

func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// GetComponent 获取实体的 T 类型组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	return typed, ok
}

// AddComponent 为实体添加组件（类型由参数推导）
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.AddComponent(id, component)
}

// RemoveComponent 移除实体的 T 类型组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	em.RemoveComponent(id, typeOf[T]())
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有 T1 组件的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有 T1、T2 组件的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// GetEntitiesWith3 查询同时拥有 T1、T2、T3 组件的实体
func GetEntitiesWith3[T1, T2, T3 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2](), typeOf[T3]())
}
