package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}
	if !em.EntityExists(id2) {
		t.Error("Created entity should exist")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 100, Y: 200})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericComponentAccess(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 未添加时返回 false
	if _, ok := GetComponent[*testPositionComponent](em, id); ok {
		t.Error("Should not find component before adding")
	}

	AddComponent(em, id, &testPositionComponent{X: 1, Y: 2})
	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Generic GetComponent should find the component")
	}
	if pos.X != 1 || pos.Y != 2 {
		t.Errorf("Unexpected component data: %+v", pos)
	}

	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("HasComponent should report true")
	}

	RemoveComponent[*testPositionComponent](em, id)
	if HasComponent[*testPositionComponent](em, id) {
		t.Error("Component should be gone after RemoveComponent")
	}
}

func TestAddComponentReplacesSameType(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 1})
	AddComponent(em, id, &testPositionComponent{X: 2})

	pos, _ := GetComponent[*testPositionComponent](em, id)
	if pos.X != 2 {
		t.Errorf("Expected replaced component X=2, got %v", pos.X)
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.EntityExists(id) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestGetEntitiesWithIsOrdered(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	ids := make([]EntityID, 0)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
			ids = append(ids, id)
		}
	}

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != len(ids) {
		t.Fatalf("Expected %d entities, got %d", len(ids), len(both))
	}
	for i := range ids {
		if both[i] != ids[i] {
			t.Errorf("Query should follow creation order: index %d got %d, want %d", i, both[i], ids[i])
		}
	}

	if got := len(GetEntitiesWith1[*testPositionComponent](em)); got != 20 {
		t.Errorf("Expected 20 entities with position, got %d", got)
	}
}

func TestAllEntities(t *testing.T) {
	em := NewEntityManager()
	a := em.CreateEntity()
	b := em.CreateEntity()
	c := em.CreateEntity()

	em.DestroyEntity(b)
	em.RemoveMarkedEntities()

	all := em.AllEntities()
	if len(all) != 2 || all[0] != a || all[1] != c {
		t.Errorf("AllEntities = %v, want [%d %d]", all, a, c)
	}
}
