// Package event 提供实体级别的事件订阅与分发
//
// 监听器可以挂在某个实体上（Target != 0），也可以挂在全局频道上（Target == 0）。
// 分发时遍历监听器快照，处理函数内部取消订阅（一次性监听）是安全的。
package event

import "github.com/decker502/fastgun/pkg/ecs"

// Type 事件类型
type Type string

const (
	// MouseEnter 准星进入实体（凝视射击）
	MouseEnter Type = "mouseenter"
	// AnimationComplete 实体的动画播放完毕
	AnimationComplete Type = "animationcomplete"
	// TargetShot 靶子被击倒（在全局频道分发，Data 为靶子实体ID）
	TargetShot Type = "targetshot"
	// TargetRevived 靶子被复活（在全局频道分发，Data 为靶子实体ID）
	TargetRevived Type = "targetrevived"
)

// Global 全局频道
const Global ecs.EntityID = 0

// Event 事件
type Event struct {
	Type   Type
	Target ecs.EntityID
	Data   interface{}
}

// Handler 事件处理函数
type Handler func(Event)

// ListenerID 订阅句柄，用于取消订阅
type ListenerID uint64

type channel struct {
	target ecs.EntityID
	typ    Type
}

type listener struct {
	id      ListenerID
	handler Handler
}

// Dispatcher 事件分发器
type Dispatcher struct {
	nextID    ListenerID
	listeners map[channel][]listener
	index     map[ListenerID]channel
}

// NewDispatcher 创建事件分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		nextID:    1,
		listeners: make(map[channel][]listener),
		index:     make(map[ListenerID]channel),
	}
}

// Subscribe 订阅 target 上的 typ 事件
func (d *Dispatcher) Subscribe(target ecs.EntityID, typ Type, handler Handler) ListenerID {
	id := d.nextID
	d.nextID++
	ch := channel{target: target, typ: typ}
	d.listeners[ch] = append(d.listeners[ch], listener{id: id, handler: handler})
	d.index[id] = ch
	return id
}

// Unsubscribe 取消订阅，重复取消无副作用
func (d *Dispatcher) Unsubscribe(id ListenerID) {
	ch, ok := d.index[id]
	if !ok {
		return
	}
	delete(d.index, id)

	list := d.listeners[ch]
	for i, l := range list {
		if l.id == id {
			// 复制而非原地修改，正在进行的分发持有旧切片
			next := make([]listener, 0, len(list)-1)
			next = append(next, list[:i]...)
			next = append(next, list[i+1:]...)
			if len(next) == 0 {
				delete(d.listeners, ch)
			} else {
				d.listeners[ch] = next
			}
			return
		}
	}
}

// Dispatch 分发事件
// 分发过程中被取消的监听器不会再收到本次事件
func (d *Dispatcher) Dispatch(e Event) {
	list := d.listeners[channel{target: e.Target, typ: e.Type}]
	for _, l := range list {
		if _, alive := d.index[l.id]; !alive {
			continue
		}
		l.handler(e)
	}
}

// ListenerCount 返回 target 上 typ 事件的监听器数量
func (d *Dispatcher) ListenerCount(target ecs.EntityID, typ Type) int {
	return len(d.listeners[channel{target: target, typ: typ}])
}
