package game

import "log"

// MonetizationState 赞助（流式付费）状态
type MonetizationState string

const (
	// MonetizationUnsupported 环境不支持赞助
	MonetizationUnsupported MonetizationState = ""
	// MonetizationPending 赞助正在建立
	MonetizationPending MonetizationState = "pending"
	// MonetizationStarted 赞助已开始
	MonetizationStarted MonetizationState = "started"
	// MonetizationStopped 赞助已停止
	MonetizationStopped MonetizationState = "stopped"
)

// MonetizationSource 赞助信号来源
//
// 使用方先轮询 State()：已开始则立即解锁；建立中则通过 OnStart 订阅一次，
// 收到通知后调用返回的 cancel 取消订阅。
type MonetizationSource interface {
	State() MonetizationState
	OnStart(fn func()) (cancel func())
}

// SimulatedMonetization 桌面版使用的模拟赞助信号
// 由命令行参数控制：不启用 / 立即开始 / 延迟若干秒后开始
type SimulatedMonetization struct {
	state     MonetizationState
	delay     float64
	elapsed   float64
	nextID    int
	listeners map[int]func()
	order     []int
}

// NewSimulatedMonetization 创建模拟赞助信号
//
// 参数：
//   - enabled: 是否模拟支持赞助
//   - delay: 开始前的延迟（秒），<= 0 表示启动时已开始
func NewSimulatedMonetization(enabled bool, delay float64) *SimulatedMonetization {
	m := &SimulatedMonetization{
		state:     MonetizationUnsupported,
		delay:     delay,
		listeners: make(map[int]func()),
	}
	if enabled {
		if delay <= 0 {
			m.state = MonetizationStarted
		} else {
			m.state = MonetizationPending
		}
	}
	return m
}

// State 返回当前状态
func (m *SimulatedMonetization) State() MonetizationState {
	return m.state
}

// OnStart 订阅"赞助开始"通知
func (m *SimulatedMonetization) OnStart(fn func()) func() {
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.order = append(m.order, id)
	return func() {
		delete(m.listeners, id)
	}
}

// ListenerCount 返回当前订阅数量
func (m *SimulatedMonetization) ListenerCount() int {
	return len(m.listeners)
}

// Update 推进延迟计时，到期后切换到已开始并通知订阅者
func (m *SimulatedMonetization) Update(dt float64) {
	if m.state != MonetizationPending {
		return
	}
	m.elapsed += dt
	if m.elapsed < m.delay {
		return
	}

	m.state = MonetizationStarted
	log.Printf("[Monetization] Stream started after %.1fs", m.elapsed)

	order := m.order
	m.order = nil
	for _, id := range order {
		// 回调中可能取消其他订阅
		if fn, ok := m.listeners[id]; ok {
			fn()
		}
	}
}
