package components

// StateComponent 实体的状态标签集合
// 成员检查为 O(1)，用于靶子的 up/down 以及场景阶段标记
type StateComponent struct {
	States map[string]struct{}
}

// 状态标签常量
const (
	// StateUp 靶子立起（可被击中）
	StateUp = "up"

	// StateTitleScreen 场景处于标题画面
	StateTitleScreen = "title-screen"

	// StateGameScreen 场景处于游戏中
	StateGameScreen = "game-screen"

	// StateEndScreen 场景处于结束画面
	StateEndScreen = "end-screen"
)

// NewStateComponent 创建带初始标签的状态组件
func NewStateComponent(states ...string) *StateComponent {
	set := make(map[string]struct{}, len(states))
	for _, s := range states {
		set[s] = struct{}{}
	}
	return &StateComponent{States: set}
}
