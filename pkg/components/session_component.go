package components

import "github.com/decker502/fastgun/pkg/ecs"

// GamePhase 游戏阶段
// 只能单向推进：Title → Playing → Ended
type GamePhase int

const (
	// PhaseTitle 标题画面（练习打鸡）
	PhaseTitle GamePhase = iota
	// PhasePlaying 游戏中，计时
	PhasePlaying
	// PhaseEnded 所有亡命徒倒下
	PhaseEnded
)

// String 返回阶段名称（日志用）
func (p GamePhase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// SessionComponent 一局游戏的状态（挂在场景根实体上）
type SessionComponent struct {
	Phase GamePhase

	// ElapsedSeconds 游戏时间，仅在 Playing 阶段累加
	ElapsedSeconds float64

	// ShotsFired 击中亡命徒的次数
	ShotsFired int

	// Targets 参与胜利判定的靶子（按创建顺序）
	Targets []ecs.EntityID

	// ExtraContentUnlocked 额外内容（赞助者专属）是否已解锁，只会置位一次
	ExtraContentUnlocked bool

	// StartButtonRetired 开始按钮是否已在第一次射击后收起
	StartButtonRetired bool

	// Stashed 当前被藏到地下的实体
	Stashed map[ecs.EntityID]bool
}
