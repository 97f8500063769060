package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/config"
	"github.com/decker502/fastgun/pkg/ecs"
	"github.com/decker502/fastgun/pkg/entities"
	"github.com/decker502/fastgun/pkg/event"
	"github.com/decker502/fastgun/pkg/game"
)

// SessionSystem 会话（画面）管理系统
//
// 负责游戏的三个阶段：标题画面 → 游戏中 → 结束画面，
// 以及各阶段对应实体的显示/隐藏、计时和射击数 HUD。
//
// 隐藏不等于不可交互：凝视检测只看位置，所以需要禁用交互的实体
// （标题阶段的亡命徒、开始后的练习靶、收起的开始按钮）会被移到地面以下。
type SessionSystem struct {
	entityManager *ecs.EntityManager
	dispatcher    *event.Dispatcher

	// sessionEntity 场景根实体，挂载 SessionComponent 和阶段状态标签
	sessionEntity ecs.EntityID

	titleEntity       ecs.EntityID // 可选，0 表示没有
	startButtonEntity ecs.EntityID
	endEntity         ecs.EntityID
	timerEntity       ecs.EntityID
	shotsEntity       ecs.EntityID
	practiceEntities  []ecs.EntityID

	targetsSelector      *entities.Selector
	extraTargetsSelector *entities.Selector
	texts                config.TextConfig

	stashOffset       float64
	startButtonOffset float64

	startListener      event.ListenerID
	cancelMonetization func()

	// onGameEnded 游戏结束回调（记录成绩）
	onGameEnded func(elapsed float64, shots int)
}

// NewSessionSystem 创建会话系统
//
// 场景中的实体必须已经创建。必需的引用（开始按钮、结束语、计时、射击数）
// 找不到时返回错误，不允许在缺失引用的情况下继续。
//
// 创建后：
//   - 会话处于标题阶段
//   - 所有计分靶被隐藏并移到地下
//   - 凝视开始按钮即开始游戏（只触发一次）
func NewSessionSystem(em *ecs.EntityManager, dispatcher *event.Dispatcher, cfg *config.GalleryConfig) (*SessionSystem, error) {
	s := &SessionSystem{
		entityManager:     em,
		dispatcher:        dispatcher,
		texts:             cfg.Texts,
		stashOffset:       cfg.Gameplay.StashOffset,
		startButtonOffset: cfg.Gameplay.StartButtonOffset,
	}

	var err error
	if cfg.Selectors.Title != "" {
		if s.titleEntity, err = entities.QuerySelector(em, cfg.Selectors.Title); err != nil {
			return nil, fmt.Errorf("session: title: %w", err)
		}
	}
	if s.startButtonEntity, err = entities.QuerySelector(em, cfg.Selectors.StartButton); err != nil {
		return nil, fmt.Errorf("session: start button: %w", err)
	}
	if s.endEntity, err = entities.QuerySelector(em, cfg.Selectors.End); err != nil {
		return nil, fmt.Errorf("session: end screen: %w", err)
	}
	if s.timerEntity, err = entities.QuerySelector(em, cfg.Selectors.Timer); err != nil {
		return nil, fmt.Errorf("session: timer: %w", err)
	}
	if s.shotsEntity, err = entities.QuerySelector(em, cfg.Selectors.Shots); err != nil {
		return nil, fmt.Errorf("session: shots: %w", err)
	}
	if s.practiceEntities, err = entities.QuerySelectorAll(em, cfg.Selectors.Practice); err != nil {
		return nil, fmt.Errorf("session: practice targets: %w", err)
	}
	if s.targetsSelector, err = entities.ParseSelector(cfg.Selectors.Targets); err != nil {
		return nil, fmt.Errorf("session: targets: %w", err)
	}
	if s.extraTargetsSelector, err = entities.ParseSelector(cfg.Selectors.ExtraTargets); err != nil {
		return nil, fmt.Errorf("session: extra targets: %w", err)
	}

	// 创建场景根实体
	s.sessionEntity = em.CreateEntity()
	ecs.AddComponent(em, s.sessionEntity, components.NewSelectorComponent("scene"))
	ecs.AddComponent(em, s.sessionEntity, components.NewStateComponent(components.StateTitleScreen))

	session := &components.SessionComponent{
		Phase:   components.PhaseTitle,
		Targets: s.resolveRoster(s.targetsSelector),
		Stashed: make(map[ecs.EntityID]bool),
	}
	ecs.AddComponent(em, s.sessionEntity, session)

	// 标题阶段所有计分靶（包括尚未解锁的）都藏到地下
	for _, id := range s.resolveRoster(s.extraTargetsSelector) {
		s.stash(session, id)
	}
	for _, id := range session.Targets {
		s.stash(session, id)
	}

	s.startListener = dispatcher.Subscribe(s.startButtonEntity, event.MouseEnter, func(event.Event) {
		s.Start()
	})

	log.Printf("[SessionSystem] Initialized (Entity ID: %d): %d targets, %d practice targets",
		s.sessionEntity, len(session.Targets), len(s.practiceEntities))

	return s, nil
}

// resolveRoster 查询选择器匹配的计分靶（按创建顺序）
func (s *SessionSystem) resolveRoster(sel *entities.Selector) []ecs.EntityID {
	roster := make([]ecs.EntityID, 0)
	for _, id := range sel.QueryAll(s.entityManager) {
		target, ok := ecs.GetComponent[*components.TargetComponent](s.entityManager, id)
		if !ok || !target.ScoreRelevant {
			continue
		}
		roster = append(roster, id)
	}
	return roster
}

func (s *SessionSystem) session() *components.SessionComponent {
	session, _ := ecs.GetComponent[*components.SessionComponent](s.entityManager, s.sessionEntity)
	return session
}

// stash 隐藏实体并移到地下（幂等）
func (s *SessionSystem) stash(session *components.SessionComponent, id ecs.EntityID) {
	if session.Stashed[id] {
		return
	}
	session.Stashed[id] = true
	entities.SetVisible(s.entityManager, id, false)
	entities.OffsetY(s.entityManager, id, -s.stashOffset)
}

// unstash 移回地面并显示（幂等）
func (s *SessionSystem) unstash(session *components.SessionComponent, id ecs.EntityID) {
	if !session.Stashed[id] {
		return
	}
	delete(session.Stashed, id)
	entities.OffsetY(s.entityManager, id, s.stashOffset)
	entities.SetVisible(s.entityManager, id, true)
}

// ConnectMonetization 连接赞助信号
// 已开始则立即解锁额外内容；建立中则订阅一次开始通知
func (s *SessionSystem) ConnectMonetization(source game.MonetizationSource) {
	if source == nil {
		return
	}

	switch source.State() {
	case game.MonetizationStarted:
		s.OnExtraContentUnlock()
	case game.MonetizationPending:
		s.cancelMonetization = source.OnStart(func() {
			if s.cancelMonetization != nil {
				s.cancelMonetization()
				s.cancelMonetization = nil
			}
			s.OnExtraContentUnlock()
		})
		log.Printf("[SessionSystem] Waiting for monetization to start")
	}
}

// SetOnGameEnded 设置游戏结束回调
func (s *SessionSystem) SetOnGameEnded(fn func(elapsed float64, shots int)) {
	s.onGameEnded = fn
}

// Start 开始游戏（仅在标题阶段有效）
func (s *SessionSystem) Start() {
	session := s.session()
	if session == nil || session.Phase != components.PhaseTitle {
		return
	}

	// 开始按钮只响应一次，避免游戏中途重新开始
	s.dispatcher.Unsubscribe(s.startListener)

	entities.AddState(s.entityManager, s.sessionEntity, components.StateGameScreen)
	entities.RemoveState(s.entityManager, s.sessionEntity, components.StateTitleScreen)
	session.Phase = components.PhasePlaying

	session.ElapsedSeconds = 0
	session.ShotsFired = 0
	entities.SetText(s.entityManager, s.timerEntity, FormatElapsed(0))
	entities.SetText(s.entityManager, s.shotsEntity, FormatShots(0))

	// 隐藏标题和练习靶
	if s.titleEntity != 0 {
		entities.SetVisible(s.entityManager, s.titleEntity, false)
	}
	for _, id := range s.practiceEntities {
		s.stash(session, id)
	}

	// 显示 HUD 和亡命徒
	entities.SetVisible(s.entityManager, s.timerEntity, true)
	entities.SetVisible(s.entityManager, s.shotsEntity, true)
	for _, id := range session.Targets {
		s.unstash(session, id)
	}

	log.Printf("[SessionSystem] Game started with %d outlaws", len(session.Targets))
}

// Update 每帧调用
// 仅在游戏阶段累计时间、刷新计时 HUD 并检查是否所有亡命徒都已倒下
//
// 参数：
//   - dt: 时间增量（秒）
func (s *SessionSystem) Update(dt float64) {
	session := s.session()
	if session == nil || session.Phase != components.PhasePlaying {
		return
	}

	session.ElapsedSeconds += dt
	entities.SetText(s.entityManager, s.timerEntity, FormatElapsed(session.ElapsedSeconds))

	// 名单只会被整体替换，遍历的是当前切片
	roster := session.Targets
	for _, id := range roster {
		if entities.IsState(s.entityManager, id, components.StateUp) {
			return
		}
	}

	entities.RemoveState(s.entityManager, s.sessionEntity, components.StateGameScreen)
	entities.AddState(s.entityManager, s.sessionEntity, components.StateEndScreen)
	session.Phase = components.PhaseEnded
	entities.SetVisible(s.entityManager, s.endEntity, true)

	log.Printf("[SessionSystem] All outlaws down: %s, %d shots",
		FormatClock(session.ElapsedSeconds), session.ShotsFired)

	if s.onGameEnded != nil {
		s.onGameEnded(session.ElapsedSeconds, session.ShotsFired)
	}
}

// OnShotFired 计分靶被击中
// 第一次调用时收起开始按钮（隐藏并移到地下）
func (s *SessionSystem) OnShotFired() {
	session := s.session()
	if session == nil {
		return
	}

	if !session.StartButtonRetired {
		session.StartButtonRetired = true
		entities.SetVisible(s.entityManager, s.startButtonEntity, false)
		entities.OffsetY(s.entityManager, s.startButtonEntity, -s.startButtonOffset)
	}

	session.ShotsFired++
	entities.SetText(s.entityManager, s.shotsEntity, FormatShots(session.ShotsFired))
}

// OnExtraContentUnlock 解锁额外内容（幂等）
//
// 扩充亡命徒名单并替换开始按钮和结束语文本。
// 新加入的亡命徒在标题阶段保持藏在地下，游戏已开始则立即出现。
func (s *SessionSystem) OnExtraContentUnlock() {
	session := s.session()
	if session == nil || session.ExtraContentUnlocked {
		return
	}
	session.ExtraContentUnlocked = true

	previous := make(map[ecs.EntityID]bool, len(session.Targets))
	for _, id := range session.Targets {
		previous[id] = true
	}

	roster := s.resolveRoster(s.extraTargetsSelector)
	added := make([]ecs.EntityID, 0)
	for _, id := range roster {
		if !previous[id] {
			added = append(added, id)
		}
	}
	session.Targets = roster

	for _, id := range added {
		switch session.Phase {
		case components.PhaseTitle:
			s.stash(session, id)
		case components.PhasePlaying:
			s.unstash(session, id)
		}
	}

	if s.texts.ExtraStartButton != "" {
		entities.SetText(s.entityManager, s.startButtonEntity, s.texts.ExtraStartButton)
	}
	if s.texts.ExtraEnd != "" {
		entities.SetText(s.entityManager, s.endEntity, s.texts.ExtraEnd)
	}

	log.Printf("[SessionSystem] Extra content unlocked (phase %s): %d extra outlaws", session.Phase, len(added))
}

// Phase 返回当前阶段
func (s *SessionSystem) Phase() components.GamePhase {
	if session := s.session(); session != nil {
		return session.Phase
	}
	return components.PhaseTitle
}

// ElapsedSeconds 返回游戏时间（秒）
func (s *SessionSystem) ElapsedSeconds() float64 {
	if session := s.session(); session != nil {
		return session.ElapsedSeconds
	}
	return 0
}

// ShotsFired 返回射击数
func (s *SessionSystem) ShotsFired() int {
	if session := s.session(); session != nil {
		return session.ShotsFired
	}
	return 0
}

// Targets 返回当前亡命徒名单的副本
func (s *SessionSystem) Targets() []ecs.EntityID {
	session := s.session()
	if session == nil {
		return nil
	}
	return append([]ecs.EntityID(nil), session.Targets...)
}

// IsExtraContentUnlocked 额外内容是否已解锁
func (s *SessionSystem) IsExtraContentUnlocked() bool {
	session := s.session()
	return session != nil && session.ExtraContentUnlocked
}

// SessionEntity 返回场景根实体
func (s *SessionSystem) SessionEntity() ecs.EntityID {
	return s.sessionEntity
}

// FormatClock 将秒数格式化为 "m:ss"（截断而非四舍五入）
func FormatClock(elapsed float64) string {
	if elapsed < 0 {
		elapsed = 0
	}
	minutes := int(math.Floor(elapsed / 60))
	seconds := int(math.Floor(elapsed)) - minutes*60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatElapsed 计时 HUD 文本
func FormatElapsed(elapsed float64) string {
	return "time\n" + FormatClock(elapsed)
}

// FormatShots 射击数 HUD 文本
func FormatShots(shots int) string {
	return fmt.Sprintf("shots\n%d", shots)
}
