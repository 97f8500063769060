package components

// SelectorComponent 实体的选择器标识（id + class 集合）
// 供 entities.QuerySelector / QuerySelectorAll 匹配 "#id"、".class" 等选择器
type SelectorComponent struct {
	ID      string              // 唯一标识，如 "start-button"
	Classes map[string]struct{} // class 集合，如 {"outlaw", "coil"}
}

// NewSelectorComponent 根据 id 和 class 列表创建选择器组件
func NewSelectorComponent(id string, classes ...string) *SelectorComponent {
	set := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return &SelectorComponent{ID: id, Classes: set}
}

// HasClass 检查是否包含指定 class
func (c *SelectorComponent) HasClass(class string) bool {
	_, ok := c.Classes[class]
	return ok
}
