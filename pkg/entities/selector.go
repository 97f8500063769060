package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/decker502/fastgun/pkg/components"
	"github.com/decker502/fastgun/pkg/ecs"
)

// ErrEntityNotFound 选择器没有匹配到任何实体
var ErrEntityNotFound = errors.New("entity not found")

// Selector 已解析的选择器（逗号分隔的复合选择器列表）
//
// 支持的语法：
//
//	#id            按 id 匹配
//	.class         按 class 匹配
//	.a.b           同时拥有 a、b 两个 class
//	.a:not(.b)     拥有 a 但没有 b
//	#x, .y         任一匹配即可
type Selector struct {
	source    string
	compounds []compound
}

type compound struct {
	id      string
	classes []string
	not     []compound
}

// ParseSelector 解析选择器字符串
// 空字符串返回一个不匹配任何实体的选择器
func ParseSelector(source string) (*Selector, error) {
	sel := &Selector{source: source}
	source = strings.TrimSpace(source)
	if source == "" {
		return sel, nil
	}

	for _, part := range splitTopLevel(source) {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("invalid selector %q: empty compound", sel.source)
		}
		c, rest, err := parseCompound(part)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %q: %w", sel.source, err)
		}
		if rest != "" {
			return nil, fmt.Errorf("invalid selector %q: unexpected %q", sel.source, rest)
		}
		sel.compounds = append(sel.compounds, c)
	}
	return sel, nil
}

// String 返回原始选择器字符串
func (s *Selector) String() string {
	return s.source
}

// Matches 检查实体选择器组件是否匹配
func (s *Selector) Matches(comp *components.SelectorComponent) bool {
	if comp == nil {
		return false
	}
	for _, c := range s.compounds {
		if c.matches(comp) {
			return true
		}
	}
	return false
}

func (c compound) matches(comp *components.SelectorComponent) bool {
	if c.id != "" && c.id != comp.ID {
		return false
	}
	for _, class := range c.classes {
		if !comp.HasClass(class) {
			return false
		}
	}
	for _, n := range c.not {
		if n.matches(comp) {
			return false
		}
	}
	return true
}

// splitTopLevel 按括号外的逗号切分
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// parseCompound 解析一个复合选择器，返回未消费的剩余部分
func parseCompound(s string) (compound, string, error) {
	var c compound
	empty := true
	for len(s) > 0 {
		switch {
		case s[0] == '#':
			name, rest := readIdent(s[1:])
			if name == "" {
				return c, s, fmt.Errorf("missing id after '#'")
			}
			if c.id != "" && c.id != name {
				return c, s, fmt.Errorf("conflicting ids %q and %q", c.id, name)
			}
			c.id, s = name, rest
		case s[0] == '.':
			name, rest := readIdent(s[1:])
			if name == "" {
				return c, s, fmt.Errorf("missing class after '.'")
			}
			c.classes = append(c.classes, name)
			s = rest
		case strings.HasPrefix(s, ":not("):
			inner, rest, err := parseCompound(s[len(":not("):])
			if err != nil {
				return c, s, err
			}
			if !strings.HasPrefix(rest, ")") {
				return c, s, fmt.Errorf("unclosed :not(")
			}
			c.not = append(c.not, inner)
			s = rest[1:]
		default:
			if empty {
				return c, s, fmt.Errorf("unexpected %q", s)
			}
			return c, s, nil
		}
		empty = false
	}
	if empty {
		return c, s, fmt.Errorf("empty selector")
	}
	return c, s, nil
}

func readIdent(s string) (string, string) {
	i := 0
	for i < len(s) {
		ch := s[i]
		if ch == '-' || ch == '_' ||
			(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			i++
			continue
		}
		break
	}
	return s[:i], s[i:]
}

// QuerySelectorAll 返回匹配选择器的所有实体（按创建顺序），可能为空
func QuerySelectorAll(em *ecs.EntityManager, selector string) ([]ecs.EntityID, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return sel.QueryAll(em), nil
}

// QuerySelector 返回第一个匹配的实体
// 没有匹配时返回 ErrEntityNotFound
func QuerySelector(em *ecs.EntityManager, selector string) (ecs.EntityID, error) {
	ids, err := QuerySelectorAll(em, selector)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEntityNotFound, selector)
	}
	return ids[0], nil
}

// QueryAll 在实体管理器中执行已解析的选择器
func (s *Selector) QueryAll(em *ecs.EntityManager) []ecs.EntityID {
	result := make([]ecs.EntityID, 0)
	if len(s.compounds) == 0 {
		return result
	}
	for _, id := range ecs.GetEntitiesWith1[*components.SelectorComponent](em) {
		comp, _ := ecs.GetComponent[*components.SelectorComponent](em, id)
		if s.Matches(comp) {
			result = append(result, id)
		}
	}
	return result
}
