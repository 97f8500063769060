package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// GalleryConfig 射击场场景配置
// 描述窗口、摄像机、玩法常量、会话引用的选择器、备用文本以及场景中的所有实体
type GalleryConfig struct {
	Window    WindowConfig   `yaml:"window"`
	Camera    CameraConfig   `yaml:"camera"`
	Gameplay  GameplayConfig `yaml:"gameplay"`
	Selectors SelectorConfig `yaml:"selectors"`
	Texts     TextConfig     `yaml:"texts"`
	Colors    BackdropColors `yaml:"colors"`
	Entities  []EntityConfig `yaml:"entities"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`  // 逻辑宽度（像素）
	Height int    `yaml:"height"` // 逻辑高度（像素）
	Title  string `yaml:"title"`  // 窗口标题
	TPS    int    `yaml:"tps"`    // 每秒 tick 数，默认 60
}

// CameraConfig 世界坐标 → 屏幕坐标的正交映射参数
type CameraConfig struct {
	PixelsPerUnit float64 `yaml:"pixelsPerUnit"` // 1 个世界单位对应的像素
	HorizonY      float64 `yaml:"horizonY"`      // 地面（Y=0）在屏幕上的像素行
	CenterX       float64 `yaml:"centerX"`       // 世界 X=0 在屏幕上的像素列，默认窗口中心
}

// GameplayConfig 玩法常量
type GameplayConfig struct {
	AnimationDuration float64 `yaml:"animationDuration"` // 翻转动画总时长（秒），默认 0.8
	UpAngle           float64 `yaml:"upAngle"`           // 立起角度，默认 0
	DownAngle         float64 `yaml:"downAngle"`         // 倒下角度，默认 -90
	Easing            string  `yaml:"easing"`            // 缓动函数名，默认 easeOutElastic
	Elasticity        float64 `yaml:"elasticity"`        // 弹性系数（仅 easeOutElastic），默认 800
	StashOffset       float64 `yaml:"stashOffset"`       // 隐藏亡命徒时下移的距离，默认 101
	StartButtonOffset float64 `yaml:"startButtonOffset"` // 收起开始按钮时下移的距离，默认 100
}

// SelectorConfig 会话需要引用的实体
type SelectorConfig struct {
	Title        string `yaml:"title"`        // 标题（开始后隐藏）
	StartButton  string `yaml:"startButton"`  // 开始按钮（凝视开始）
	End          string `yaml:"end"`          // 结束语
	Timer        string `yaml:"timer"`        // 计时 HUD
	Shots        string `yaml:"shots"`        // 射击数 HUD
	Best         string `yaml:"best"`         // 最佳成绩（可选）
	Practice     string `yaml:"practice"`     // 练习靶（开始后隐藏）
	Targets      string `yaml:"targets"`      // 参与胜利判定的靶子
	ExtraTargets string `yaml:"extraTargets"` // 解锁额外内容后参与判定的靶子
}

// TextConfig 解锁额外内容后替换的文本
type TextConfig struct {
	ExtraStartButton string `yaml:"extraStartButton"`
	ExtraEnd         string `yaml:"extraEnd"`
}

// BackdropColors 背景颜色
type BackdropColors struct {
	Sky    string `yaml:"sky"`
	Ground string `yaml:"ground"`
}

// EntityConfig 场景实体
type EntityConfig struct {
	ID       string          `yaml:"id"`
	Classes  []string        `yaml:"class"`
	Type     string          `yaml:"type"` // "text" 或 "target"
	Position PositionConfig  `yaml:"position"`
	Visible  *bool           `yaml:"visible"` // 默认 true
	Text     string          `yaml:"text"`
	Color    string          `yaml:"color"` // "#rrggbb" 或 "#rrggbbaa"
	Scale    float64         `yaml:"scale"`
	Width    float64         `yaml:"width"`
	Height   float64         `yaml:"height"`
	Gazeable *GazeableConfig `yaml:"gazeable"`
	Target   *TargetConfig   `yaml:"target"`
}

// PositionConfig 世界坐标
type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// GazeableConfig 凝视命中区域
type GazeableConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetY float64 `yaml:"offsetY"`
}

// TargetConfig 靶子属性
type TargetConfig struct {
	ScoreRelevant bool   `yaml:"scoreRelevant"` // 计入胜利判定和射击数
	Revive        string `yaml:"revive"`        // 被击中时复活的靶子（选择器）
	Texture       string `yaml:"texture"`       // 贴图名称
}

// 实体类型
const (
	EntityTypeText   = "text"
	EntityTypeTarget = "target"
)

// 默认值
const (
	DefaultWindowWidth       = 960
	DefaultWindowHeight      = 540
	DefaultTPS               = 60
	DefaultPixelsPerUnit     = 60.0
	DefaultAnimationDuration = 0.8
	DefaultDownAngle         = -90.0
	DefaultEasing            = "easeOutElastic"
	DefaultElasticity        = 800.0
	DefaultStashOffset       = 101.0
	DefaultStartButtonOffset = 100.0
)

// LoadGalleryConfig 从YAML文件加载场景配置
func LoadGalleryConfig(path string) (*GalleryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gallery config file %s: %w", path, err)
	}
	return ParseGalleryConfig(data, path)
}

// ParseGalleryConfig 解析YAML数据
// source 仅用于错误信息
func ParseGalleryConfig(data []byte, source string) (*GalleryConfig, error) {
	var cfg GalleryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse gallery config YAML from %s: %w", source, err)
	}

	applyGalleryDefaults(&cfg)

	if err := validateGalleryConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid gallery config in %s: %w", source, err)
	}
	return &cfg, nil
}

// applyGalleryDefaults 为缺失的可选字段设置默认值
func applyGalleryDefaults(cfg *GalleryConfig) {
	if cfg.Window.Width == 0 {
		cfg.Window.Width = DefaultWindowWidth
	}
	if cfg.Window.Height == 0 {
		cfg.Window.Height = DefaultWindowHeight
	}
	if cfg.Window.TPS == 0 {
		cfg.Window.TPS = DefaultTPS
	}

	if cfg.Camera.PixelsPerUnit == 0 {
		cfg.Camera.PixelsPerUnit = DefaultPixelsPerUnit
	}
	if cfg.Camera.HorizonY == 0 {
		cfg.Camera.HorizonY = float64(cfg.Window.Height) * 0.8
	}
	if cfg.Camera.CenterX == 0 {
		cfg.Camera.CenterX = float64(cfg.Window.Width) / 2
	}

	g := &cfg.Gameplay
	if g.AnimationDuration == 0 {
		g.AnimationDuration = DefaultAnimationDuration
	}
	if g.DownAngle == 0 {
		g.DownAngle = DefaultDownAngle
	}
	if g.Easing == "" {
		g.Easing = DefaultEasing
	}
	if g.Elasticity == 0 {
		g.Elasticity = DefaultElasticity
	}
	if g.StashOffset == 0 {
		g.StashOffset = DefaultStashOffset
	}
	if g.StartButtonOffset == 0 {
		g.StartButtonOffset = DefaultStartButtonOffset
	}

	// 没有配置额外靶子时，解锁不扩充名单
	if cfg.Selectors.ExtraTargets == "" {
		cfg.Selectors.ExtraTargets = cfg.Selectors.Targets
	}

	if cfg.Colors.Sky == "" {
		cfg.Colors.Sky = "#f2c48d"
	}
	if cfg.Colors.Ground == "" {
		cfg.Colors.Ground = "#c2884f"
	}
}

// validateGalleryConfig 校验必填字段
// 选择器语法在场景构建时校验（见 entities.ParseSelector）
func validateGalleryConfig(cfg *GalleryConfig) error {
	if cfg.Window.Width < 0 || cfg.Window.Height < 0 {
		return fmt.Errorf("window size must be positive")
	}
	if cfg.Gameplay.AnimationDuration < 0 {
		return fmt.Errorf("gameplay.animationDuration cannot be negative")
	}

	required := map[string]string{
		"selectors.startButton": cfg.Selectors.StartButton,
		"selectors.end":         cfg.Selectors.End,
		"selectors.timer":       cfg.Selectors.Timer,
		"selectors.shots":       cfg.Selectors.Shots,
		"selectors.targets":     cfg.Selectors.Targets,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	for _, c := range []string{cfg.Colors.Sky, cfg.Colors.Ground} {
		if _, err := ParseHexColor(c); err != nil {
			return fmt.Errorf("colors: %w", err)
		}
	}

	ids := make(map[string]bool)
	for i, e := range cfg.Entities {
		if e.ID != "" {
			if ids[e.ID] {
				return fmt.Errorf("entity %d: duplicate id %q", i, e.ID)
			}
			ids[e.ID] = true
		}

		switch e.Type {
		case EntityTypeText:
		case EntityTypeTarget:
			if e.Width <= 0 || e.Height <= 0 {
				return fmt.Errorf("entity %d (%s): target width and height must be positive", i, e.ID)
			}
		default:
			return fmt.Errorf("entity %d (%s): unknown type %q", i, e.ID, e.Type)
		}

		if e.Color != "" {
			if _, err := ParseHexColor(e.Color); err != nil {
				return fmt.Errorf("entity %d (%s): %w", i, e.ID, err)
			}
		}
		if e.Gazeable != nil && (e.Gazeable.Width <= 0 || e.Gazeable.Height <= 0) {
			return fmt.Errorf("entity %d (%s): gazeable width and height must be positive", i, e.ID)
		}
	}
	return nil
}

// IsVisible 返回实体初始可见性（默认可见）
func (e EntityConfig) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// ParseHexColor 解析 "#rrggbb" / "#rrggbbaa" 颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
