// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/fastgun/pkg/config"
	"github.com/decker502/fastgun/pkg/embedded"
	"github.com/decker502/fastgun/pkg/game"
	"github.com/decker502/fastgun/pkg/scenes"
	"github.com/decker502/fastgun/pkg/utils"
)

// DefaultConfigPath 嵌入的场景配置路径
const DefaultConfigPath = "data/gallery.yaml"

// AppName gdata 存储目录名
const AppName = "fastgun"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 外部场景配置文件，为空则使用嵌入的 data/gallery.yaml
	ConfigPath string
	// Coil 模拟支持赞助
	Coil bool
	// CoilDelay 赞助开始前的延迟（秒），0 表示启动时已开始
	CoilDelay float64
	// Mute 关闭音效
	Mute bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	gallery      *config.GalleryConfig
	verbose      bool
	deltaTime    float64

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 使用嵌入配置时，调用此函数前必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gallery, err := LoadGallery(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 成绩存储失败时降级为内存记录
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open gdata storage: %v (records will not be saved)", err)
		gdataManager = nil
	}
	records := game.NewRecordManager(gdataManager)

	// 赞助信号跨局保留：已开始的赞助在下一局立即解锁
	monetization := game.NewSimulatedMonetization(cfg.Coil, cfg.CoilDelay)

	audioManager := game.NewAudioManager(audio.NewContext(game.DefaultSampleRate), 0.8)
	audioManager.SetMuted(cfg.Mute)

	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func() (game.Scene, error) {
		scene, err := scenes.NewGalleryScene(gallery, monetization, records)
		if err != nil {
			return nil, err
		}
		scene.SetAudio(audioManager)
		return scene, nil
	})
	if err := sceneManager.Reload(); err != nil {
		return nil, err
	}

	// 桌面端用十字光标充当准星
	if !utils.IsMobile() {
		ebiten.SetCursorShape(ebiten.CursorShapeCrosshair)
	}

	log.Printf("[App] Started (coil=%v, delay=%.1fs)", cfg.Coil, cfg.CoilDelay)

	return &App{
		sceneManager: sceneManager,
		gallery:      gallery,
		verbose:      cfg.Verbose,
		deltaTime:    1.0 / float64(gallery.Window.TPS),
	}, nil
}

// LoadGallery 加载场景配置
// path 为空时读取嵌入的默认配置
func LoadGallery(path string) (*config.GalleryConfig, error) {
	if path != "" {
		gallery, err := config.LoadGalleryConfig(path)
		if err != nil {
			return nil, fmt.Errorf("场景配置加载失败: %w", err)
		}
		log.Printf("[Config] 加载场景配置: %s", path)
		return gallery, nil
	}

	data, err := embedded.ReadFile(DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	gallery, err := config.ParseGalleryConfig(data, DefaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("场景配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载嵌入场景配置: %s (%d entities)", DefaultConfigPath, len(gallery.Entities))
	return gallery, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.gallery.Window.Width, a.gallery.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// 结束画面：按 R 或点击再来一局
	if a.sceneManager.CanReload() &&
		(inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)) {
		if err := a.sceneManager.Reload(); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}

	a.sceneManager.Update(a.deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.gallery.Window.Width, a.gallery.Window.Height
}

// Window 返回窗口配置
func (a *App) Window() config.WindowConfig {
	return a.gallery.Window
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
