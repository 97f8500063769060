//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
// 移动端以第一个触摸点作为准星。
//
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.fastgun -o build/android/fastgun.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/FastGun.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/fastgun/pkg/app"
	"github.com/decker502/fastgun/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{Verbose: true})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
