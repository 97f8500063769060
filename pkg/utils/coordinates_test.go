package utils

import (
	"math"
	"testing"
)

// TestCameraWorldToScreen 测试世界坐标到屏幕坐标的转换
func TestCameraWorldToScreen(t *testing.T) {
	cam := Camera{PixelsPerUnit: 60, HorizonY: 430, CenterX: 480}

	tests := []struct {
		name        string
		worldX      float64
		worldY      float64
		wantScreenX float64
		wantScreenY float64
	}{
		{"原点在地平线中心", 0, 0, 480, 430},
		{"右上方", 2, 1, 600, 370},
		{"地下", -1, -101, 420, 430 + 101*60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy := cam.WorldToScreen(tt.worldX, tt.worldY)
			if sx != tt.wantScreenX || sy != tt.wantScreenY {
				t.Errorf("WorldToScreen(%v, %v) = (%v, %v), want (%v, %v)",
					tt.worldX, tt.worldY, sx, sy, tt.wantScreenX, tt.wantScreenY)
			}
		})
	}
}

// TestCameraRoundTrip 测试往返转换
func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{PixelsPerUnit: 48, HorizonY: 400, CenterX: 320}

	for _, p := range [][2]float64{{0, 0}, {1.5, 2.25}, {-6, 7}} {
		sx, sy := cam.WorldToScreen(p[0], p[1])
		wx, wy := cam.ScreenToWorld(sx, sy)
		if math.Abs(wx-p[0]) > 1e-9 || math.Abs(wy-p[1]) > 1e-9 {
			t.Errorf("Round trip of %v gave (%v, %v)", p, wx, wy)
		}
	}

	if x, y := (Camera{}).ScreenToWorld(10, 10); x != 0 || y != 0 {
		t.Error("Zero camera should map to origin")
	}
}
