package game

import (
	"encoding/binary"
	"log"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 音效ID
const (
	SoundShot   = "shot"   // 击中靶子
	SoundRevive = "revive" // 靶子复活
	SoundWin    = "win"    // 所有亡命徒倒下
)

// DefaultSampleRate 音频采样率
const DefaultSampleRate = 48000

// AudioManager 音频管理器
// 音效在创建时合成为 16 位立体声 PCM，不依赖音频资源文件
type AudioManager struct {
	context *audio.Context
	sounds  map[string][]byte
	volume  float64
	muted   bool
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - context: ebiten 音频上下文，为 nil 时所有播放请求被忽略
//   - volume: 音量 0.0 ~ 1.0
func NewAudioManager(context *audio.Context, volume float64) *AudioManager {
	am := &AudioManager{
		context: context,
		sounds:  make(map[string][]byte),
		volume:  math.Max(0, math.Min(1, volume)),
	}
	if context == nil {
		return am
	}

	for _, id := range []string{SoundShot, SoundRevive, SoundWin} {
		am.sounds[id] = SynthesizeSound(id, context.SampleRate())
	}
	log.Printf("[AudioManager] Synthesized %d sounds at %d Hz", len(am.sounds), context.SampleRate())
	return am
}

// SetMuted 静音开关
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
}

// PlaySound 播放音效，返回是否实际播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am == nil || am.context == nil || am.muted {
		return false
	}

	pcm, ok := am.sounds[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: Unknown sound %s", soundID)
		return false
	}

	// 每次新建播放器，允许同一音效重叠播放
	player := am.context.NewPlayerFromBytes(pcm)
	player.SetVolume(am.volume)
	player.Play()
	return true
}

// SynthesizeSound 合成音效 PCM 数据（16 位有符号小端，立体声）
// 未知的 ID 返回 nil
func SynthesizeSound(soundID string, sampleRate int) []byte {
	switch soundID {
	case SoundShot:
		// 白噪声 + 快速指数衰减
		rng := rand.New(rand.NewSource(1))
		return synthesize(sampleRate, 0.25, func(t float64) float64 {
			return (rng.Float64()*2 - 1) * math.Exp(-t*22)
		})
	case SoundRevive:
		// 上扬的短音
		return synthesize(sampleRate, 0.18, func(t float64) float64 {
			freq := 440 + 880*t/0.18
			return 0.5 * math.Sin(2*math.Pi*freq*t) * (1 - t/0.18)
		})
	case SoundWin:
		// 大三和弦琶音
		notes := []float64{523.25, 659.25, 783.99, 1046.5}
		const step = 0.15
		return synthesize(sampleRate, step*float64(len(notes))+0.3, func(t float64) float64 {
			i := int(t / step)
			if i >= len(notes) {
				i = len(notes) - 1
			}
			local := t - float64(i)*step
			return 0.4 * math.Sin(2*math.Pi*notes[i]*t) * math.Exp(-local*4)
		})
	default:
		return nil
	}
}

// synthesize 按采样函数生成 PCM，sample 返回 [-1, 1]
func synthesize(sampleRate int, seconds float64, sample func(t float64) float64) []byte {
	frames := int(float64(sampleRate) * seconds)
	buf := make([]byte, frames*4)
	for i := 0; i < frames; i++ {
		v := math.Max(-1, math.Min(1, sample(float64(i)/float64(sampleRate))))
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], s)
		binary.LittleEndian.PutUint16(buf[i*4+2:], s)
	}
	return buf
}
