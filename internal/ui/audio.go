package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundInvalid
	SoundGameEnd
	SoundSelect
	SoundHeal
	SoundInferno
)

const (
	sampleRate = 44100
)

// AudioManager handles sound effect playback. All sounds are synthesised
// at start-up.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates a new audio manager.
func NewAudioManager() *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: true,
		volume:  0.5,
	}
	am.generateSounds()
	return am
}

// generateSounds creates procedural sounds for each event type.
func (am *AudioManager) generateSounds() {
	// Move sound: short click (wood on wood)
	am.sounds[SoundMove] = generateClick(440, 0.08, 0.3)
	am.sounds[SoundCapture] = generateClick(330, 0.12, 0.5)
	am.sounds[SoundSelect] = generateClick(660, 0.04, 0.15)
	am.sounds[SoundCheck] = generateTone(880, 0.15, 0.4)
	am.sounds[SoundCastle] = concat(generateClick(400, 0.06, 0.3), silence(0.05), generateClick(440, 0.06, 0.24))
	am.sounds[SoundInvalid] = generateBuzz(150, 0.1, 0.3)
	am.sounds[SoundGameEnd] = generateChord([]float64{261.63, 329.63, 392.00}, 0.4, 0.5)
	am.sounds[SoundHeal] = concat(generateTone(523.25, 0.08, 0.3), generateTone(659.25, 0.08, 0.3), generateTone(783.99, 0.14, 0.3))
	am.sounds[SoundInferno] = generateRumble(0.35, 0.5)
}

// pcm encodes samples in [-1, 1] as stereo 16-bit little-endian.
func pcm(n int, sample func(i int, t float64) float64) []byte {
	data := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := sample(i, float64(i)/sampleRate)
		v = math.Max(-1, math.Min(1, v))
		val := int16(v * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

func samples(duration float64) int {
	return int(sampleRate * duration)
}

// generateClick creates a short percussive click sound.
func generateClick(freq, duration, amplitude float64) []byte {
	return pcm(samples(duration), func(i int, t float64) float64 {
		// Exponential decay envelope
		envelope := math.Exp(-t * 30)
		// Add some noise for wood texture
		noise := (math.Sin(float64(i)*0.3) + math.Sin(float64(i)*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * envelope * amplitude
	})
}

// generateTone creates a simple tone with attack and decay.
func generateTone(freq, duration, amplitude float64) []byte {
	return pcm(samples(duration), func(_ int, t float64) float64 {
		progress := t / duration
		envelope := 1.0 - (progress-0.1)/0.9
		if progress < 0.1 {
			envelope = progress / 0.1
		}
		return math.Sin(2*math.Pi*freq*t) * envelope * amplitude
	})
}

// generateBuzz creates a low error buzz.
func generateBuzz(freq, duration, amplitude float64) []byte {
	return pcm(samples(duration), func(_ int, t float64) float64 {
		envelope := 1.0 - t/duration
		wave := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return wave * envelope * amplitude * 0.5
	})
}

// generateChord creates a chord that fades in then out.
func generateChord(freqs []float64, duration, amplitude float64) []byte {
	return pcm(samples(duration), func(_ int, t float64) float64 {
		progress := t / duration
		envelope := 1.0
		if progress < 0.1 {
			envelope = progress / 0.1
		} else if progress > 0.7 {
			envelope = (1.0 - progress) / 0.3
		}
		sum := 0.0
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / float64(len(freqs)) * envelope * amplitude
	})
}

// generateRumble creates a falling low rumble with a crackle on top.
func generateRumble(duration, amplitude float64) []byte {
	seed := uint32(2463534242)
	return pcm(samples(duration), func(_ int, t float64) float64 {
		// xorshift noise
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		noise := float64(seed)/float64(math.MaxUint32)*2 - 1

		progress := t / duration
		envelope := math.Exp(-progress * 4)
		freq := 120 - 60*progress
		return (0.6*math.Sin(2*math.Pi*freq*t) + 0.4*noise) * envelope * amplitude
	})
}

func silence(duration float64) []byte {
	return make([]byte, samples(duration)*4)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// Play plays a sound effect.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}

	data, ok := am.sounds[sound]
	if !ok {
		return
	}

	// Create a new player for each play (allows overlapping sounds)
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// SetVolume sets the audio volume (0.0 to 1.0).
func (am *AudioManager) SetVolume(volume float64) {
	am.volume = math.Max(0, math.Min(1, volume))
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
