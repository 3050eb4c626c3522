// Package synth generates an endless procedural backing track. It is the
// audio source when no file is given, and cycles through quiet and loud
// sections.
package synth

import (
	"encoding/binary"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	frameBytes   = 4 // s16le stereo

	tempo         = 2.0 // beats per second (120 BPM)
	beatsPerChord = 4
	barsPerPart   = 4
)

// Section is one part of the arrangement, from sparse to dense.
type Section int

const (
	SectionAmbient Section = iota // pad only
	SectionGroove                 // pad + bass
	SectionFull                   // pad + bass + drums
	sectionCount
)

func (s Section) String() string {
	switch s {
	case SectionGroove:
		return "groove"
	case SectionFull:
		return "full"
	default:
		return "ambient"
	}
}

var chords = [][]float64{
	{220.0, 261.6, 329.6, 392.0}, // Am7
	{174.6, 220.0, 261.6, 349.2}, // Fmaj7
	{261.6, 329.6, 392.0, 493.9}, // Cmaj7
	{196.0, 246.9, 293.7, 392.0}, // G
}

var (
	kickPattern  = [8]bool{true, false, false, false, true, false, true, false}
	snarePattern = [8]bool{false, false, true, false, false, false, true, false}
	bassPattern  = [8]bool{true, false, true, true, false, true, true, false}
)

// Reader is an io.Reader of signed 16-bit little-endian stereo PCM. It never
// returns io.EOF.
type Reader struct {
	t      float64
	seed   uint64
	volume float64
}

func NewReader(seed uint64) *Reader {
	if seed == 0 {
		seed = 1
	}
	return &Reader{seed: seed, volume: 0.8}
}

// SectionAt reports which part of the arrangement plays at time t seconds.
func SectionAt(t float64) Section {
	barLen := beatsPerChord / tempo
	part := int(t / (barLen * barsPerPart))
	return Section(part % int(sectionCount))
}

func (r *Reader) Read(p []byte) (int, error) {
	frames := len(p) / frameBytes
	for i := 0; i < frames; i++ {
		s := softSat(r.sample()*r.volume) * 0.9
		v := uint16(int16(s * 32767))
		binary.LittleEndian.PutUint16(p[i*frameBytes:], v)
		binary.LittleEndian.PutUint16(p[i*frameBytes+2:], v)
		r.t += 1.0 / SampleRate
	}
	return frames * frameBytes, nil
}

func (r *Reader) sample() float64 {
	const step8Len = 1.0 / (tempo * 2.0)
	beatLen := 1.0 / tempo
	barLen := beatLen * beatsPerChord

	t := r.t
	chord := chords[int(t/barLen)%len(chords)]
	section := SectionAt(t)

	step := int(t/step8Len) % 8
	trig := math.Mod(t, step8Len)
	barPos := math.Mod(t, barLen) / barLen

	padEnv := adsr(barPos, 0.15, 0.2, 0.7, 0.2)
	out := fmPad(t, chord, padEnv) * 0.35
	if section == SectionAmbient {
		return out * 0.4
	}

	if bassPattern[step] {
		env := math.Exp(-trig * 6)
		out += fmBass(t, chord[0]/2, env) * 0.9
	}
	if section == SectionGroove {
		return out
	}

	if kickPattern[step] {
		out += kick(trig) * 1.1
	}
	if snarePattern[step] {
		out += snare(trig, &r.seed) * 0.7
	}
	out += hihat(math.Mod(t, step8Len/2), step%2 == 1, &r.seed)
	return out
}

// softSat applies gentle tanh-like saturation, no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func kick(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	return softSat(body + click)
}

func snare(trig float64, seed *uint64) float64 {
	if trig > 0.2 {
		return 0
	}
	env := math.Exp(-trig * 26.0)
	body := math.Sin(2*math.Pi*188*trig) * 0.24 * env
	noise := (lcg(seed) - lcg(seed)*0.55) * env * 0.6
	return softSat(body + noise)
}

func hihat(trig float64, open bool, seed *uint64) float64 {
	decay, limit := 42.0, 0.06
	if open {
		decay, limit = 15.0, 0.18
	}
	if trig > limit {
		return 0
	}
	metal := math.Sin(2*math.Pi*7300*trig) + math.Sin(2*math.Pi*9200*trig)*0.6
	return softSat((lcg(seed)*0.8 + metal*0.2) * math.Exp(-trig*decay) * 0.07)
}

// fmBass is a warm FM bass; the low modRatio keeps the tone smooth.
func fmBass(t, freq, env float64) float64 {
	b := fm(t, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*t) * env * 0.26
	b += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.10
	return softSat(b)
}

// fmPad layers detuned FM oscillators per chord note.
func fmPad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	detunes := [3]float64{-0.003, 0.0, 0.004}
	for _, freq := range chord {
		for _, d := range detunes {
			s += fm(t, freq*(1+d), 1.45, 0.75*env) * 0.06
		}
	}
	return softSat(s)
}
