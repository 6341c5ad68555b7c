package curve

import (
	"math"
	"math/rand"
)

// Generator pacing constants, tuned for slow fluid motion.
const (
	genMsPerUnit       = 150  // base milliseconds per position unit travelled
	genUpMultiplier    = 1.5  // upward motion runs this much faster
	genSpeedRollMs     = 60000
	genPauseChance     = 0.25
	genPauseMaxMs      = 3000
	genFullStrokeEvery = 5 // every Nth motion spans the full range
)

// Generator produces organic stroke patterns. All walk state lives in the
// struct; there is no hidden closure state, so a generator can be
// snapshotted or rewound by copying it.
type Generator struct {
	pos       float64 // current position
	target    float64 // where the current motion is headed
	lastAt    int     // timestamp of the last emitted sample
	speedMult float64
	nextRoll  int // when to re-roll speedMult
	motions   int // motions emitted so far
	rng       *rand.Rand
}

// NewGenerator creates a generator seeded for reproducible output.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		pos:       50,
		speedMult: 1.0,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Generate produces a normalized curve of motion up to the absolute time
// durationMs. A generator resumes from its own state, so repeated calls
// extend the walk instead of restarting it.
func (g *Generator) Generate(durationMs int) Curve {
	var out Curve
	out = append(out, Sample{At: g.lastAt, Pos: int(g.pos)})

	for g.lastAt < durationMs {
		if g.lastAt >= g.nextRoll {
			g.speedMult = 0.8 + g.rng.Float64()*0.5
			g.nextRoll = g.lastAt + genSpeedRollMs
		}

		g.pickTarget()

		var pts []Sample
		switch g.rng.Intn(3) {
		case 0:
			pts = g.waveMotion()
		case 1:
			pts = g.gradualMotion()
		default:
			pts = g.plateauMotion()
		}
		out = append(out, pts...)
		g.motions++

		if g.rng.Float64() < genPauseChance {
			hold := g.rng.Intn(genPauseMaxMs + 1)
			g.lastAt += hold
			out = append(out, Sample{At: g.lastAt, Pos: int(g.pos)})
		}
	}

	return Normalize(out)
}

func (g *Generator) pickTarget() {
	if g.motions%genFullStrokeEvery == genFullStrokeEvery-1 {
		// Periodic full-range stroke to the far extreme.
		if g.pos < 50 {
			g.target = 100
		} else {
			g.target = 0
		}
		return
	}
	for {
		g.target = 20 + g.rng.Float64()*60
		if math.Abs(g.target-g.pos) >= 15 {
			return
		}
	}
}

// motionDuration applies the speed model: slower base pace, upward motion
// faster than downward, global multiplier re-rolled periodically.
func (g *Generator) motionDuration() int {
	distance := math.Abs(g.target - g.pos)
	dur := distance * genMsPerUnit / g.speedMult
	if g.target > g.pos {
		dur /= genUpMultiplier
	}
	if dur < StrokeMinGap {
		dur = StrokeMinGap
	}
	return int(dur)
}

// waveMotion ramps to the target with a sinusoidal offset riding on it.
func (g *Generator) waveMotion() []Sample {
	n := 5 + g.rng.Intn(3)
	dur := g.motionDuration()
	start := g.pos

	var pts []Sample
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		offset := 0.0
		if i != 0 && i != n {
			amp := 5 + g.rng.Float64()*5
			offset = amp * math.Sin(t*2*math.Pi)
		}
		pos := start + (g.target-start)*t + offset
		pts = append(pts, Sample{
			At:  g.lastAt + int(float64(dur)*t),
			Pos: ClampPos(int(math.Round(pos))),
		})
	}
	g.advance(dur)
	return pts
}

// gradualMotion ramps to the target with a cosine ease.
func (g *Generator) gradualMotion() []Sample {
	n := 8 + g.rng.Intn(3)
	dur := g.motionDuration()
	start := g.pos

	var pts []Sample
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		eased := (math.Cos((1-t)*math.Pi) + 1) / 2
		pos := start + (g.target-start)*eased
		pts = append(pts, Sample{
			At:  g.lastAt + int(float64(dur)*t),
			Pos: ClampPos(int(math.Round(pos))),
		})
	}
	g.advance(dur)
	return pts
}

// plateauMotion reaches the target in stepped sub-segments with short
// holds between them.
func (g *Generator) plateauMotion() []Sample {
	const steps = 3
	dur := g.motionDuration()
	start := g.pos
	stepDur := dur / steps

	var pts []Sample
	at := g.lastAt
	for i := 1; i <= steps; i++ {
		pos := start + (g.target-start)*float64(i)/steps
		at += stepDur * 2 / 3
		pts = append(pts, Sample{At: at, Pos: ClampPos(int(math.Round(pos)))})
		// Hold before the next step.
		at += stepDur / 3
		pts = append(pts, Sample{At: at, Pos: ClampPos(int(math.Round(pos)))})
	}
	g.lastAt = at
	g.pos = g.target
	return pts
}

func (g *Generator) advance(dur int) {
	g.lastAt += dur
	g.pos = g.target
}
