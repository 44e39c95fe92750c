package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

const (
	secondsPerWeek = 7 * 24 * 60 * 60
	secondsPerYear = 365.2425 * 24 * 60 * 60
)

// SimulateConfig describes a synthetic daily concentration series made of a base level, a linear
// trend per year, weekly and yearly waves and gaussian noise.
type SimulateConfig struct {
	Base       float64
	TrendYear  float64
	WeeklyAmp  float64
	YearlyAmp  float64
	NoiseScale float64
	Seed       uint64
}

// Simulate generates n daily observations starting at start. The same config always produces
// the same series.
func Simulate(start time.Time, n int, cfg SimulateConfig) *TimeDataset {
	t := DailyRange(start, n)

	y := GenerateConstY(n, cfg.Base)
	y.Add(GenerateTrendY(t, start, cfg.TrendYear))
	y.Add(GenerateWaveY(t, cfg.WeeklyAmp, secondsPerWeek, 1, 0))
	y.Add(GenerateWaveY(t, cfg.YearlyAmp, secondsPerYear, 1, 0))
	y.Add(GenerateNoise(n, cfg.NoiseScale, cfg.Seed))

	return &TimeDataset{T: t, Y: y}
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateTrendY rises by perYear for every year elapsed since start
func GenerateTrendY(t []time.Time, start time.Time, perYear float64) Series {
	y := make([]float64, 0, len(t))
	for _, tPnt := range t {
		y = append(y, perYear*tPnt.Sub(start).Seconds()/secondsPerYear)
	}
	return Series(y)
}

func GenerateWaveY(t []time.Time, amp, periodSec, order, timeOffset float64) Series {
	n := len(t)
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		val := amp * math.Sin(2.0*math.Pi*order/periodSec*(float64(t[i].Unix())+timeOffset))
		y = append(y, val)
	}
	return Series(y)
}

// GenerateNoise draws n gaussian samples from a seeded source
func GenerateNoise(n int, noiseScale float64, seed uint64) Series {
	rng := rand.New(rand.NewPCG(seed, seed))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rng.NormFloat64()*noiseScale)
	}
	return Series(y)
}
