// Package analysis computes least-significant-bit statistics of a carrier
// image: how random its LSB plane looks and how its channels are balanced.
package analysis

import (
	"math"

	"github.com/faanross/stegokit/internal/carrier"
	"github.com/faanross/stegokit/internal/format"
	"github.com/faanross/stegokit/internal/frame"
	"github.com/faanross/stegokit/internal/logger"
	"github.com/faanross/stegokit/internal/stego"
)

var log = logger.GetStegoLogger()

// Verdict classifies the LSB entropy of a carrier.
type Verdict string

const (
	VerdictRandom     Verdict = "high entropy - statistically indistinguishable from random"
	VerdictDifficult  Verdict = "good entropy - difficult to detect"
	VerdictDetectable Verdict = "low entropy - may be detectable"
)

// Report holds the statistics of one carrier.
type Report struct {
	Width        int        `json:"width" yaml:"width"`
	Height       int        `json:"height" yaml:"height"`
	Capacity     int        `json:"capacity_bytes" yaml:"capacity_bytes"`
	Entropy      float64    `json:"lsb_entropy" yaml:"lsb_entropy"`
	Randomness   float64    `json:"randomness_percent" yaml:"randomness_percent"`
	ZeroRatio    float64    `json:"lsb_zero_percent" yaml:"lsb_zero_percent"`
	OneRatio     float64    `json:"lsb_one_percent" yaml:"lsb_one_percent"`
	ChannelMeans [3]float64 `json:"channel_means" yaml:"channel_means"`
	Uniform      bool       `json:"uniform_colors" yaml:"uniform_colors"`
	RandomLSBs   bool       `json:"random_lsbs" yaml:"random_lsbs"`
	Verdict      Verdict    `json:"verdict" yaml:"verdict"`
}

// Analyze inspects r. sample bounds how many pixels feed the LSB
// distribution; a non-positive sample uses format.DEFAULT_SAMPLE.
func Analyze(r *carrier.Raster, sample int) *Report {
	if sample <= 0 {
		sample = format.DEFAULT_SAMPLE
	}

	report := &Report{
		Width:    r.Width,
		Height:   r.Height,
		Capacity: stego.PixelPlane{}.Capacity(r.Pix),
	}

	report.Entropy = Entropy(frame.Pack(stego.LSBs(r.Pix, len(r.Pix))))
	report.Randomness = report.Entropy / 8.0 * 100
	report.Verdict = classify(report.Entropy)

	report.ZeroRatio = zeroRatio(r.Pix, sample)
	report.OneRatio = 100 - report.ZeroRatio
	report.RandomLSBs = report.ZeroRatio > 45 && report.ZeroRatio < 55

	report.ChannelMeans, report.Uniform = channelMeans(r)

	log.WithFields(logger.Fields{
		"entropy":    report.Entropy,
		"zero_ratio": report.ZeroRatio,
		"uniform":    report.Uniform,
	}).Debug("Analyzed carrier")
	return report
}

// Entropy is the Shannon entropy of data in bits per byte, 0..8.
func Entropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	var frequency [256]int
	for _, b := range data {
		frequency[b]++
	}

	entropy := 0.0
	total := float64(len(data))
	for _, count := range frequency {
		if count == 0 {
			continue
		}
		p := float64(count) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func classify(entropy float64) Verdict {
	switch {
	case entropy > format.HIGH_ENTROPY:
		return VerdictRandom
	case entropy > format.GOOD_ENTROPY:
		return VerdictDifficult
	default:
		return VerdictDetectable
	}
}

// zeroRatio is the percentage of zero LSBs over the first sample pixels.
func zeroRatio(pix []byte, sample int) float64 {
	n := sample * format.CHANNELS
	if n > len(pix) {
		n = len(pix)
	}
	if n == 0 {
		return 0
	}

	zeros := 0
	for _, v := range pix[:n] {
		if v&1 == 0 {
			zeros++
		}
	}
	return float64(zeros) / float64(n) * 100
}

// channelMeans averages each channel over the top-left corner and reports
// whether the channels are nearly uniform, which encrypted payloads on a
// random base tend to produce.
func channelMeans(r *carrier.Raster) ([3]float64, bool) {
	var means [3]float64
	w, h := min(format.MEANS_EDGE, r.Width), min(format.MEANS_EDGE, r.Height)
	samples := w * h
	if samples == 0 {
		return means, false
	}

	var sums [3]int64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*r.Width + x) * format.CHANNELS
			for c := 0; c < format.CHANNELS; c++ {
				sums[c] += int64(r.Pix[i+c])
			}
		}
	}

	for c := range means {
		means[c] = float64(sums[c]) / float64(samples)
	}

	diff := abs(sums[0]-sums[1]) + abs(sums[1]-sums[2]) + abs(sums[2]-sums[0])
	return means, diff < int64(samples)*30
}

// abs returns absolute value
func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
