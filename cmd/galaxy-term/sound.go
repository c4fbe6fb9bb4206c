package main

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	toneDuration = 60 * time.Millisecond
	baseTone     = 440.0
)

// fusionSound plays a short sine tone per step with fusions. A nil
// *fusionSound is silent.
type fusionSound struct{}

func newFusionSound() (*fusionSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &fusionSound{}, nil
}

// fusionFrequency raises the base tone by a semitone for every extra
// fusion in the step, up to an octave.
func fusionFrequency(fusions int) float64 {
	semitones := max(0, min(fusions, 13)-1)
	return baseTone * math.Pow(2, float64(semitones)/12)
}

// fusionTone is a toneDuration long sine at freq.
func fusionTone(freq float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, fmt.Errorf("fusion tone %gHz: %w", freq, err)
	}
	return beep.Take(sampleRate.N(toneDuration), sine), nil
}

func (s *fusionSound) play(fusions int) {
	if s == nil {
		return
	}
	tone, err := fusionTone(fusionFrequency(fusions))
	if err != nil {
		log.Printf("Fusion sound failed: %v", err)
		return
	}
	speaker.Play(tone)
}

func (s *fusionSound) close() {
	if s == nil {
		return
	}
	speaker.Close()
}
