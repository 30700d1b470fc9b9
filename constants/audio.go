package constants

import "time"

// Audio Engine Timing
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two step clicks (one reveal tick)
	MinSoundGap = 50 * time.Millisecond
)

// Error Sound Timing
const (
	ErrorSoundDuration  = 150 * time.Millisecond
	ErrorSoundFrequency = 120.0
)

// Step Click Timing
const (
	StepSoundDuration  = 25 * time.Millisecond
	StepSoundFrequency = 880.0
)

// Arrive Chime Timing
const (
	ArriveSoundDuration    = 400 * time.Millisecond
	ArriveSoundFundamental = 660.0
	ArriveSoundOvertone    = 990.0
)
