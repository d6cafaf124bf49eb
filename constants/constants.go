package constants

import "os"

// GetMatchDir is where report looks for match files when no directory is given.
func GetMatchDir() string {
	path := os.Getenv("MATCH_PATH")
	if path != "" {
		return path
	}
	return "."
}

func GetExportDir() string {
	path := os.Getenv("EXPORT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetServeAddr() string {
	addr := os.Getenv("SERVE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

const MatchFileExt = ".match"

// info attributes that describe the performance clock
const (
	MidiClockUnitsAttribute = "midiClockUnits"
	MidiClockRateAttribute  = "midiClockRate"
)

// 480 ticks per quarter at 500000 µs per quarter (120 bpm)
const (
	DefaultMidiClockUnits = 480
	DefaultMidiClockRate  = 500000
)

const (
	SustainController = 64
	SoftController    = 67
)
