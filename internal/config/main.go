package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	MidiFile        = kingpin.Flag("midi", "Melody MIDI file").Default("melody.mid").Short('m').String()
	SerialDevice    = kingpin.Flag("serial", "Serial device of the peer").Default("/dev/ttyACM0").Short('s').String()
	Baud            = kingpin.Flag("baud", "Serial baud rate").Default("115200").Int()
	ScoreDB         = kingpin.Flag("scores", "High score database").Default("./highscores.db").String()
	Keys            = kingpin.Flag("keys", "Lane keys, left to right").Default("asdfg").Short('k').String()
	FramePeriod     = kingpin.Flag("frame-period", "Render frame period").Default("16ms").Short('p').Duration()
	PlayFramePeriod = kingpin.Flag("play-frame-period", "Frame period during active play").Default("1ms").Duration()
	Silent          = kingpin.Flag("silent", "Disable the software synth").Bool()
)

// Parse is called from each binary's main, not from init, so package tests
// never consume the test runner's flags.
func Parse() {
	kingpin.Version("0.3.0")
	kingpin.Parse()
}
