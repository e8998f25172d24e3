// Package sound holds the synthesizer collaborator interface, a software
// implementation of it, and the background scheduler that plays a chart's
// melody independently of the render loop.
package sound

// Engine is the synthesizer boundary. Implementations must tolerate calls
// from the scheduler goroutine and the main loop concurrently.
type Engine interface {
	NoteOn(pitch uint8, velocity float64)
	NoteOff(pitch uint8)
	StopAll()
}
