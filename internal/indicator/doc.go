// Package indicator implements the blink-sequencing engine behind the
// status LED.
//
// The pipeline is a single producer/consumer chain:
//
//	domain events -> Mapper -> Queue -> Renderer -> led.Output
//
// The Mapper translates bus events (battery, wireless profile, layer)
// into blink patterns using the Catalog and submits them with a
// non-blocking enqueue; when the queue is full the pattern is dropped.
// The Renderer is the only goroutine that touches the output device and
// the resting color. A persistent pattern replaces the resting color;
// a transient pattern blinks and then restores it.
//
// Boot runs once at startup, before live events are accepted: it polls
// the battery sensor with bounded retries, then plays the battery,
// link and layer indications in strict order, waiting for each to
// finish rendering before submitting the next.
package indicator
