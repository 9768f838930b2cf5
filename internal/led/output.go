package led

// Output abstracts the physical indicator across different hardware paths.
// Implementations are expected to apply the color immediately and return;
// the renderer owns all timing.
type Output interface {
	// Set drives the indicator to the given color. Off is all zeros.
	Set(color RGB) error

	// Close releases any hardware resources held by the output.
	Close() error
}
