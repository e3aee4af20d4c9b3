// Package selection tracks the ordered set of waters chosen for comparison.
package selection

// Option applies a configuration option to the Selection.
type Option func(*Selection)

// WithMaxSize caps the number of selected ids. Values < 1 are ignored.
func WithMaxSize(maxSize int) Option {
	return func(s *Selection) {
		if maxSize > 0 {
			s.maxSize = maxSize
		}
	}
}
