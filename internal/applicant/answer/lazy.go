package answer

// cached holds one scalar read. computed distinguishes "not read yet" from
// "read and found absent".
type cached[T any] struct {
	computed bool
	present  bool
	value    T
}

func (c *cached[T]) get(read func() (T, bool)) (T, bool) {
	if !c.computed {
		c.value, c.present = read()
		c.computed = true
	}
	return c.value, c.present
}
