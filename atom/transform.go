package atom

// Compose chains two functions left to right: the result applies f,
// then g to f's output.
func Compose[A, B, C any](f func(A) B, g func(B) C) func(A) C {
	return func(a A) C {
		return g(f(a))
	}
}

// Pipe chains any number of same-type transforms left to right. With
// no transforms the result is the identity function.
func Pipe[T any](fns ...func(T) T) func(T) T {
	return func(v T) T {
		for _, fn := range fns {
			v = fn(v)
		}
		return v
	}
}
