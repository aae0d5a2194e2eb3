package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Run is a span of consecutive keys that all carry the same value.
type Run[K any, V comparable] struct {
	First K // First key of the run.
	Last  K // Last key of the run.
	Count int
	Value V
}

// IterRuns groups consecutive equal values of a sequence into runs.
func IterRuns[K any, V comparable](seq iter.Seq2[K, V]) iter.Seq[Run[K, V]] {
	return func(yield func(Run[K, V]) bool) {
		var run Run[K, V]
		for key, value := range seq {
			if run.Count > 0 && run.Value == value {
				run.Last = key
				run.Count++
				continue
			}
			if run.Count > 0 && !yield(run) {
				return
			}
			run = Run[K, V]{First: key, Last: key, Count: 1, Value: value}
		}
		if run.Count > 0 {
			yield(run)
		}
	}
}
