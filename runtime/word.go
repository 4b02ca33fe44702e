package runtime

import "math"

// Word is the raw storage cell for every value: one machine word wide
// and never containing a pointer the collector has to trace. Scalars
// live inline as their bit patterns; arrays, strings and functions
// store an index into storage owned by the value builder.
type Word uint64

func WordFromInt(v int64) Word {
	return Word(uint64(v))
}

func WordFromBool(v bool) Word {
	if v {
		return 1
	}
	return 0
}

func WordFromFloat(v float64) Word {
	return Word(math.Float64bits(v))
}

// Int reinterprets the word as a signed integer. Unchecked.
func (w Word) Int() int64 {
	return int64(w)
}

// Bool reinterprets the word as a boolean. Unchecked.
func (w Word) Bool() bool {
	return w != 0
}

// Float reinterprets the word as a float. Unchecked.
func (w Word) Float() float64 {
	return math.Float64frombits(uint64(w))
}
