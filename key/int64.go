package key

import "strconv"

// Int64 is a concrete Key over the natural order of signed 64-bit integers.
type Int64 int64

var _ Key = Int64(0)

func (k Int64) Compare(other Key) int {
	o := other.(Int64)
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	default:
		return 0
	}
}

func (k Int64) Clone() Key { return k }

func (k Int64) String() string { return strconv.FormatInt(int64(k), 10) }
