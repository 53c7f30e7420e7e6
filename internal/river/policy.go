package river

// slack is how many cadences a cycle may be short or long before it is
// treated as empty or oversized.
const slack = 5

// FillPolicy says how a cycle's samples were placed into its grid column.
type FillPolicy int

const (
	// PolicyEmpty leaves the column at zero: the cycle is missing more
	// than slack samples.
	PolicyEmpty FillPolicy = iota
	// PolicyPadded copies all samples and zero-fills the remaining rows.
	PolicyPadded
	// PolicyTruncated copies the first samples-per-cycle samples and drops
	// the rest. An exact count lands here too.
	PolicyTruncated
)

func (p FillPolicy) String() string {
	switch p {
	case PolicyEmpty:
		return "empty"
	case PolicyPadded:
		return "padded"
	case PolicyTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// Classify picks the fill policy for a cycle of n samples when s samples
// make up a full cycle. A count of s+slack or more is an oversized cycle.
func Classify(n, s int) (FillPolicy, error) {
	switch {
	case n < s-slack:
		return PolicyEmpty, nil
	case n < s:
		return PolicyPadded, nil
	case n < s+slack:
		return PolicyTruncated, nil
	default:
		return 0, ErrOversizedCycle
	}
}
