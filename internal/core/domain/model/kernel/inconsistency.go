package kernel

import "fmt"

// Inconsistency describes two stored representations of the same fact that
// disagree. Readers keep one value and drop the other; the record is kept so
// the disagreement can be reported without failing the read.
type Inconsistency struct {
	// Field names the logical field, e.g. "stage1.shipperId".
	Field string
	// Kept is the value the reader used.
	Kept string
	// Dropped is the value the reader ignored.
	Dropped string
}

func (i Inconsistency) String() string {
	return fmt.Sprintf("%s: kept %q, dropped %q", i.Field, i.Kept, i.Dropped)
}
