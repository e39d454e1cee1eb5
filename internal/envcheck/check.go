// Package envcheck asserts that an environment variable carries an expected value.
package envcheck

const (
	DefaultKey      = "DJANGO_ENV"
	DefaultExpected = "TESTING"
)

// DefaultCheck expects DJANGO_ENV to be exactly TESTING.
var DefaultCheck = Check{Key: DefaultKey, Expected: DefaultExpected}

// Check compares one variable of a snapshot with a constant.
type Check struct {
	Key      string `json:"key"`
	Expected string `json:"expected"`
}

// Result is the outcome of a single Run.
type Result struct {
	Key      string `json:"key"`
	Expected string `json:"expected"`
	Observed string `json:"observed"`
	Present  bool   `json:"present"`
	Passed   bool   `json:"passed"`
}

func (c Check) Validate() error {
	if c.Key == "" {
		return ErrEmptyKey
	}
	return nil
}

// Run reads c.Key from snap and compares it with c.Expected.
// The snapshot is never written to.
func (c Check) Run(snap Snapshot) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	observed, present := snap.Lookup(c.Key)
	res := Result{
		Key:      c.Key,
		Expected: c.Expected,
		Observed: observed,
		Present:  present,
	}
	if err := Compare(observed, present, c.Expected); err != nil {
		return res, newAssertionError(c.Key, c.Expected, observed, present)
	}
	res.Passed = true
	return res, nil
}

// Compare is exact, case-sensitive equality. An absent value never matches,
// not even an empty expected string.
func Compare(observed string, present bool, expected string) error {
	if !present || observed != expected {
		return newAssertionError("", expected, observed, present)
	}
	return nil
}
