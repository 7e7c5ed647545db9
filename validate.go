package streambench

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// maxBadElements caps how many offending elements a verbose check
// records per array.
const maxBadElements = 10

// BadElement pinpoints one array element out of tolerance.
type BadElement struct {
	Index  int     `json:"index"`
	Value  float64 `json:"value"`
	RelErr float64 `json:"rel_err"`
}

// BufferCheck is the validation outcome for one array, or for the
// indirect dot product value when Total is 1.
type BufferCheck struct {
	Name      string  `json:"name"`
	Expected  float64 `json:"expected"`
	Observed  float64 `json:"observed,omitempty"`
	AvgAbsErr float64 `json:"avg_abs_err"`
	RelErr    float64 `json:"rel_err"`
	Errors    int     `json:"errors"`
	Total     int     `json:"total"`
	OK        bool    `json:"ok"`

	// Bad lists the first few offending elements. Filled on verbose
	// runs only.
	Bad []BadElement `json:"bad,omitempty"`
}

// ValidationReport aggregates the per-array checks of one run.
type ValidationReport struct {
	Epsilon float64       `json:"epsilon"`
	Checks  []BufferCheck `json:"checks"`

	err *multierror.Error
}

// Validate replays the expected value trajectory from the run
// configuration and compares every array against it. With verbose
// set, the first offending elements are recorded per array.
//
// Validation never aborts: every check runs and every failure lands
// in the report.
func (bn *Bench) Validate(verbose bool) *ValidationReport {
	rep := &ValidationReport{Epsilon: bn.cfg.Precision.Epsilon()}

	if bn.cfg.Precision == Float32 {
		bn.validate32(rep, verbose)
	} else {
		bn.validate64(rep, verbose)
	}

	for _, c := range rep.Checks {
		if c.OK {
			continue
		}
		if c.Total == 1 {
			rep.err = multierror.Append(rep.err, NewValidationError("Validate",
				fmt.Sprintf("value %s: relative error %.6e exceeds tolerance %.6e", c.Name, c.RelErr, rep.Epsilon), c))
			continue
		}
		rep.err = multierror.Append(rep.err, NewValidationError("Validate",
			fmt.Sprintf("array %s: average relative error %.6e exceeds tolerance %.6e", c.Name, c.RelErr, rep.Epsilon), c))
	}

	return rep
}

func (bn *Bench) validate64(rep *ValidationReport, verbose bool) {
	cfg := bn.cfg
	n, m := cfg.ArraySize, cfg.IndexArraySize
	eps := rep.Epsilon
	exp := Reference{}.Final64(cfg.Trials, cfg.Gather, cfg.Scatter)

	rep.add(checkArray64("a", bn.A.Float64()[:n], exp.A, n, eps, verbose))
	rep.add(checkArray64("b", bn.B.Float64()[:n], exp.B, n, eps, verbose))
	rep.add(checkArray64("c", bn.C.Float64()[:n], exp.C, n, eps, verbose))

	if cfg.Gather {
		rep.add(checkArray64("d", bn.D.Float64()[:m], exp.D, m, eps, verbose))
	}
	if cfg.Scatter {
		// Scatter reaches exactly the first m elements of E through
		// the index values, so only that prefix is checked. The
		// divisor stays the dense array size to keep the error on
		// the classic report scale.
		rep.add(checkArray64("e", bn.E.Float64()[:m], exp.E, n, eps, verbose))
	}
	if cfg.IndirectDot {
		xj := Reference{}.Dot64(bn.D.Float64()[:m], bn.B.Float64()[:n], bn.Idx.Int32()[:m])
		rep.add(checkValue64("x", bn.X, xj, eps))
	}
}

func (bn *Bench) validate32(rep *ValidationReport, verbose bool) {
	cfg := bn.cfg
	n, m := cfg.ArraySize, cfg.IndexArraySize
	eps := rep.Epsilon
	exp := Reference{}.Final32(cfg.Trials, cfg.Gather, cfg.Scatter)

	rep.add(checkArray32("a", bn.A.Float32()[:n], exp.A, n, eps, verbose))
	rep.add(checkArray32("b", bn.B.Float32()[:n], exp.B, n, eps, verbose))
	rep.add(checkArray32("c", bn.C.Float32()[:n], exp.C, n, eps, verbose))

	if cfg.Gather {
		rep.add(checkArray32("d", bn.D.Float32()[:m], exp.D, m, eps, verbose))
	}
	if cfg.Scatter {
		rep.add(checkArray32("e", bn.E.Float32()[:m], exp.E, n, eps, verbose))
	}
	if cfg.IndirectDot {
		xj := Reference{}.Dot32(bn.D.Float32()[:m], bn.B.Float32()[:n], bn.Idx.Int32()[:m])
		rep.add(checkValue32("x", float32(bn.X), xj, eps))
	}
}

// checkArray64 compares every element of vals against the single
// expected value. The average error is taken over divisor elements,
// which for E is the dense array size rather than the element count.
func checkArray64(name string, vals []float64, expect float64, divisor int, eps float64, verbose bool) BufferCheck {
	var sumErr float64
	for _, v := range vals {
		sumErr += math.Abs(v - expect)
	}
	avgErr := sumErr / float64(divisor)
	rel := math.Abs(avgErr / expect)

	check := BufferCheck{
		Name:      name,
		Expected:  expect,
		AvgAbsErr: avgErr,
		RelErr:    rel,
		Total:     len(vals),
		OK:        rel <= eps,
	}
	if check.OK {
		return check
	}

	for j, v := range vals {
		relErr := math.Abs(v/expect - 1.0)
		if relErr > eps {
			check.Errors++
			if verbose && len(check.Bad) < maxBadElements {
				check.Bad = append(check.Bad, BadElement{Index: j, Value: v, RelErr: relErr})
			}
		}
	}
	return check
}

// checkArray32 is the float32 twin of checkArray64. The error sums
// accumulate in element precision before widening for the report.
func checkArray32(name string, vals []float32, expect float32, divisor int, eps float64, verbose bool) BufferCheck {
	var sumErr float32
	for _, v := range vals {
		sumErr += float32(math.Abs(float64(v - expect)))
	}
	avgErr := sumErr / float32(divisor)
	rel := math.Abs(float64(avgErr / expect))

	check := BufferCheck{
		Name:      name,
		Expected:  float64(expect),
		AvgAbsErr: float64(avgErr),
		RelErr:    rel,
		Total:     len(vals),
		OK:        rel <= eps,
	}
	if check.OK {
		return check
	}

	for j, v := range vals {
		relErr := math.Abs(float64(v/expect - 1.0))
		if relErr > eps {
			check.Errors++
			if verbose && len(check.Bad) < maxBadElements {
				check.Bad = append(check.Bad, BadElement{Index: j, Value: float64(v), RelErr: relErr})
			}
		}
	}
	return check
}

func checkValue64(name string, got, want, eps float64) BufferCheck {
	rel := math.Abs((got - want) / want)
	check := BufferCheck{
		Name:      name,
		Expected:  want,
		Observed:  got,
		AvgAbsErr: math.Abs(got - want),
		RelErr:    rel,
		Total:     1,
		OK:        rel <= eps,
	}
	if !check.OK {
		check.Errors = 1
	}
	return check
}

func checkValue32(name string, got, want float32, eps float64) BufferCheck {
	rel := math.Abs(float64((got - want) / want))
	check := BufferCheck{
		Name:      name,
		Expected:  float64(want),
		Observed:  float64(got),
		AvgAbsErr: math.Abs(float64(got - want)),
		RelErr:    rel,
		Total:     1,
		OK:        rel <= eps,
	}
	if !check.OK {
		check.Errors = 1
	}
	return check
}

func (r *ValidationReport) add(c BufferCheck) {
	r.Checks = append(r.Checks, c)
}

// OK reports whether every check passed.
func (r *ValidationReport) OK() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Err returns the aggregated validation failures, or nil when every
// check passed.
func (r *ValidationReport) Err() error {
	return r.err.ErrorOrNil()
}

// String renders the verdict in the classic report form.
func (r *ValidationReport) String() string {
	if r.OK() {
		return fmt.Sprintf("Solution Validates: avg error less than %e on all arrays\n", r.Epsilon)
	}

	var sb strings.Builder
	for _, c := range r.Checks {
		if c.OK {
			continue
		}
		if c.Total == 1 {
			fmt.Fprintf(&sb, "Failed Validation on value %s, RelErr > epsilon (%e)\n", c.Name, r.Epsilon)
			fmt.Fprintf(&sb, "     Expected Value: %e, Observed Value: %e, RelErr: %e\n",
				c.Expected, c.Observed, c.RelErr)
			continue
		}

		fmt.Fprintf(&sb, "Failed Validation on array %s[], AvgRelAbsErr > epsilon (%e)\n", c.Name, r.Epsilon)
		fmt.Fprintf(&sb, "     Expected Value: %e, AvgAbsErr: %e, AvgRelAbsErr: %e\n",
			c.Expected, c.AvgAbsErr, c.RelErr)
		fmt.Fprintf(&sb, "     For array %s[], %d errors were found.\n", c.Name, c.Errors)
		for _, bad := range c.Bad {
			fmt.Fprintf(&sb, "         %s[%d] = %e, relative error %e\n",
				c.Name, bad.Index, bad.Value, bad.RelErr)
		}
	}
	return sb.String()
}
