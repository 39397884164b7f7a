package instance

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
)

// Stats summarises the shape of an instance.
type Stats struct {
	NumVars    int     `json:"n_var"`
	NumClauses int     `json:"n_clauses"`
	Ratio      float64 `json:"ratio"`
	// Unreferenced lists variables that occur in no clause; they are free
	// and any optimal assignment sets them true.
	Unreferenced []int `json:"unreferenced,omitempty"`
	// Degenerate counts clauses that mention the same variable twice.
	Degenerate  int `json:"degenerate"`
	TotalWeight int `json:"total_weight"`
}

// ComputeStats gathers Stats for inst.
func ComputeStats(inst *Instance) Stats {
	referenced := mapset.NewThreadUnsafeSet[int]()
	degenerate := 0
	for _, c := range inst.Clauses {
		vars := mapset.NewThreadUnsafeSet[int]()
		for _, lit := range c {
			vars.Add(Var(lit))
		}
		if vars.Cardinality() < len(c) {
			degenerate++
		}
		referenced = referenced.Union(vars)
	}

	all := mapset.NewThreadUnsafeSet[int]()
	for v := 1; v <= inst.NumVars; v++ {
		all.Add(v)
	}
	unreferenced := all.Difference(referenced).ToSlice()
	sort.Ints(unreferenced)

	st := Stats{
		NumVars:      inst.NumVars,
		NumClauses:   inst.NumClauses,
		Unreferenced: unreferenced,
		Degenerate:   degenerate,
		TotalWeight:  inst.TotalWeight(),
	}
	if inst.NumVars > 0 {
		st.Ratio = float64(inst.NumClauses) / float64(inst.NumVars)
	}
	return st
}

// Fingerprint returns a stable hash of the instance contents, used to tell
// instances apart in reports and to key cached oracle results.
func Fingerprint(inst *Instance) (uint64, error) {
	h, err := hashstructure.Hash(inst, nil)
	if err != nil {
		return 0, errors.Wrap(err, "hashing instance")
	}
	return h, nil
}
