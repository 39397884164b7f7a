package instance

import (
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// ErrParse is returned (wrapped) when instance text cannot be parsed.
var ErrParse = errors.New("parse error")

// The on-disk format is a single whitespace separated stream:
//
//	n_var n_clauses 0  l l l 0  l l l 0 ...  %  w1 w2 ... wn  #
//
// Every clause ends with a 0. The trailing '#' is optional.
type instanceFile struct {
	NumVars    int        `parser:"@Int"`
	NumClauses int        `parser:"@Int \"0\""`
	Literals   []*literal `parser:"@@*"`
	Weights    []int      `parser:"\"%\" @Int*"`
	End        bool       `parser:"@\"#\"?"`
}

type literal struct {
	Negated bool `parser:"@\"-\"?"`
	Value   int  `parser:"@Int"`
}

func (l *literal) value() int {
	if l.Negated {
		return -l.Value
	}
	return l.Value
}

var parser = participle.MustBuild[instanceFile]()

// Parse reads an instance in the text format and validates it.
func Parse(r io.Reader) (*Instance, error) {
	f, err := parser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	return f.instance()
}

// ParseString is Parse over a string.
func ParseString(s string) (*Instance, error) {
	f, err := parser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	return f.instance()
}

// Load parses the instance stored at path.
func Load(path string) (*Instance, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening instance %s", path)
	}
	defer fd.Close()

	inst, err := Parse(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return inst, nil
}

func (f *instanceFile) instance() (*Instance, error) {
	var (
		clauses []Clause
		current Clause
	)
	for _, l := range f.Literals {
		v := l.value()
		if v == 0 {
			if l.Negated {
				return nil, errors.Wrap(ErrParse, "negated terminator")
			}
			clauses = append(clauses, current)
			current = nil
			continue
		}
		current = append(current, v)
	}
	if len(current) > 0 {
		return nil, errors.Wrapf(ErrParse, "last clause %v is not terminated by 0", current)
	}

	inst := &Instance{
		NumVars:    f.NumVars,
		NumClauses: f.NumClauses,
		Clauses:    clauses,
		Weights:    f.Weights,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}
