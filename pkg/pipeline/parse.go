package pipeline

import (
	"github.com/mvoelker/tourmaline/pkg/parse"
	"github.com/mvoelker/tourmaline/pkg/tsp"
)

// Parse reads the instance named by the options, from a file when Input is
// set and from inline text otherwise. Format detection and matrix
// validation happen in [parse]; anything returned here is solvable.
func Parse(opts Options) (*tsp.Instance, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	if opts.Input != "" {
		inst, err := parse.ReadFile(opts.Input)
		if err != nil {
			return nil, err
		}
		if opts.Name != "" {
			inst.Name = opts.Name
		}
		return inst, nil
	}

	name := opts.Name
	if name == "" {
		name = "inline"
	}
	return parse.ReadText(opts.Text, name)
}
