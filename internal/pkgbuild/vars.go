package pkgbuild

import "fmt"

// Evaluator evaluates an array variable of a PKGBUILD and returns its
// elements, one per line of output. The production implementation sources
// the file in a shell interpreter; tests supply canned output.
type Evaluator interface {
	Evaluate(path, variable string) ([]string, error)
}

// ListPins returns the parsed entries of the vcspins array.
func ListPins(eval Evaluator, path string) ([]Input, error) {
	return listInputs(eval, path, "vcspins")
}

// ListSources returns the parsed entries of the source array.
func ListSources(eval Evaluator, path string) ([]Input, error) {
	return listInputs(eval, path, "source")
}

func listInputs(eval Evaluator, path, variable string) ([]Input, error) {
	lines, err := eval.Evaluate(path, variable)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", variable, err)
	}

	var inputs []Input
	for _, line := range lines {
		input, err := ParseInput(line)
		if err != nil {
			return nil, fmt.Errorf("parsing %s entry %q: %w", variable, line, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}
