package models

// StatusDone terminates every task workflow regardless of vocabulary.
const StatusDone = "Done"

// Workflow is an ordered task status vocabulary: a sequence of working
// states ending in Done. The vocabulary is configuration data, not a type,
// so product variants with different wording share the same lifecycle.
type Workflow struct {
	Name     string
	Statuses []string
}

var (
	// PhotoWorkflow matches the photography production variant.
	PhotoWorkflow = Workflow{
		Name:     "photo",
		Statuses: []string{"To Do", "Shooting", "Editing", "Review", StatusDone},
	}

	// GenericWorkflow is the neutral task vocabulary.
	GenericWorkflow = Workflow{
		Name:     "generic",
		Statuses: []string{"To Do", "In Progress", "Review", StatusDone},
	}
)

// WorkflowByName resolves a built-in vocabulary. Unknown names fall back to
// the generic workflow.
func WorkflowByName(name string) Workflow {
	switch name {
	case PhotoWorkflow.Name:
		return PhotoWorkflow
	default:
		return GenericWorkflow
	}
}

// CustomWorkflow builds a vocabulary from configured statuses. An empty or
// malformed list (no terminal Done) is rejected by returning false.
func CustomWorkflow(name string, statuses []string) (Workflow, bool) {
	if len(statuses) == 0 || statuses[len(statuses)-1] != StatusDone {
		return Workflow{}, false
	}
	return Workflow{Name: name, Statuses: statuses}, true
}

// Initial returns the state a freshly created task starts in.
func (w Workflow) Initial() string {
	return w.Statuses[0]
}

// Valid reports whether s belongs to the vocabulary.
func (w Workflow) Valid(s string) bool {
	for _, st := range w.Statuses {
		if st == s {
			return true
		}
	}
	return false
}
