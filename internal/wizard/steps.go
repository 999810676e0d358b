package wizard

// End is the next-step name that finishes the wizard.
const End = "$end"

// sentinel values travel through the same channel as real selections, so they
// are pointers compared by identity.
type sentinel struct{ name string }

func (s *sentinel) String() string { return s.name }

var (
	// Back is the selection reported when the user asks for the previous step.
	Back any = &sentinel{name: "back"}
	// Skip is passed to NextStep for steps that are not visible.
	Skip any = &sentinel{name: "skip"}
	// Divider is the value carried by separator rows.
	Divider any = &sentinel{name: "separator"}
)

// IsBack reports whether v is the Back sentinel.
func IsBack(v any) bool { return v == Back }

// Choice is one selectable row of a step.
type Choice struct {
	Label    string
	Value    any
	Disabled bool
}

// Step defines one wizard page.
//
// Steps hold no orchestration logic: they describe what to ask and how the
// answer feeds navigation. Choices, DefaultIndex and NextStep must be free of
// side effects; they are evaluated fresh every time the step is visited.
type Step interface {
	Name() string
	// Ordinal is the display position. It is never used for control flow.
	Ordinal() int
	Title() string
	Icon() string
	Message() string
	Choices(answers Answers) []Choice
	// DefaultIndex indexes into the list returned by Choices, before any
	// separator or back row is appended.
	DefaultIndex(answers Answers) int
	// NextStep returns a step name, End, or "" when the graph has no target.
	NextStep(selected any, answers Answers) string
	// Fields lists every answer field the step owns.
	Fields() []Field
}

// Conditional is implemented by steps that are only shown for some answers.
type Conditional interface {
	Visible(answers Answers) bool
}

// Committer is implemented by steps that write more than one field.
// Steps without it store the selection under their first field.
type Committer interface {
	Commit(selected any, answers Answers)
}

// StepResult is the outcome of executing a step.
type StepResult struct {
	Selection any
	Next      string
	// ResolvedBy names what settled the prompt: ResolvedByPrompt or
	// ResolvedByKeystroke.
	ResolvedBy string
}

func commit(step Step, selected any, answers Answers) {
	if c, ok := step.(Committer); ok {
		c.Commit(selected, answers)
		return
	}
	if fields := step.Fields(); len(fields) > 0 {
		answers[fields[0]] = selected
	}
}

func visible(step Step, answers Answers) bool {
	c, ok := step.(Conditional)
	return !ok || c.Visible(answers)
}
