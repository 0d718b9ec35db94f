// Package confirm models the interactive yes/no step that guards destructive actions.
package confirm

// Confirmer asks the user to approve prompt. false aborts the action with no side effects.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Func adapts a plain function to Confirmer.
type Func func(prompt string) bool

func (f Func) Confirm(prompt string) bool {
	return f(prompt)
}

var (
	Always Confirmer = Func(func(string) bool { return true })
	Never  Confirmer = Func(func(string) bool { return false })
)

// Recorder approves or declines every prompt and remembers what it was asked.
type Recorder struct {
	Answer  bool
	Prompts []string
}

func (r *Recorder) Confirm(prompt string) bool {
	r.Prompts = append(r.Prompts, prompt)
	return r.Answer
}
