package wizard

import "context"

// Prompt is a single-choice question handed to the Renderer.
type Prompt struct {
	Message string
	Choices []Choice
	// Default indexes into Choices.
	Default int
}

// Renderer draws the wizard. The engine never writes to the terminal itself.
type Renderer interface {
	// RefreshDisplay redraws the summary of the answers collected so far.
	RefreshDisplay(answers Answers)
	ShowStepHeader(position, total int, title, icon string)
	// PromptChoice blocks until the user picks a choice and returns its Value.
	// Implementations should return promptly once ctx is cancelled and report
	// abnormal prompt termination as ErrInterrupted.
	PromptChoice(ctx context.Context, p Prompt) (any, error)
	// Separator returns a non-selectable divider row.
	Separator() Choice
	// BackOption returns the row whose Value is Back.
	BackOption() Choice
	ShowCompletion()
}
