// Package mocks provides testify-based mock implementations of the wizard
// collaborators for tests that do not drive a terminal.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
)

// compile-time interface compliance checks
var (
	_ wizard.Renderer    = (*Renderer)(nil)
	_ wizard.Interrupter = (*Interrupter)(nil)
)

// Renderer is a mock for wizard.Renderer.
type Renderer struct {
	mock.Mock
}

func (m *Renderer) RefreshDisplay(answers wizard.Answers) {
	m.Called(answers)
}

func (m *Renderer) ShowStepHeader(position, total int, title, icon string) {
	m.Called(position, total, title, icon)
}

func (m *Renderer) PromptChoice(ctx context.Context, p wizard.Prompt) (any, error) {
	args := m.Called(ctx, p)
	return args.Get(0), args.Error(1)
}

func (m *Renderer) Separator() wizard.Choice {
	args := m.Called()
	return args.Get(0).(wizard.Choice)
}

func (m *Renderer) BackOption() wizard.Choice {
	args := m.Called()
	return args.Get(0).(wizard.Choice)
}

func (m *Renderer) ShowCompletion() {
	m.Called()
}

// Interrupter is a mock for wizard.Interrupter.
type Interrupter struct {
	mock.Mock
}

func (m *Interrupter) Activate(onBack func()) {
	m.Called(onBack)
}

func (m *Interrupter) Deactivate() {
	m.Called()
}
