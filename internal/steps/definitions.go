package steps

import "github.com/gavbarosee/react-kickstart-sub000/internal/wizard"

type packageManagerStep struct {
	page
	opts Options
}

func (s packageManagerStep) Choices(wizard.Answers) []wizard.Choice {
	names := AvailablePackageManagers(s.opts.Candidates, s.opts.Detect)
	choices := make([]wizard.Choice, 0, len(names))
	for _, n := range names {
		choices = append(choices, wizard.Choice{Label: n, Value: n})
	}
	return choices
}

func (s packageManagerStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldPackageManager, s.opts.Preferred)
}

func (packageManagerStep) NextStep(any, wizard.Answers) string { return StepFramework }

type frameworkStep struct{ page }

func (frameworkStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "Vite", Value: FrameworkVite},
		{Label: "Next.js", Value: FrameworkNextjs},
	}
}

func (s frameworkStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldFramework, FrameworkVite)
}

func (frameworkStep) NextStep(selected any, _ wizard.Answers) string {
	if selected == FrameworkNextjs {
		return StepNextjsOptions
	}
	return StepRouting
}

type nextjsOptionsStep struct{ page }

func (nextjsOptionsStep) Visible(a wizard.Answers) bool {
	return a.String(FieldFramework) == FrameworkNextjs
}

func (nextjsOptionsStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "App Router", Value: "app"},
		{Label: "Pages Router", Value: "pages"},
	}
}

func (s nextjsOptionsStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldNextRouting, "app")
}

func (nextjsOptionsStep) NextStep(any, wizard.Answers) string { return StepLanguage }

type routingStep struct{ page }

func (routingStep) Visible(a wizard.Answers) bool {
	return a.String(FieldFramework) == FrameworkVite
}

func (routingStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "React Router", Value: "react-router"},
		{Label: "No routing", Value: "none"},
	}
}

func (s routingStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldRouting, "react-router")
}

func (routingStep) NextStep(any, wizard.Answers) string { return StepLanguage }

type languageStep struct{ page }

func (languageStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "TypeScript", Value: true},
		{Label: "JavaScript", Value: false},
	}
}

func (s languageStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldTypescript, true)
}

func (languageStep) NextStep(any, wizard.Answers) string { return StepLinting }

type lintingStep struct{ page }

func (lintingStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "Yes, add ESLint and Prettier", Value: true},
		{Label: "No", Value: false},
	}
}

func (s lintingStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldLinting, true)
}

func (lintingStep) NextStep(any, wizard.Answers) string { return StepStyling }

type stylingStep struct{ page }

func (stylingStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "Tailwind CSS", Value: "tailwind"},
		{Label: "styled-components", Value: "styled-components"},
		{Label: "Plain CSS", Value: "css"},
	}
}

func (s stylingStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldStyling, "tailwind")
}

func (stylingStep) NextStep(any, wizard.Answers) string { return StepStateManagement }

type stateManagementStep struct{ page }

func (stateManagementStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "Redux Toolkit", Value: "redux"},
		{Label: "Zustand", Value: "zustand"},
		{Label: "None", Value: "none"},
	}
}

func (s stateManagementStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldStateManagement, "none")
}

func (stateManagementStep) NextStep(any, wizard.Answers) string { return StepAPI }

type apiStep struct{ page }

func (apiStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "Axios + React Query", Value: "axios-react-query"},
		{Label: "Axios only", Value: "axios-only"},
		{Label: "Fetch + React Query", Value: "fetch-react-query"},
		{Label: "Fetch only", Value: "fetch-only"},
		{Label: "None", Value: "none"},
	}
}

func (s apiStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldAPI, "none")
}

func (apiStep) NextStep(any, wizard.Answers) string { return StepTesting }

type testingStep struct{ page }

// Choices offers Vitest only for Vite projects.
func (testingStep) Choices(a wizard.Answers) []wizard.Choice {
	if a.String(FieldFramework) == FrameworkVite {
		return []wizard.Choice{
			{Label: "Vitest + Testing Library", Value: "vitest"},
			{Label: "Jest + Testing Library", Value: "jest"},
			{Label: "None", Value: "none"},
		}
	}
	return []wizard.Choice{
		{Label: "Jest + Testing Library", Value: "jest"},
		{Label: "None", Value: "none"},
	}
}

func (s testingStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldTesting, "none")
}

func (testingStep) NextStep(any, wizard.Answers) string { return StepGit }

type gitStep struct{ page }

func (gitStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "Yes", Value: true},
		{Label: "No", Value: false},
	}
}

func (s gitStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldInitGit, true)
}

func (gitStep) NextStep(any, wizard.Answers) string { return StepDeployment }

type deploymentStep struct{ page }

func (deploymentStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "Vercel", Value: "vercel"},
		{Label: "Netlify", Value: "netlify"},
		{Label: "None", Value: "none"},
	}
}

func (s deploymentStep) DefaultIndex(a wizard.Answers) int {
	fallback := "none"
	if a.String(FieldFramework) == FrameworkNextjs {
		fallback = "vercel"
	}
	return defaultFor(s.Choices(a), a, FieldDeployment, fallback)
}

func (deploymentStep) NextStep(any, wizard.Answers) string { return StepEditor }

// editorStep owns both FieldOpenEditor and FieldEditor.
type editorStep struct{ page }

func (editorStep) Choices(wizard.Answers) []wizard.Choice {
	return []wizard.Choice{
		{Label: "Cursor", Value: "cursor"},
		{Label: "VS Code", Value: "vscode"},
		{Label: "Don't open an editor", Value: "none"},
	}
}

func (s editorStep) DefaultIndex(a wizard.Answers) int {
	return defaultFor(s.Choices(a), a, FieldEditor, "none")
}

func (editorStep) Commit(selected any, a wizard.Answers) {
	a[FieldOpenEditor] = selected != "none"
	a[FieldEditor] = selected
}

func (editorStep) NextStep(any, wizard.Answers) string { return wizard.End }
