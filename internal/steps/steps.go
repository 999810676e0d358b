// Package steps defines the react-kickstart questionnaire: the thirteen wizard
// pages, their canonical order and the answer fields they own.
package steps

import (
	"fmt"

	"github.com/gavbarosee/react-kickstart-sub000/internal/wizard"
)

// Step names.
const (
	StepPackageManager  = "packageManager"
	StepFramework       = "framework"
	StepNextjsOptions   = "nextjsOptions"
	StepRouting         = "routing"
	StepLanguage        = "language"
	StepLinting         = "linting"
	StepStyling         = "styling"
	StepStateManagement = "stateManagement"
	StepAPI             = "api"
	StepTesting         = "testing"
	StepGit             = "git"
	StepDeployment      = "deployment"
	StepEditor          = "editor"
)

// Answer fields.
const (
	FieldPackageManager  wizard.Field = "packageManager"
	FieldFramework       wizard.Field = "framework"
	FieldNextRouting     wizard.Field = "nextRouting"
	FieldRouting         wizard.Field = "routing"
	FieldTypescript      wizard.Field = "typescript"
	FieldLinting         wizard.Field = "linting"
	FieldStyling         wizard.Field = "styling"
	FieldStateManagement wizard.Field = "stateManagement"
	FieldAPI             wizard.Field = "api"
	FieldTesting         wizard.Field = "testing"
	FieldInitGit         wizard.Field = "initGit"
	FieldDeployment      wizard.Field = "deployment"
	FieldOpenEditor      wizard.Field = "openEditor"
	FieldEditor          wizard.Field = "editor"
)

// Framework values.
const (
	FrameworkVite   = "vite"
	FrameworkNextjs = "nextjs"
)

// Entry is the first step of the questionnaire.
const Entry = StepPackageManager

// Order is the canonical step order. Conditional steps keep their slot.
var Order = []string{
	StepPackageManager,
	StepFramework,
	StepNextjsOptions,
	StepRouting,
	StepLanguage,
	StepLinting,
	StepStyling,
	StepStateManagement,
	StepAPI,
	StepTesting,
	StepGit,
	StepDeployment,
	StepEditor,
}

// AllFields is the closed set of answer fields, in summary display order.
var AllFields = []wizard.Field{
	FieldPackageManager,
	FieldFramework,
	FieldNextRouting,
	FieldRouting,
	FieldTypescript,
	FieldLinting,
	FieldStyling,
	FieldStateManagement,
	FieldAPI,
	FieldTesting,
	FieldInitGit,
	FieldDeployment,
	FieldOpenEditor,
	FieldEditor,
}

// FieldLabels are the human names shown in the answer summary.
var FieldLabels = map[wizard.Field]string{
	FieldPackageManager:  "Package manager",
	FieldFramework:       "Framework",
	FieldNextRouting:     "Next.js router",
	FieldRouting:         "Routing",
	FieldTypescript:      "Language",
	FieldLinting:         "Linting",
	FieldStyling:         "Styling",
	FieldStateManagement: "State management",
	FieldAPI:             "API client",
	FieldTesting:         "Testing",
	FieldInitGit:         "Git repository",
	FieldDeployment:      "Deployment",
	FieldOpenEditor:      "Open editor",
	FieldEditor:          "Editor",
}

// FormatValue renders an answer for the summary.
func FormatValue(f wizard.Field, v any) string {
	if b, ok := v.(bool); ok {
		switch f {
		case FieldTypescript:
			if b {
				return "TypeScript"
			}
			return "JavaScript"
		default:
			if b {
				return "Yes"
			}
			return "No"
		}
	}
	return fmt.Sprint(v)
}

// Options configures the registry.
type Options struct {
	// Candidates are the package managers offered when installed.
	// npm is always offered.
	Candidates []string
	// Preferred is the package manager selected by default.
	Preferred string
	// Detect reports whether a package manager is installed.
	// Defaults to a PATH lookup.
	Detect Detector
}

// Registry returns every step of the questionnaire.
func Registry(opts Options) []wizard.Step {
	if opts.Detect == nil {
		opts.Detect = LookPath
	}
	if len(opts.Candidates) == 0 {
		opts.Candidates = []string{"npm", "yarn", "pnpm"}
	}
	return []wizard.Step{
		packageManagerStep{page: pages[StepPackageManager], opts: opts},
		frameworkStep{page: pages[StepFramework]},
		nextjsOptionsStep{page: pages[StepNextjsOptions]},
		routingStep{page: pages[StepRouting]},
		languageStep{page: pages[StepLanguage]},
		lintingStep{page: pages[StepLinting]},
		stylingStep{page: pages[StepStyling]},
		stateManagementStep{page: pages[StepStateManagement]},
		apiStep{page: pages[StepAPI]},
		testingStep{page: pages[StepTesting]},
		gitStep{page: pages[StepGit]},
		deploymentStep{page: pages[StepDeployment]},
		editorStep{page: pages[StepEditor]},
	}
}

// Config returns a wizard.Config for the questionnaire without a renderer.
func Config(opts Options) wizard.Config {
	return wizard.Config{
		Steps:  Registry(opts),
		Order:  Order,
		Entry:  Entry,
		Fields: AllFields,
	}
}

// page holds the static part of a step.
type page struct {
	name    string
	ordinal int
	title   string
	icon    string
	message string
	fields  []wizard.Field
}

func (p page) Name() string           { return p.name }
func (p page) Ordinal() int           { return p.ordinal }
func (p page) Title() string          { return p.title }
func (p page) Icon() string           { return p.icon }
func (p page) Message() string        { return p.message }
func (p page) Fields() []wizard.Field { return p.fields }

// nextjsOptions and routing share ordinal 3; only one of them runs.
var pages = map[string]page{
	StepPackageManager:  {StepPackageManager, 1, "Package Manager", "📦", "Which package manager would you like to use?", []wizard.Field{FieldPackageManager}},
	StepFramework:       {StepFramework, 2, "Framework", "🚀", "Which framework would you like to use?", []wizard.Field{FieldFramework}},
	StepNextjsOptions:   {StepNextjsOptions, 3, "Next.js Options", "▲", "Which Next.js router would you like to use?", []wizard.Field{FieldNextRouting}},
	StepRouting:         {StepRouting, 3, "Routing", "🧭", "Would you like to add client-side routing?", []wizard.Field{FieldRouting}},
	StepLanguage:        {StepLanguage, 4, "Language", "🔤", "Which language would you like to use?", []wizard.Field{FieldTypescript}},
	StepLinting:         {StepLinting, 5, "Code Quality", "🧹", "Include ESLint and Prettier?", []wizard.Field{FieldLinting}},
	StepStyling:         {StepStyling, 6, "Styling", "🎨", "Which styling solution would you like to use?", []wizard.Field{FieldStyling}},
	StepStateManagement: {StepStateManagement, 7, "State Management", "🗃", "Which state management solution would you like to use?", []wizard.Field{FieldStateManagement}},
	StepAPI:             {StepAPI, 8, "API Integration", "🔌", "How would you like to handle API requests?", []wizard.Field{FieldAPI}},
	StepTesting:         {StepTesting, 9, "Testing", "🧪", "Which testing framework would you like to use?", []wizard.Field{FieldTesting}},
	StepGit:             {StepGit, 10, "Version Control", "🌱", "Initialize a git repository?", []wizard.Field{FieldInitGit}},
	StepDeployment:      {StepDeployment, 11, "Deployment", "☁", "Where would you like to deploy?", []wizard.Field{FieldDeployment}},
	StepEditor:          {StepEditor, 12, "Editor", "📝", "Open the project in an editor when done?", []wizard.Field{FieldOpenEditor, FieldEditor}},
}

// indexOf returns the position of the choice carrying v, or -1.
func indexOf(choices []wizard.Choice, v any) int {
	for i, c := range choices {
		if c.Value == v {
			return i
		}
	}
	return -1
}

// defaultFor prefers the answer already stored in f, then fallback, then the
// first choice.
func defaultFor(choices []wizard.Choice, answers wizard.Answers, f wizard.Field, fallback any) int {
	if v, ok := answers[f]; ok {
		if i := indexOf(choices, v); i >= 0 {
			return i
		}
	}
	if i := indexOf(choices, fallback); i >= 0 {
		return i
	}
	return 0
}
