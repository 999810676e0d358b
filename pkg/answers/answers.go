// Package answers is the hand-off contract between the wizard and the
// downstream project generators.
package answers

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Document is the normalized output of a completed wizard run.
type Document struct {
	ProjectName string         `json:"project_name" yaml:"project_name"`
	Directory   string         `json:"directory,omitempty" yaml:"directory,omitempty"`
	Answers     map[string]any `json:"answers" yaml:"answers"`
}

// RequiredAnswers are the fields every generator needs.
var RequiredAnswers = []string{"packageManager", "framework"}

// Validate checks the minimum contract required by the generators.
func (d Document) Validate() error {
	if err := ValidateProjectName(d.ProjectName); err != nil {
		return err
	}
	for _, k := range RequiredAnswers {
		if _, ok := d.Answers[k]; !ok {
			return fmt.Errorf("answers.%s is required", k)
		}
	}
	return nil
}

var projectNameRe = regexp.MustCompile(`^(?:@[a-z0-9~\-][a-z0-9~._\-]*/)?[a-z0-9~\-][a-z0-9~._\-]*$`)

// ValidateProjectName applies npm package naming rules.
func ValidateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("project name is required")
	case len(name) > 214:
		return fmt.Errorf("project name must be at most 214 characters")
	case strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_"):
		return fmt.Errorf("project name cannot start with %q", name[:1])
	case strings.ToLower(name) != name:
		return fmt.Errorf("project name must be lowercase")
	case name == "node_modules" || name == "favicon.ico":
		return fmt.Errorf("project name %q is reserved", name)
	case !projectNameRe.MatchString(name):
		return fmt.Errorf("project name %q contains characters not allowed in a package name", name)
	}
	return nil
}

// Load reads a Document from YAML or JSON, chosen by file extension.
func Load(fs afero.Fs, path string) (Document, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return Document{}, fmt.Errorf("read answers %s: %w", path, err)
	}

	var out Document
	if isJSON(path) {
		err = json.Unmarshal(content, &out)
	} else {
		err = yaml.Unmarshal(content, &out)
	}
	if err != nil {
		return Document{}, fmt.Errorf("parse answers %s: %w", path, err)
	}

	if err := out.Validate(); err != nil {
		return Document{}, err
	}
	return out, nil
}

// Save writes doc to YAML or JSON based on file extension.
func Save(fs afero.Fs, path string, doc Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir for %s: %w", path, err)
		}
	}

	var content []byte
	var err error
	if isJSON(path) {
		content, err = json.MarshalIndent(doc, "", "  ")
	} else {
		content, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("marshal answers %s: %w", path, err)
	}

	if err := afero.WriteFile(fs, path, content, 0o644); err != nil {
		return fmt.Errorf("write answers %s: %w", path, err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}
