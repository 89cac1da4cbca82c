package bootcfg

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/pireader/provision/internal/domain/engine"
	"github.com/pireader/provision/internal/ports"
)

// loadOptions parses config.txt, where keys like dtparam repeat.
var loadOptions = ini.LoadOptions{
	AllowShadows:             true,
	SpaceBeforeInlineComment: true,
}

// EntryStep ensures one key/value occurrence in the boot configuration.
// The firmware takes the last occurrence of a key, so a missing value is
// appended rather than replacing what is there.
type EntryStep struct {
	path  string
	entry Entry
	id    engine.StepID
	fs    ports.FileSystem
}

// NewEntryStep creates an EntryStep.
func NewEntryStep(path string, entry Entry, fs ports.FileSystem) *EntryStep {
	id := engine.MustNewStepID(fmt.Sprintf("bootcfg:%s:%s", entry.Section, entry.Key))
	return &EntryStep{
		path:  path,
		entry: entry,
		id:    id,
		fs:    fs,
	}
}

// ID returns the step identifier.
func (s *EntryStep) ID() engine.StepID {
	return s.id
}

// Description returns the step summary.
func (s *EntryStep) Description() string {
	return fmt.Sprintf("ensure %s=%s in %s [%s]", s.entry.Key, s.entry.Value, s.path, s.entry.Section)
}

// DependsOn returns the step dependencies.
func (s *EntryStep) DependsOn() []engine.StepID {
	return nil
}

// Check determines whether any occurrence of the key carries the value.
// Stock config.txt keeps keys in the unnamed top-level section, which applies
// unconditionally, so that section satisfies any entry too.
func (s *EntryStep) Check(_ engine.RunContext) (engine.StepStatus, error) {
	content, err := s.fs.ReadFile(s.path)
	if err != nil {
		return engine.StatusNeedsApply, nil
	}

	f, err := ini.LoadSources(loadOptions, content)
	if err != nil {
		return engine.StatusUnknown, fmt.Errorf("parse %s: %w", s.path, err)
	}

	sections := []string{s.entry.Section}
	if s.entry.Section != ini.DefaultSection {
		sections = append(sections, ini.DefaultSection)
	}
	for _, name := range sections {
		if s.satisfiedIn(f, name) {
			return engine.StatusSatisfied, nil
		}
	}
	return engine.StatusNeedsApply, nil
}

func (s *EntryStep) satisfiedIn(f *ini.File, sectionName string) bool {
	section, err := f.GetSection(sectionName)
	if err != nil || !section.HasKey(s.entry.Key) {
		return false
	}
	for _, v := range section.Key(s.entry.Key).ValueWithShadows() {
		if v == s.entry.Value {
			return true
		}
	}
	return false
}

// Plan returns the diff for this step.
func (s *EntryStep) Plan(_ engine.RunContext) (engine.Diff, error) {
	name := fmt.Sprintf("%s [%s] %s", s.path, s.entry.Section, s.entry.Key)
	return engine.NewDiff(engine.DiffTypeModify, "boot-config", name, s.entry.Value), nil
}

// Apply appends the key/value occurrence and rewrites the file.
func (s *EntryStep) Apply(_ engine.RunContext) error {
	var f *ini.File
	content, err := s.fs.ReadFile(s.path)
	if err != nil {
		f = ini.Empty(loadOptions)
	} else {
		f, err = ini.LoadSources(loadOptions, content)
		if err != nil {
			return fmt.Errorf("parse %s: %w", s.path, err)
		}
	}

	section := f.Section(s.entry.Section)
	if section.HasKey(s.entry.Key) {
		if err := section.Key(s.entry.Key).AddShadow(s.entry.Value); err != nil {
			return fmt.Errorf("add %s: %w", s.entry.Key, err)
		}
	} else {
		if _, err := section.NewKey(s.entry.Key, s.entry.Value); err != nil {
			return fmt.Errorf("set %s: %w", s.entry.Key, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("render %s: %w", s.path, err)
	}
	if err := s.fs.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
