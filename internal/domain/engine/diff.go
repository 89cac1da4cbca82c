package engine

import "fmt"

// DiffType represents the kind of change a step will make.
type DiffType string

const (
	// DiffTypeAdd indicates a new resource will be created or installed.
	DiffTypeAdd DiffType = "add"
	// DiffTypeModify indicates an existing resource will be changed.
	DiffTypeModify DiffType = "modify"
	// DiffTypeExec indicates a command will run without leaving a managed resource.
	DiffTypeExec DiffType = "exec"
	// DiffTypeNone indicates no change is needed.
	DiffTypeNone DiffType = "none"
)

// String returns the string representation of the diff type.
func (d DiffType) String() string {
	return string(d)
}

// Diff describes a planned change from a step.
type Diff struct {
	diffType DiffType
	resource string
	name     string
	detail   string
}

// NewDiff creates a Diff.
func NewDiff(diffType DiffType, resource, name, detail string) Diff {
	return Diff{
		diffType: diffType,
		resource: resource,
		name:     name,
		detail:   detail,
	}
}

// Type returns the diff type.
func (d Diff) Type() DiffType {
	return d.diffType
}

// Resource returns the resource kind (e.g. "package", "file", "probe").
func (d Diff) Resource() string {
	return d.resource
}

// Name returns the resource name.
func (d Diff) Name() string {
	return d.name
}

// Detail returns additional context (target version, URL, command).
func (d Diff) Detail() string {
	return d.detail
}

// Summary returns a one-line human-readable rendering.
func (d Diff) Summary() string {
	switch d.diffType {
	case DiffTypeAdd:
		return fmt.Sprintf("+ %s %s (%s)", d.resource, d.name, d.detail)
	case DiffTypeModify:
		return fmt.Sprintf("~ %s %s (%s)", d.resource, d.name, d.detail)
	case DiffTypeExec:
		return fmt.Sprintf("> %s %s (%s)", d.resource, d.name, d.detail)
	case DiffTypeNone:
		return fmt.Sprintf("  %s %s", d.resource, d.name)
	}
	return fmt.Sprintf("  %s %s", d.resource, d.name)
}

// IsEmpty reports whether this diff represents no meaningful change.
func (d Diff) IsEmpty() bool {
	return (d.diffType == DiffTypeNone || d.diffType == "") && d.resource == "" && d.name == ""
}
