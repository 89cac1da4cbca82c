package engine

// Provider compiles one section of the manifest into executable steps.
// Each provider handles a specific resource type (apt, pip, piper, files, ...).
type Provider interface {
	// Name returns the provider's identifier and manifest section key.
	Name() string

	// Compile transforms the provider's configuration into steps.
	// Cross-provider ordering is expressed through Step.DependsOn.
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext carries manifest data and shared settings into providers.
type CompileContext struct {
	config  map[string]interface{}
	baseDir string
	vars    map[string]string
}

// NewCompileContext creates a CompileContext over the merged configuration.
func NewCompileContext(config map[string]interface{}) CompileContext {
	return CompileContext{config: config}
}

// Config returns the full configuration.
func (c CompileContext) Config() map[string]interface{} {
	return c.config
}

// GetSection returns a named section of the configuration, or nil when the
// section is absent or not a map.
func (c CompileContext) GetSection(key string) map[string]interface{} {
	if c.config == nil {
		return nil
	}
	section, ok := c.config[key]
	if !ok {
		return nil
	}
	sectionMap, ok := section.(map[string]interface{})
	if !ok {
		return nil
	}
	return sectionMap
}

// BaseDir returns the installation root all relative paths resolve against.
func (c CompileContext) BaseDir() string {
	return c.baseDir
}

// WithBaseDir returns a CompileContext with the installation root set.
func (c CompileContext) WithBaseDir(baseDir string) CompileContext {
	c.baseDir = baseDir
	return c
}

// Var returns a shared manifest variable (audio device, GPIO pins, ...).
func (c CompileContext) Var(key string) string {
	return c.vars[key]
}

// Vars returns all shared manifest variables.
func (c CompileContext) Vars() map[string]string {
	return c.vars
}

// WithVars returns a CompileContext with shared variables set.
func (c CompileContext) WithVars(vars map[string]string) CompileContext {
	c.vars = vars
	return c
}
