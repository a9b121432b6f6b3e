// Package tags provides consistent tagging for provider resources.
//
// Every resource carries a Name tag plus a workspace tag so a whole test
// environment can be found (and cleaned up) by filtering on the workspace.
package tags

// Standard tag keys.
const (
	// KeyName is the display-name tag recognized by the EC2 console.
	KeyName = "Name"

	// KeyWorkspace groups all resources belonging to one test run.
	KeyWorkspace = "rigcheck/workspace"

	// KeyRole identifies the role of a node (master, worker).
	KeyRole = "rigcheck/role"
)

// Role tag values applied to nodes.
const (
	RoleMaster = "master"
	RoleWorker = "worker"

	// TagFirstMaster marks the node that hosts cluster bootstrap duties.
	TagFirstMaster = "first_master"
)

// Builder accumulates tags for a resource.
type Builder struct {
	tags map[string]string
}

// NewBuilder creates a builder with name and workspace tags pre-set.
func NewBuilder(name, workspace string) *Builder {
	return &Builder{tags: map[string]string{
		KeyName:      name,
		KeyWorkspace: workspace,
	}}
}

// WithRole adds a role tag.
func (b *Builder) WithRole(role string) *Builder {
	b.tags[KeyRole] = role
	return b
}

// With adds an arbitrary tag.
func (b *Builder) With(key, value string) *Builder {
	b.tags[key] = value
	return b
}

// Build returns the accumulated tag map.
func (b *Builder) Build() map[string]string {
	return b.tags
}
