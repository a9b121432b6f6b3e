package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderDefaults(t *testing.T) {
	got := NewBuilder("ws-master-0", "ws").Build()

	assert.Equal(t, "ws-master-0", got[KeyName])
	assert.Equal(t, "ws", got[KeyWorkspace])
	assert.Len(t, got, 2)
}

func TestBuilderWithRole(t *testing.T) {
	got := NewBuilder("ws-worker-1", "ws").WithRole(RoleWorker).Build()

	assert.Equal(t, RoleWorker, got[KeyRole])
}

func TestBuilderWithArbitraryTag(t *testing.T) {
	got := NewBuilder("ws-master-0", "ws").
		WithRole(RoleMaster).
		With(TagFirstMaster, "true").
		Build()

	assert.Equal(t, "true", got[TagFirstMaster])
	assert.Equal(t, RoleMaster, got[KeyRole])
}
