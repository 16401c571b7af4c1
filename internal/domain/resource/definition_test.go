package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr bool
	}{
		{name: "valid", def: Definition{Name: "items"}, wantErr: false},
		{name: "dashes and digits", def: Definition{Name: "order-lines2"}, wantErr: false},
		{name: "empty name", def: Definition{Name: ""}, wantErr: true},
		{name: "uppercase", def: Definition{Name: "Items"}, wantErr: true},
		{name: "slash", def: Definition{Name: "a/b"}, wantErr: true},
		{name: "space", def: Definition{Name: "my items"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRegistry(t *testing.T) {
	registry, err := NewRegistry(Defaults())
	require.NoError(t, err)

	names := make([]string, 0)
	for _, def := range registry.All() {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"items", "notes", "tasks"}, names)
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry([]Definition{{Name: "items"}, {Name: "items"}})
	assert.Error(t, err)
}

func TestNewRegistry_RejectsInvalidName(t *testing.T) {
	_, err := NewRegistry([]Definition{{Name: "Bad Name"}})
	assert.Error(t, err)
}

func TestNewRegistry_FillsTitle(t *testing.T) {
	registry, err := NewRegistry([]Definition{{Name: "gizmos"}})
	require.NoError(t, err)

	def, err := registry.Lookup("gizmos")
	require.NoError(t, err)
	assert.Equal(t, "Gizmo", def.Title)
}

func TestRegistry_Lookup_Unknown(t *testing.T) {
	registry, err := NewRegistry(Defaults())
	require.NoError(t, err)

	_, err = registry.Lookup("gadgets")
	assert.ErrorIs(t, err, ErrUnknownResource)
}
