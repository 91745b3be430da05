package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentIDJSON(t *testing.T) {
	cases := map[string]ParentID{
		`null`:               Root(),
		`0`:                  Root(),
		`"0"`:                Root(),
		`""`:                 Root(),
		`"abcdefgh12345678"`: ParentOf("abcdefgh12345678"),
		`12`:                 ParentOf("12"),
	}

	for in, want := range cases {
		var got ParentID
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.Equal(t, want, got, in)
	}

	var p ParentID
	assert.Error(t, json.Unmarshal([]byte(`{}`), &p))
	assert.Error(t, json.Unmarshal([]byte(`true`), &p))

	b, err := json.Marshal(File{ParentID: Root()})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"parentId":0`)
	assert.NotContains(t, string(b), "localPath")

	b, err = json.Marshal(File{ParentID: ParentOf("abc")})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"parentId":"abc"`)
}

func TestParentIDRootIsNotAnID(t *testing.T) {
	// A real id spelled like the root literal is still the root
	assert.True(t, ParentOf("0").IsRoot())
	assert.Equal(t, "0", Root().String())

	v, err := Root().Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)

	var p ParentID
	require.NoError(t, p.Scan([]byte("abc")))
	assert.Equal(t, "abc", p.ID())
	require.NoError(t, p.Scan(nil))
	assert.True(t, p.IsRoot())
}

func TestVariantPath(t *testing.T) {
	f := File{LocalPath: "/tmp/files_manager/x"}
	assert.Equal(t, "/tmp/files_manager/x_250", f.VariantPath(250))
	assert.True(t, ValidThumbnailWidth(100))
	assert.False(t, ValidThumbnailWidth(200))
}
