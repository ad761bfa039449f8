package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	v, err := StringList{"2 eggs", "salt"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["2 eggs","salt"]`, string(v.([]byte)))

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    StringList
		wantErr bool
	}{
		{name: "bytes", src: []byte(`["a","b"]`), want: StringList{"a", "b"}},
		{name: "string", src: `["toast"]`, want: StringList{"toast"}},
		{name: "null", src: nil, want: StringList{}},
		{name: "json null", src: []byte(`null`), want: StringList{}},
		{name: "bad json", src: []byte(`{`), wantErr: true},
		{name: "bad type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			err := l.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l)
		})
	}
}
