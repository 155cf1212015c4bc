package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		require.Equal(t, name, c.Name())
	}

	_, ok := ByName("msgpack")
	require.False(t, ok)
}

func TestCodecs_RoundTrip(t *testing.T) {
	type doc struct {
		Version  int      `json:"version"`
		Segments []string `json:"segments"`
	}
	in := doc{Version: 1, Segments: []string{"a", "b", "c"}}

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		data, err := c.Marshal(in)
		require.NoError(t, err, c.Name())

		var out doc
		require.NoError(t, c.Unmarshal(data, &out), c.Name())
		require.Equal(t, in, out, c.Name())
	}
}

func TestCodecs_Interchangeable(t *testing.T) {
	// Both codecs emit standard JSON, so output of one decodes with the other.
	in := map[string]any{"version": float64(1)}

	data, err := GoJSON{}.Marshal(in)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, JSON{}.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestUnmarshal_Garbage(t *testing.T) {
	var v map[string]any
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		require.Error(t, c.Unmarshal([]byte("{not json"), &v), c.Name())
	}
}
