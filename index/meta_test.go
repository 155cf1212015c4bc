package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tessera-search/tessera/codec"
	"github.com/tessera-search/tessera/schema"
)

func TestMeta_EncodeDecodeRoundTrip(t *testing.T) {
	s := schema.Schema{
		"body": {Type: schema.FieldTypeText, Options: schema.FieldOptions{Indexed: true}},
	}

	meta := newIndexMeta(s)
	meta.Segments = append(meta.Segments, NewSegmentID(), NewSegmentID(), NewSegmentID())

	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		data, err := encodeMeta(c, meta)
		require.NoError(t, err, c.Name())

		out, err := decodeMeta(c, data)
		require.NoError(t, err, c.Name())
		// List order preserved, schema reproduced exactly.
		require.Equal(t, meta, out, c.Name())
	}
}

func TestMeta_EmptySegmentsEncodeAsList(t *testing.T) {
	data, err := encodeMeta(codec.Default, newIndexMeta(nil))
	require.NoError(t, err)
	require.Contains(t, string(data), `"segments":[]`)
	require.Contains(t, string(data), `"version":1`)
}

func TestDecodeMeta_Garbage(t *testing.T) {
	cases := map[string]string{
		"not json":        `{meta`,
		"wrong shape":     `[1,2,3]`,
		"missing version": `{"segments":[],"schema":null}`,
		"future version":  `{"version":99,"segments":[],"schema":null}`,
		"bad identity":    `{"version":1,"segments":["nope"],"schema":null}`,
		"bad field type":  `{"version":1,"segments":[],"schema":{"f":{"type":"geo","options":{}}}}`,
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := decodeMeta(codec.Default, []byte(input))
			require.ErrorIs(t, err, ErrInvalidMeta)
		})
	}
}

func TestDecodeMeta_NullSegmentsNormalized(t *testing.T) {
	m, err := decodeMeta(codec.Default, []byte(`{"version":1,"segments":null,"schema":null}`))
	require.NoError(t, err)
	require.NotNil(t, m.Segments)
	require.Empty(t, m.Segments)
}

func TestMeta_CloneIsDeep(t *testing.T) {
	meta := newIndexMeta(schema.Schema{"f": {Type: schema.FieldTypeU64}})
	meta.Segments = append(meta.Segments, NewSegmentID())

	cp := meta.clone()
	cp.Segments[0] = NewSegmentID()
	cp.Schema["f"] = schema.FieldEntry{Type: schema.FieldTypeBytes}

	require.NotEqual(t, cp.Segments[0], meta.Segments[0])
	require.Equal(t, schema.FieldTypeU64, meta.Schema["f"].Type)
}
