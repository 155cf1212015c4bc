package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSchema() Schema {
	return Schema{
		"body":  {Type: FieldTypeText, Options: FieldOptions{Indexed: true}},
		"title": {Type: FieldTypeText, Options: FieldOptions{Indexed: true, Stored: true}},
		"views": {Type: FieldTypeU64, Options: FieldOptions{Stored: true}},
	}
}

func TestFieldType_String(t *testing.T) {
	require.Equal(t, "text", FieldTypeText.String())
	require.Equal(t, "u64", FieldTypeU64.String())
	require.Equal(t, "bytes", FieldTypeBytes.String())
	require.Equal(t, "unknown", FieldType(200).String())
}

func TestSchema_JSONRoundTrip(t *testing.T) {
	in := testSchema()

	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.Contains(t, string(data), `"type":"text"`)

	var out Schema
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestSchema_UnknownTypeRejected(t *testing.T) {
	var out Schema
	err := json.Unmarshal([]byte(`{"f":{"type":"geo","options":{}}}`), &out)
	require.Error(t, err)

	_, err = json.Marshal(Schema{"f": {Type: FieldType(42)}})
	require.Error(t, err)
}

func TestSchema_Validate(t *testing.T) {
	require.NoError(t, testSchema().Validate())
	require.NoError(t, Schema(nil).Validate())

	bad := Schema{"f": {Type: FieldType(42)}}
	require.Error(t, bad.Validate())
}

func TestSchema_Clone(t *testing.T) {
	in := testSchema()
	out := in.Clone()
	require.Equal(t, in, out)

	out["body"] = FieldEntry{Type: FieldTypeBytes}
	require.NotEqual(t, in["body"], out["body"])

	require.Nil(t, Schema(nil).Clone())
}
