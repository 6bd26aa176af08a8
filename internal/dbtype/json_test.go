package dbtype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Value(t *testing.T) {
	tests := []struct {
		name string
		list StringList
		want string
	}{
		{name: "nil list is an empty array", list: nil, want: "[]"},
		{name: "empty list", list: StringList{}, want: "[]"},
		{name: "keeps order and unicode", list: StringList{"極限", "导数"}, want: `["極限","导数"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.list.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    StringList
		wantErr bool
	}{
		{name: "NULL column", src: nil, want: StringList{}},
		{name: "empty column", src: []byte(""), want: StringList{}},
		{name: "json null", src: "null", want: StringList{}},
		{name: "array from bytes", src: []byte(`["a","b"]`), want: StringList{"a", "b"}},
		{name: "array from string", src: `["c"]`, want: StringList{"c"}},
		{name: "not an array", src: `{"a":1}`, wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			err := got.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCounts_ValueAndScan(t *testing.T) {
	value, err := Counts{"physics": 1, "math": 2}.Value()
	require.NoError(t, err)
	assert.Equal(t, `{"math":2,"physics":1}`, value)

	nilValue, err := Counts(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", nilValue)

	var got Counts
	require.NoError(t, got.Scan([]byte(`{"math":2}`)))
	assert.Equal(t, Counts{"math": 2}, got)

	var empty Counts
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, Counts{}, empty)
}

func TestMarshalJSON_NilCollections(t *testing.T) {
	payload := struct {
		Points StringList `json:"points"`
		Counts Counts     `json:"counts"`
	}{}

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"points":[],"counts":{}}`, string(b))
}

func TestList_StructElements(t *testing.T) {
	type pair struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}

	value, err := List[pair]{{Question: "q", Answer: "a"}}.Value()
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"q","answer":"a"}]`, value)

	var got List[pair]
	require.NoError(t, got.Scan(value))
	assert.Equal(t, List[pair]{{Question: "q", Answer: "a"}}, got)
}

func TestList_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Points StringList `json:"points"`
	}

	tests := []struct {
		name    string
		input   string
		want    StringList
		wantErr bool
	}{
		{name: "array", input: `{"points":["a","b"]}`, want: StringList{"a", "b"}},
		{name: "single string", input: `{"points":"only one"}`, want: StringList{"only one"}},
		{name: "null", input: `{"points":null}`, want: StringList{}},
		{name: "empty array", input: `{"points":[]}`, want: StringList{}},
		{name: "wrong element type", input: `{"points":[1,2]}`, wantErr: true},
		{name: "wrong scalar type", input: `{"points":true}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Points)
		})
	}
}
