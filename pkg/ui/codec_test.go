package ui

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleYAML = `
- type: h1
  children: [Title]
- type: a
  key: home
  props:
    href: /home
  children:
    - Home
    - text: " page"
- 42
`

func TestDecode_YAML(t *testing.T) {
	var raw any
	require.NoError(t, yaml.Unmarshal([]byte(sampleYAML), &raw))

	n, err := Decode(raw)
	require.NoError(t, err)

	require.Equal(t, KindFragment, n.Kind)
	require.Len(t, n.Children, 3)

	h1 := n.Children[0]
	assert.Equal(t, KindHost, h1.Kind)
	assert.Equal(t, "h1", h1.Type)
	assert.Equal(t, []Node{Text("Title")}, h1.Children)

	link := n.Children[1]
	assert.Equal(t, "home", link.Key)
	assert.Equal(t, "/home", link.Props["href"])
	assert.Equal(t, Text(" page"), link.Children[1])

	assert.Equal(t, Text("42"), n.Children[2])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"missing type", map[string]any{"children": []any{"x"}}},
		{"unknown field", map[string]any{"type": "p", "colour": "red"}},
		{"text with children", map[string]any{"text": "x", "children": []any{"y"}}},
		{"unsupported value", struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestEncode_RoundTripThroughJSON(t *testing.T) {
	desc := Fragment(
		H("p", nil, Text("Hello")),
		H("img", Props{"alt": "logo", "src": "/l.png"}),
	)

	enc, err := Encode(desc)
	require.NoError(t, err)
	data, err := json.Marshal(enc)
	require.NoError(t, err)

	var raw any
	require.NoError(t, json.Unmarshal(data, &raw))
	back, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, desc.Children[0], back.Children[0])
	assert.Equal(t, "logo", back.Children[1].Props["alt"])
}

func TestHash(t *testing.T) {
	a := H("p", Props{"x": 1, "y": 2}, Text("hi"))
	b := H("p", Props{"y": 2, "x": 1}, Text("hi"))
	c := H("p", nil, Text("ho"))

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)
	hc, err := Hash(c)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)

	_, err = Hash(C("Comp", func(Props, []Node) Node { return Empty }, nil))
	assert.ErrorIs(t, err, ErrNotEncodable)
}
