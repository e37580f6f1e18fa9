package ui

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// TypeFragment is the wire type used for fragments.
const TypeFragment = "fragment"

// ErrNotEncodable is returned when a description contains function components.
var ErrNotEncodable = errors.New("description contains components and cannot be encoded")

// wireNode is the map form of a description node, shared by the YAML, JSON,
// HTTP and MCP adapters.
type wireNode struct {
	Type     string         `mapstructure:"type"`
	Key      string         `mapstructure:"key"`
	Text     *string        `mapstructure:"text"`
	Props    map[string]any `mapstructure:"props"`
	Children []any          `mapstructure:"children"`
}

// Decode converts a generic value (as produced by encoding/json or yaml.v3)
// into a description. Strings become text, lists become fragments and maps
// become host elements, fragments or text depending on their fields.
func Decode(raw any) (Node, error) {
	return decodeAt(raw, "$")
}

func decodeAt(raw any, path string) (Node, error) {
	switch v := raw.(type) {
	case nil:
		return Empty, nil
	case string:
		return Text(v), nil
	case bool, int, int64, float64, json.Number:
		return Text(fmt.Sprint(v)), nil
	case []any:
		children, err := decodeChildren(v, path)
		if err != nil {
			return Empty, err
		}
		return Fragment(children...), nil
	case map[string]any:
		return decodeMap(v, path)
	default:
		return Empty, fmt.Errorf("%s: unsupported description value %T", path, raw)
	}
}

func decodeMap(m map[string]any, path string) (Node, error) {
	var w wireNode
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &w,
	})
	if err != nil {
		return Empty, fmt.Errorf("%s: failed to build decoder: %w", path, err)
	}
	if err := dec.Decode(m); err != nil {
		return Empty, fmt.Errorf("%s: %w", path, err)
	}

	if w.Text != nil {
		if w.Type != "" || len(w.Children) > 0 {
			return Empty, fmt.Errorf("%s: text nodes cannot carry a type or children", path)
		}
		return Text(*w.Text).WithKey(w.Key), nil
	}

	children, err := decodeChildren(w.Children, path)
	if err != nil {
		return Empty, err
	}

	switch w.Type {
	case "":
		return Empty, fmt.Errorf("%s: missing type", path)
	case TypeFragment:
		return Fragment(children...).WithKey(w.Key), nil
	}

	var props Props
	if w.Props != nil {
		props = Props(w.Props)
	}
	return H(w.Type, props, children...).WithKey(w.Key), nil
}

func decodeChildren(items []any, path string) ([]Node, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]Node, 0, len(items))
	for i, item := range items {
		child, err := decodeAt(item, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// Encode converts a description into its map form. Text without a key is
// encoded as a bare string.
func Encode(n Node) (any, error) {
	switch n.Kind {
	case KindEmpty:
		return nil, nil
	case KindText:
		if n.Key == "" {
			return n.Text, nil
		}
		return map[string]any{"text": n.Text, "key": n.Key}, nil
	case KindComponent:
		return nil, fmt.Errorf("%s: %w", n.Label(), ErrNotEncodable)
	}

	out := map[string]any{}
	if n.Kind == KindFragment {
		out["type"] = TypeFragment
	} else {
		out["type"] = n.Type
	}
	if n.Key != "" {
		out["key"] = n.Key
	}
	if len(n.Props) > 0 {
		out["props"] = map[string]any(n.Props)
	}
	if len(n.Children) > 0 {
		children := make([]any, 0, len(n.Children))
		for _, c := range n.Children {
			enc, err := Encode(c)
			if err != nil {
				return nil, err
			}
			children = append(children, enc)
		}
		out["children"] = children
	}
	return out, nil
}

// Hash returns a stable content hash of an encodable description.
// encoding/json sorts map keys, which makes the encoding canonical.
func Hash(n Node) (string, error) {
	enc, err := Encode(n)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(enc)
	if err != nil {
		return "", fmt.Errorf("failed to marshal description: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
