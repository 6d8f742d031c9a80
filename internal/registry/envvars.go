package registry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// EnvVar is a single KEY=VALUE assignment
type EnvVar struct {
	Key   string
	Value string
}

// EnvVars is an ordered set of variable assignments. Keys are unique; order is
// the order the keys were first set and is kept on disk so that generated
// commands are stable.
type EnvVars []EnvVar

// Get returns the value for key.
func (v EnvVars) Get(key string) (string, bool) {
	for _, ev := range v {
		if ev.Key == key {
			return ev.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing key in place or appends a new one.
func (v *EnvVars) Set(key, value string) {
	for i := range *v {
		if (*v)[i].Key == key {
			(*v)[i].Value = value
			return
		}
	}
	*v = append(*v, EnvVar{Key: key, Value: value})
}

// Map returns the variables as a plain map.
func (v EnvVars) Map() map[string]string {
	m := make(map[string]string, len(v))
	for _, ev := range v {
		m[ev.Key] = ev.Value
	}
	return m
}

// MarshalYAML writes the variables as a mapping in stored order.
func (v EnvVars) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, ev := range v {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ev.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ev.Value},
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping and keeps the document order.
func (v *EnvVars) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("env_vars: expected a mapping, got %s", node.ShortTag())
	}
	out := make(EnvVars, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key, value string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("env_vars key: %w", err)
		}
		valNode := node.Content[i+1]
		if valNode.ShortTag() != "!!null" {
			if err := valNode.Decode(&value); err != nil {
				return fmt.Errorf("env_vars[%s]: %w", key, err)
			}
		}
		out.Set(key, value)
	}
	*v = out
	return nil
}

// MarshalJSON writes a JSON object in stored order.
func (v EnvVars) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ev := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(ev.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(ev.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping key order.
func (v *EnvVars) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*v = EnvVars{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("env_vars: expected an object")
	}
	out := EnvVars{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := kt.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("env_vars[%s]: %w", key, err)
		}
		out.Set(key, value)
	}
	*v = out
	return nil
}
