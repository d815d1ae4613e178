package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mschloeman/glitchart/pkg/glitch"
)

// ParamType is a small enum for parameter types used in command metadata.
type ParamType string

const (
	ParamTypeInt     ParamType = "int"
	ParamTypeFloat   ParamType = "float"
	ParamTypeString  ParamType = "string"
	ParamTypeEnum    ParamType = "enum"
	ParamTypePercent ParamType = "percent"
)

// ValidationRule is a machine-friendly representation of the constraints a UI
// can use to validate input before invoking a command.
type ValidationRule struct {
	Type     ParamType
	Required bool
	Hint     string
	Example  string
}

// MetaStore indexes the glitch command registry by name.
type MetaStore struct {
	Commands []glitch.CommandSpec
	byName   map[string]glitch.CommandSpec
}

// NewMetaStore builds a MetaStore from a command list.
func NewMetaStore(cmds []glitch.CommandSpec) *MetaStore {
	m := &MetaStore{Commands: cmds, byName: make(map[string]glitch.CommandSpec, len(cmds))}
	for _, c := range cmds {
		m.byName[c.Name] = c
	}
	return m
}

// Lookup returns the command spec for name.
func (m *MetaStore) Lookup(name string) (glitch.CommandSpec, bool) {
	c, ok := m.byName[name]
	return c, ok
}

// GetTooltip returns the tooltip string for a command.
func (m *MetaStore) GetTooltip(name string) (string, error) {
	c, ok := m.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown command: %s", name)
	}
	return GenerateTooltip(c), nil
}

// GenerateTooltip produces a help string from a command spec: description,
// usage line and a parameter list.
func GenerateTooltip(c glitch.CommandSpec) string {
	var sb strings.Builder
	if c.Description != "" {
		sb.WriteString(c.Description)
	} else {
		sb.WriteString("No description")
	}
	if c.Usage != "" {
		sb.WriteString("\nUsage: " + c.Usage)
	}
	if len(c.Args) == 0 {
		return sb.String()
	}
	sb.WriteString("\nParameters:\n")
	for _, a := range c.Args {
		req := "optional"
		if a.Required {
			req = "required"
		}
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)", a.Name, a.Type, req))
		if a.Description != "" {
			sb.WriteString(" — " + a.Description)
		}
		if a.Default != "" {
			sb.WriteString(" (default: " + a.Default + ")")
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// GenerateValidationRules creates ValidationRule entries from a command spec.
func GenerateValidationRules(c glitch.CommandSpec) map[string]ValidationRule {
	rules := make(map[string]ValidationRule, len(c.Args))
	for _, a := range c.Args {
		var t ParamType
		switch strings.ToLower(a.Type) {
		case "int":
			t = ParamTypeInt
		case "float":
			t = ParamTypeFloat
		case "percent":
			t = ParamTypePercent
		case "enum":
			t = ParamTypeEnum
		default:
			t = ParamTypeString
		}
		rules[a.Name] = ValidationRule{Type: t, Required: a.Required, Hint: a.Description, Example: a.Default}
	}
	return rules
}

// NormalizeArgs validates the raw per-parameter inputs against a command's
// metadata and flattens them into the positional token list the engine
// expects. Optional string parameters (splitter and mods clauses) may contain
// several whitespace-separated tokens and are appended verbatim; an empty
// optional input contributes nothing.
func NormalizeArgs(store *MetaStore, cmdName string, raw []string) ([]string, error) {
	if store == nil {
		return nil, fmt.Errorf("metadata store is nil")
	}
	c, ok := store.byName[cmdName]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmdName)
	}
	rules := GenerateValidationRules(c)

	var out []string
	for i, a := range c.Args {
		var val string
		if i < len(raw) {
			val = strings.TrimSpace(raw[i])
		}
		if val == "" {
			if a.Required {
				return nil, fmt.Errorf("missing required parameter: %s", a.Name)
			}
			continue
		}
		vr := rules[a.Name]
		switch vr.Type {
		case ParamTypeInt:
			v, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected integer, got %q", a.Name, val)
			}
			out = append(out, strconv.FormatInt(v, 10))
		case ParamTypeFloat:
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return nil, fmt.Errorf("parameter %s: expected number, got %q", a.Name, val)
			}
			out = append(out, strconv.FormatFloat(f, 'f', -1, 64))
		case ParamTypePercent:
			// passed through as-is; the engine accepts both "0.4" and "40%"
			trimmed := strings.TrimSuffix(val, "%")
			if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
				return nil, fmt.Errorf("parameter %s: expected number or percent, got %q", a.Name, val)
			}
			out = append(out, val)
		case ParamTypeEnum:
			out = append(out, strings.ToLower(val))
		case ParamTypeString:
			// multi-token clauses like "threshold 0.2 0.8" or "mods 2 1 0.5"
			out = append(out, strings.Fields(val)...)
		default:
			return nil, fmt.Errorf("parameter %s: unsupported param type %q", a.Name, vr.Type)
		}
	}
	return out, nil
}
