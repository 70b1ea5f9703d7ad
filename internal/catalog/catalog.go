// Package catalog is the fixed registry of strategy building blocks. The
// graph model and the serialization layer look everything up here, so adding
// a node kind is a change to this package only.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Kind string

// Kind values double as the persisted node type tags, so they match the
// documents the canvas editor writes.
const (
	KindPrice  Kind = "priceNode"
	KindRSI    Kind = "rsiNode"
	KindSMA    Kind = "smaNode"
	KindAction Kind = "actionNode"
)

const (
	PortIn  = "in"
	PortOut = "out"
)

const (
	ActionBuy  = "Buy"
	ActionSell = "Sell"
)

const (
	DefaultTicker    = "SPY"
	DefaultRSIPeriod = 14
	DefaultSMAPeriod = 200
	MinPeriod        = 1
	MaxPeriod        = 999
)

// Tickers is the fixed tradable-symbol set offered by the price node.
var Tickers = []string{"SPY", "QQQ", "AAPL", "MSFT", "NVDA", "AMZN", "META", "GOOGL"}

var Actions = []string{ActionBuy, ActionSell}

var (
	ErrUnknownKind   = errors.New("unknown node kind")
	ErrInvalidConfig = errors.New("invalid node config")
)

// Config is the tagged union of per-kind node configurations.
type Config interface {
	ConfigKind() Kind
}

type PriceConfig struct {
	Ticker string `json:"ticker"`
}

func (PriceConfig) ConfigKind() Kind { return KindPrice }

type RSIConfig struct {
	Period int `json:"period"`
}

func (RSIConfig) ConfigKind() Kind { return KindRSI }

type SMAConfig struct {
	Period int `json:"period"`
}

func (SMAConfig) ConfigKind() Kind { return KindSMA }

type ActionConfig struct {
	Action string `json:"actionType"`
}

func (ActionConfig) ConfigKind() Kind { return KindAction }

// FieldSchema describes one configuration field for the rendering layer.
type FieldSchema struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"` // "int" or "enum"
	Enum    []string `json:"enum,omitempty"`
	Min     int      `json:"min,omitempty"`
	Max     int      `json:"max,omitempty"`
	Default any      `json:"default"`
}

type Descriptor struct {
	Kind          Kind          `json:"kind"`
	InputPorts    []string      `json:"input_ports"`
	OutputPorts   []string      `json:"output_ports"`
	DefaultConfig Config        `json:"default_config"`
	ConfigSchema  []FieldSchema `json:"config_schema"`
}

type entry struct {
	inputs  []string
	outputs []string
	schema  []FieldSchema
}

var registry = map[Kind]entry{
	KindPrice: {
		outputs: []string{PortOut},
		schema: []FieldSchema{
			{Name: "ticker", Type: "enum", Enum: Tickers, Default: DefaultTicker},
		},
	},
	KindRSI: {
		inputs:  []string{PortIn},
		outputs: []string{PortOut},
		schema: []FieldSchema{
			{Name: "period", Type: "int", Min: MinPeriod, Max: MaxPeriod, Default: DefaultRSIPeriod},
		},
	},
	KindSMA: {
		inputs:  []string{PortIn},
		outputs: []string{PortOut},
		schema: []FieldSchema{
			{Name: "period", Type: "int", Min: MinPeriod, Max: MaxPeriod, Default: DefaultSMAPeriod},
		},
	},
	KindAction: {
		inputs: []string{PortIn},
		schema: []FieldSchema{
			{Name: "actionType", Type: "enum", Enum: Actions, Default: ActionBuy},
		},
	},
}

// Kinds returns every registered kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindPrice, KindRSI, KindSMA, KindAction}
}

func Known(kind Kind) bool {
	_, ok := registry[kind]
	return ok
}

func Describe(kind Kind) (Descriptor, error) {
	e, ok := registry[kind]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	def, err := DefaultConfig(kind)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{
		Kind:          kind,
		InputPorts:    append([]string(nil), e.inputs...),
		OutputPorts:   append([]string(nil), e.outputs...),
		DefaultConfig: def,
		ConfigSchema:  append([]FieldSchema(nil), e.schema...),
	}, nil
}

func DefaultConfig(kind Kind) (Config, error) {
	switch kind {
	case KindPrice:
		return PriceConfig{Ticker: DefaultTicker}, nil
	case KindRSI:
		return RSIConfig{Period: DefaultRSIPeriod}, nil
	case KindSMA:
		return SMAConfig{Period: DefaultSMAPeriod}, nil
	case KindAction:
		return ActionConfig{Action: ActionBuy}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// MergeConfig lays partial string-keyed fields over base and normalizes the
// result. Out-of-range periods clamp to the nearest bound; unparseable or
// out-of-set values fall back to the field default (the editor is forgiving).
// Only unknown field names are rejected.
func MergeConfig(kind Kind, base Config, partial map[string]any) (Config, error) {
	if base == nil || base.ConfigKind() != kind {
		def, err := DefaultConfig(kind)
		if err != nil {
			return nil, err
		}
		base = def
	}
	for name := range partial {
		if !knownField(kind, name) {
			return nil, fmt.Errorf("%w: kind %q has no field %q", ErrInvalidConfig, kind, name)
		}
	}
	switch kind {
	case KindPrice:
		cfg := base.(PriceConfig)
		if v, ok := partial["ticker"]; ok {
			cfg.Ticker = enumField(v, Tickers, DefaultTicker)
		}
		return cfg, nil
	case KindRSI:
		cfg := base.(RSIConfig)
		if v, ok := partial["period"]; ok {
			cfg.Period = intField(v, DefaultRSIPeriod, MinPeriod, MaxPeriod)
		}
		return cfg, nil
	case KindSMA:
		cfg := base.(SMAConfig)
		if v, ok := partial["period"]; ok {
			cfg.Period = intField(v, DefaultSMAPeriod, MinPeriod, MaxPeriod)
		}
		return cfg, nil
	case KindAction:
		cfg := base.(ActionConfig)
		if v, ok := partial["actionType"]; ok {
			cfg.Action = enumField(v, Actions, ActionBuy)
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// ParseConfig builds a config from raw document fields: defaults first, then
// the raw fields merged over them. Unknown fields in persisted documents are
// tolerated here (older editors stored presentation extras alongside config).
func ParseConfig(kind Kind, raw map[string]any) (Config, error) {
	def, err := DefaultConfig(kind)
	if err != nil {
		return nil, err
	}
	filtered := make(map[string]any, len(raw))
	for name, v := range raw {
		if knownField(kind, name) {
			filtered[name] = v
		}
	}
	return MergeConfig(kind, def, filtered)
}

func knownField(kind Kind, name string) bool {
	e, ok := registry[kind]
	if !ok {
		return false
	}
	for _, f := range e.schema {
		if f.Name == name {
			return true
		}
	}
	return false
}

func intField(v any, def, min, max int) int {
	n, ok := toInt(v)
	if !ok {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case float32:
		return int(t), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.Atoi(s); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func enumField(v any, allowed []string, def string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if a == s {
			return s
		}
	}
	return def
}
