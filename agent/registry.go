// Package agent builds the available agents from textual configurations such as
// "qlearning:epsilon=0.1,gamma=0.2,model=models/q".
package agent

import (
	"strings"
	"time"

	"uno/agent/qlearning"
	"uno/agent/strategic"
	"uno/engine"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Factory creates an agent from decoded parameters. Values are strings when they
// come from a configuration string and typed when they come from a YAML file.
type Factory func(params map[string]any) (engine.Agent, error)

const (
	Random    = "random"
	QLearning = "qlearning"
	Strategic = "strategic"
)

var factories = map[string]Factory{
	Random:    newRandom,
	QLearning: newQLearning,
	Strategic: newStrategic,
}

// Register makes a factory available under kind, replacing any existing one.
func Register(kind string, factory Factory) {
	factories[kind] = factory
}

// Kinds lists the registered agent kinds.
func Kinds() []string {
	kinds := make([]string, 0, len(factories))
	for kind := range factories {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// New creates an agent from "<kind>[:key=value,...]". A key without a value is
// read as true.
func New(config string) (engine.Agent, error) {
	kind, params, _ := strings.Cut(config, ":")
	return FromMap(kind, splitParams(params))
}

// NewSeeded creates an agent like New, seeding its random generator with seed
// unless the configuration names a seed itself.
func NewSeeded(config string, seed uint64) (engine.Agent, error) {
	kind, params, _ := strings.Cut(config, ":")
	values := splitParams(params)
	if _, ok := values["seed"]; !ok {
		values["seed"] = seed
	}
	return FromMap(kind, values)
}

// FromMap creates an agent of the given kind.
func FromMap(kind string, params map[string]any) (engine.Agent, error) {
	factory, ok := factories[kind]
	if !ok {
		return nil, errors.Errorf("unknown agent %q, want one of %v", kind, Kinds())
	}
	agent, err := factory(params)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to create agent %q", kind)
	}
	return agent, nil
}

func splitParams(config string) map[string]any {
	params := make(map[string]any)
	if config == "" {
		return params
	}
	for _, part := range strings.Split(config, ",") {
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			value = "true"
		}
		params[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return params
}

// decode fills cfg from params. Slices are written as "a;b;c" in configuration
// strings.
func decode(params map[string]any, cfg any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(";"),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}
	return errors.Wrap(decoder.Decode(params), "failed to decode parameters")
}

type randomConfig struct {
	Seed uint64 `mapstructure:"seed"`
}

func newRandom(params map[string]any) (engine.Agent, error) {
	var cfg randomConfig
	if err := decode(params, &cfg); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	return engine.NewRandomAgent(rand.New(rand.NewSource(cfg.Seed))), nil
}

func newQLearning(params map[string]any) (engine.Agent, error) {
	cfg := qlearning.DefaultConfig()
	if err := decode(params, &cfg); err != nil {
		return nil, err
	}
	return qlearning.New(cfg)
}

func newStrategic(params map[string]any) (engine.Agent, error) {
	cfg := strategic.DefaultConfig()
	if _, ok := params["parameters"]; ok {
		cfg.Parameters = nil
	}
	if err := decode(params, &cfg); err != nil {
		return nil, err
	}
	return strategic.New(cfg)
}
