package engine

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
)

// BacktestEngineV1Config holds the engine guardrails and execution knobs.
// The limits exist so a mistyped strategy cannot silently turn into an
// unbounded computation; they are configuration errors, not runtime failures.
type BacktestEngineV1Config struct {
	// MaxCandles caps the series length a single run accepts.
	MaxCandles int `yaml:"max_candles" json:"max_candles" validate:"gt=0" jsonschema:"title=Max Candles,description=Maximum number of bars a run accepts,minimum=1"`
	// MaxConditions caps the number of entry conditions per strategy.
	MaxConditions int `yaml:"max_conditions" json:"max_conditions" validate:"gt=0" jsonschema:"title=Max Conditions,description=Maximum number of entry conditions,minimum=1"`
	// MaxPeriod caps any period-like module parameter.
	MaxPeriod int `yaml:"max_period" json:"max_period" validate:"gt=0" jsonschema:"title=Max Period,description=Maximum period parameter accepted by any module,minimum=1"`
	// Workers bounds the goroutines computing module columns. Zero or one
	// means sequential.
	Workers   int                        `yaml:"workers" json:"workers" validate:"gte=0" jsonschema:"title=Workers,description=Parallelism for module computation,minimum=0"`
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start of the backtest window"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end of the backtest window"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config.
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		MaxCandles    int        `yaml:"max_candles"`
		MaxConditions int        `yaml:"max_conditions"`
		MaxPeriod     int        `yaml:"max_period"`
		Workers       int        `yaml:"workers"`
		StartTime     *time.Time `yaml:"start_time"`
		EndTime       *time.Time `yaml:"end_time"`
	}

	config := Config{
		MaxCandles:    c.MaxCandles,
		MaxConditions: c.MaxConditions,
		MaxPeriod:     c.MaxPeriod,
		Workers:       c.Workers,
	}
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.MaxCandles = config.MaxCandles
	c.MaxConditions = config.MaxConditions
	c.MaxPeriod = config.MaxPeriod
	c.Workers = config.Workers

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config.
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config.
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// DefaultConfig returns a BacktestEngineV1Config with default limits.
func DefaultConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		MaxCandles:    1_000_000,
		MaxConditions: 20,
		MaxPeriod:     500,
		Workers:       0,
		StartTime:     optional.None[time.Time](),
		EndTime:       optional.None[time.Time](),
	}
}
