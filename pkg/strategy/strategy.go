// Package strategy defines the declarative strategy document: a YAML
// description of entry conditions, exit rules and filters that compiles into
// the engine's condition and risk inputs.
package strategy

import (
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EntryCondition is one condition line in a strategy document. Indicator is
// either a label from the mapping table (e.g. "bb_upper") or a module id.
// Numeric comparisons set value; state comparisons set label instead.
type EntryCondition struct {
	Indicator string         `yaml:"indicator" json:"indicator" validate:"required" jsonschema:"title=Indicator,description=Indicator label or module id"`
	Config    map[string]any `yaml:"config,omitempty" json:"config,omitempty" jsonschema:"title=Config,description=Module parameter overrides"`
	Operator  string         `yaml:"operator" json:"operator" validate:"required" jsonschema:"title=Operator"`
	Value     *float64       `yaml:"value,omitempty" json:"value,omitempty" jsonschema:"title=Value,description=Numeric threshold"`
	Label     string         `yaml:"label,omitempty" json:"label,omitempty" jsonschema:"title=Label,description=Categorical threshold such as bullish"`
	Column    string         `yaml:"column,omitempty" json:"column,omitempty" jsonschema:"title=Column,description=Explicit output column"`
}

// Definition is a complete strategy document.
type Definition struct {
	Name      string          `yaml:"name" json:"name" validate:"required" jsonschema:"title=Name"`
	Symbol    string          `yaml:"symbol" json:"symbol" validate:"required" jsonschema:"title=Symbol"`
	Timeframe string          `yaml:"timeframe" json:"timeframe" jsonschema:"title=Timeframe,default=15m"`
	Direction types.Direction `yaml:"direction" json:"direction" validate:"required,oneof=LONG SHORT" jsonschema:"title=Direction"`

	EntryConditions []EntryCondition `yaml:"entry_conditions" json:"entry_conditions" validate:"required,min=1,dive" jsonschema:"title=Entry Conditions"`

	TakeProfitR float64 `yaml:"tp_r" json:"tp_r" validate:"gt=0" jsonschema:"title=Take Profit R"`
	StopLossR   float64 `yaml:"sl_r" json:"sl_r" validate:"gt=0" jsonschema:"title=Stop Loss R"`
	RiskPct     float64 `yaml:"risk_pct" json:"risk_pct" validate:"gt=0,lte=5" jsonschema:"title=Risk Percent"`

	// Session restricts entries to one intraday session window.
	Session string `yaml:"session,omitempty" json:"session,omitempty" validate:"omitempty,oneof=tokyo london newyork Tokyo London NY" jsonschema:"title=Session"`

	// RiskColumn names a structure-level column for the risk unit.
	RiskColumn string `yaml:"risk_column,omitempty" json:"risk_column,omitempty" jsonschema:"title=Risk Column"`

	TieBreak types.TieBreak `yaml:"tie_break,omitempty" json:"tie_break,omitempty" validate:"omitempty,oneof=stop_first target_first" jsonschema:"title=Tie Break"`
}

var validate = validator.New()

// Parse decodes and validates a strategy document.
func Parse(content []byte) (*Definition, error) {
	def := Definition{
		Timeframe: "15m",
	}

	if err := yaml.Unmarshal(content, &def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStrategy, "Parse: invalid YAML", err)
	}

	if err := validate.Struct(&def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStrategy, "Parse: invalid strategy", err)
	}

	return &def, nil
}

// Compile turns the document into the engine's condition list and risk
// parameters. A session filter becomes one extra kill_zones condition, so
// the engine needs no session concept of its own.
func (d *Definition) Compile() ([]types.Condition, types.RiskParams, error) {
	conditions := make([]types.Condition, 0, len(d.EntryConditions)+1)

	for i, entry := range d.EntryConditions {
		cond, err := compileEntry(entry)
		if err != nil {
			return nil, types.RiskParams{}, errors.Wrapf(errors.ErrCodeInvalidStrategy, err, "Compile: condition %d", i)
		}

		conditions = append(conditions, cond)
	}

	if d.Session != "" {
		session, err := sessionLabel(d.Session)
		if err != nil {
			return nil, types.RiskParams{}, err
		}

		conditions = append(conditions, types.Condition{
			Module:     types.ModuleIDKillZones,
			Operator:   types.OperatorEqual,
			Threshold:  types.LabelThreshold(session),
			ColumnHint: optional.Some("kill_zones_session"),
		})
	}

	risk := types.RiskParams{
		Direction:   d.Direction,
		StopLossR:   d.StopLossR,
		TakeProfitR: d.TakeProfitR,
		RiskPct:     d.RiskPct,
		TieBreak:    d.TieBreak,
	}
	if d.RiskColumn != "" {
		risk.RiskColumn = optional.Some(d.RiskColumn)
	}

	return conditions, risk, nil
}

func compileEntry(entry EntryCondition) (types.Condition, error) {
	binding, err := resolveLabel(entry.Indicator)
	if err != nil {
		return types.Condition{}, err
	}

	operator := types.Operator(entry.Operator)
	if !operator.IsValid() {
		return types.Condition{}, errors.Newf(errors.ErrCodeUnknownOperator, "unknown operator %q", entry.Operator)
	}

	var threshold types.Threshold

	switch {
	case entry.Label != "" && entry.Value != nil:
		return types.Condition{}, errors.New(errors.ErrCodeInvalidThreshold, "condition sets both value and label")
	case entry.Label != "":
		threshold = types.LabelThreshold(entry.Label)
	case entry.Value != nil:
		threshold = types.NumberThreshold(*entry.Value)
	default:
		return types.Condition{}, errors.New(errors.ErrCodeInvalidThreshold, "condition needs a value or a label")
	}

	// Document config overrides the binding presets.
	config := make(map[string]any, len(binding.config)+len(entry.Config))
	for k, v := range binding.config {
		config[k] = v
	}

	for k, v := range entry.Config {
		config[k] = v
	}

	hint := binding.column
	if entry.Column != "" {
		hint = optional.Some(entry.Column)
	}

	return types.Condition{
		Module:     binding.module,
		Config:     config,
		Operator:   operator,
		Threshold:  threshold,
		ColumnHint: hint,
	}, nil
}

func sessionLabel(session string) (string, error) {
	switch strings.ToLower(session) {
	case "tokyo":
		return "tokyo", nil
	case "london":
		return "london", nil
	case "ny", "newyork", "new_york":
		return "newyork", nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidStrategy, "unknown session %q", session)
	}
}

// GenerateSchemaJSON exports the JSON schema of the strategy document.
func GenerateSchemaJSON() (string, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
	}

	schema := reflector.Reflect(&Definition{})
	schema.Title = "strategy-definition"
	schema.Description = "Declarative backtest strategy document"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
