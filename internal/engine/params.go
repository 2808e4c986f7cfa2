package engine

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/internal/version"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Params holds the periods of every indicator the engine can compute. The zero value is
// not usable; start from DefaultParams.
type Params struct {
	Version      string `yaml:"version,omitempty" json:"version,omitempty" jsonschema:"title=Version,description=Params schema version checked against the engine version"`
	EMAPeriods   []int  `yaml:"ema_periods" json:"ema_periods" jsonschema:"title=EMA Periods,description=One EMA series per period keyed ema<period>,minItems=1" validate:"required,min=1,dive,gt=0"`
	SMAPeriods   []int  `yaml:"sma_periods" json:"sma_periods" jsonschema:"title=SMA Periods,description=One SMA series per period keyed sma<period>,minItems=1" validate:"required,min=1,dive,gt=0"`
	RSIPeriod    int    `yaml:"rsi_period" json:"rsi_period" jsonschema:"title=RSI Period,minimum=1,default=14" validate:"gt=0"`
	StochK       int    `yaml:"stoch_k" json:"stoch_k" jsonschema:"title=Stochastic %K Period,minimum=1,default=14" validate:"gt=0"`
	StochD       int    `yaml:"stoch_d" json:"stoch_d" jsonschema:"title=Stochastic %D Period,minimum=1,default=3" validate:"gt=0"`
	MACDFast     int    `yaml:"macd_fast" json:"macd_fast" jsonschema:"title=MACD Fast Period,minimum=1,default=12" validate:"gt=0"`
	MACDSlow     int    `yaml:"macd_slow" json:"macd_slow" jsonschema:"title=MACD Slow Period,minimum=1,default=26" validate:"gt=0"`
	MACDSignal   int    `yaml:"macd_signal" json:"macd_signal" jsonschema:"title=MACD Signal Period,minimum=1,default=9" validate:"gt=0"`
	PivotWindow  int    `yaml:"pivot_window" json:"pivot_window" jsonschema:"title=Pivot Window,description=Bars on each side of a swing point,minimum=1,default=5" validate:"gt=0"`
	PivotChannel int    `yaml:"pivot_channel" json:"pivot_channel" jsonschema:"title=Pivot Channel,description=Length of the rolling high/low channel,minimum=1,default=20" validate:"gt=0"`
	Precision    int    `yaml:"precision" json:"precision" jsonschema:"title=Precision,description=Decimal places of output rounding (0 disables rounding),minimum=0,maximum=12,default=6" validate:"gte=0,lte=12"`
}

// DefaultParams returns the standard indicator periods.
func DefaultParams() Params {
	return Params{
		Version:      "",
		EMAPeriods:   []int{20, 50},
		SMAPeriods:   []int{20},
		RSIPeriod:    14,
		StochK:       14,
		StochD:       3,
		MACDFast:     12,
		MACDSlow:     26,
		MACDSignal:   9,
		PivotWindow:  5,
		PivotChannel: 20,
		Precision:    6,
	}
}

// Validate checks that every period is positive, that the MACD fast period is shorter
// than the slow one and, when set, that Version is readable by this engine.
func (p Params) Validate() error {
	validate := validator.New()
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid indicator params", err)
	}

	if p.MACDFast >= p.MACDSlow {
		return errors.Newf(errors.ErrCodeInvalidParameter, "macd_fast (%d) must be less than macd_slow (%d)", p.MACDFast, p.MACDSlow)
	}

	if p.Version != "" {
		if err := version.CheckParamsCompatibility(version.GetVersion(), p.Version); err != nil {
			return err
		}
	}

	return nil
}

// Args returns the Config arguments of the indicator of the given kind.
func (p Params) Args(kind types.IndicatorType) []any {
	switch kind {
	case types.IndicatorTypeEMA:
		return intArgs(p.EMAPeriods)
	case types.IndicatorTypeSMA:
		return intArgs(p.SMAPeriods)
	case types.IndicatorTypeRSI:
		return []any{p.RSIPeriod}
	case types.IndicatorTypeStochastic:
		return []any{p.StochK, p.StochD}
	case types.IndicatorTypeMACD:
		return []any{p.MACDFast, p.MACDSlow, p.MACDSignal}
	case types.IndicatorTypePivot:
		return []any{p.PivotWindow, p.PivotChannel}
	default:
		return nil
	}
}

func intArgs(values []int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

// LoadParams reads a YAML params file. Keys that are absent keep their default value;
// unknown keys are rejected.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read params file %s", path)
	}

	return ParseParams(data)
}

// ParseParams decodes YAML params on top of DefaultParams and validates the result.
// An empty document yields the defaults.
func ParseParams(data []byte) (Params, error) {
	params := DefaultParams()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&params); err != nil && err != io.EOF {
		return Params{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse params", err)
	}

	if err := params.Validate(); err != nil {
		return Params{}, err
	}

	return params, nil
}

// ParseParamsJSON decodes a JSON params override the same way ParseParams does.
func ParseParamsJSON(data []byte) (Params, error) {
	params := DefaultParams()

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&params); err != nil && err != io.EOF {
		return Params{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse params", err)
	}

	if err := params.Validate(); err != nil {
		return Params{}, err
	}

	return params, nil
}

// GenerateSchema generates a JSON schema for Params.
func (p Params) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	schema := reflector.Reflect(&p)
	schema.Title = "indicator-params"
	schema.Description = "Indicator periods and output precision"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates the indented JSON schema for Params.
func (p Params) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(p.GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeUnknown, "failed to marshal params schema", err)
	}

	return string(schemaBytes), nil
}
