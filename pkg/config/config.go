// Package config holds the settings of an apigraph run.
//
// Settings come from [Default], optionally overlaid by a TOML file with
// [Load], then by command-line flags. [Config.Validate] checks the result
// before any document is read.
//
// Example file:
//
//	sentinel_tag    = "misc"
//	output_dir      = "docs/graphs"
//	dark            = true
//	formats         = ["dot", "svg"]
package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/apigraph/pkg/errors"
)

// Output formats for graph artifacts.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// Config is the complete configuration of a run.
type Config struct {
	// SentinelTag groups operations that declare no tags.
	SentinelTag string `toml:"sentinel_tag" validate:"required"`
	// SchemaMarker identifies pointers into the schema components area.
	SchemaMarker string `toml:"schema_marker" validate:"required"`
	// ResponseMarker identifies pointers into the response components area.
	ResponseMarker string `toml:"response_marker" validate:"required,nefield=SchemaMarker"`

	// OutputDir receives one graph artifact per tag and format.
	OutputDir string `toml:"output_dir" validate:"required"`
	// Dark selects the dark palette.
	Dark bool `toml:"dark"`
	// Formats lists the artifact formats to write for each tag.
	Formats []string `toml:"formats" validate:"required,min=1,dive,oneof=dot svg"`

	// ReportOutput is the CSV file written by the report command.
	ReportOutput string `toml:"report_output" validate:"required"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SentinelTag:    "untagged",
		SchemaMarker:   "#/components/schemas/",
		ResponseMarker: "#/components/responses/",
		OutputDir:      "visuals",
		Formats:        []string{FormatDOT},
		ReportOutput:   "endpoint_methods.csv",
	}
}

// Load reads a TOML file on top of [Default]. Keys absent from the file
// keep their default; unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.New(errors.ErrCodeInvalidConfig, "%s", formatValidationError(err))
	}
	return nil
}

// WantsFormat reports whether format is among the configured formats.
func (c Config) WantsFormat(format string) bool {
	for _, f := range c.Formats {
		if f == format {
			return true
		}
	}
	return false
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: %q must be one of [%s]", fe.Namespace(), fe.Value(), fe.Param()))
		case "nefield":
			msgs = append(msgs, fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
