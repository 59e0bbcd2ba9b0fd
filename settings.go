package hillchart

// Default settings, used when no explicit configuration exists.
const (
	DefaultHillColour  = "#cccccc"
	DefaultFontSize    = 14
	DefaultPointSize   = 10
	DefaultPointColour = "#000000"
)

// Settings is the per-render configuration. It is a plain value; every update
// resolves its own copy.
type Settings struct {
	Hill      HillSettings      `json:"hill"       cbor:"hill"       koanf:"hill"`
	DataPoint DataPointSettings `json:"data_point" cbor:"data_point" koanf:"data_point"`
}

// HillSettings configures the hill curve and its labels.
type HillSettings struct {
	Colour           string  `json:"colour"             cbor:"colour"             koanf:"colour"`
	FontSize         float64 `json:"font_size"          cbor:"font_size"          koanf:"font_size"`
	EnableMiddleLine bool    `json:"enable_middle_line" cbor:"enable_middle_line" koanf:"enable_middle_line"`
	AxisLabelUpper   bool    `json:"axis_label_upper"   cbor:"axis_label_upper"   koanf:"axis_label_upper"`
}

// DataPointSettings configures the markers of points that don't override
// them.
type DataPointSettings struct {
	DefaultSize   float64 `json:"default_size"   cbor:"default_size"   koanf:"default_size"`
	DefaultColour string  `json:"default_colour" cbor:"default_colour" koanf:"default_colour"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Hill: HillSettings{
			Colour:           DefaultHillColour,
			FontSize:         DefaultFontSize,
			EnableMiddleLine: true,
			AxisLabelUpper:   false,
		},
		DataPoint: DataPointSettings{
			DefaultSize:   DefaultPointSize,
			DefaultColour: DefaultPointColour,
		},
	}
}

// Resolve returns a copy of the settings with every missing field defaulted
// on its own. Booleans cannot be missing and are kept as-is.
func (s Settings) Resolve() Settings {
	if s.Hill.Colour == "" {
		s.Hill.Colour = DefaultHillColour
	}
	if !(s.Hill.FontSize > 0) {
		s.Hill.FontSize = DefaultFontSize
	}
	if !(s.DataPoint.DefaultSize > 0) {
		s.DataPoint.DefaultSize = DefaultPointSize
	}
	if s.DataPoint.DefaultColour == "" {
		s.DataPoint.DefaultColour = DefaultPointColour
	}
	return s
}
