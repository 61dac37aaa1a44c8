package chart

// Argument axis types.
const (
	AxisContinuous = "continuous"
	AxisDiscrete   = "discrete"
	AxisDateTime   = "datetime"
)

// DefaultPane is the name of the pane created when none is configured.
const DefaultPane = "default"

// Margin is the space between the canvas edge and the plot area.
type Margin struct {
	Left   float64 `json:"left" yaml:"left" toml:"left"`
	Top    float64 `json:"top" yaml:"top" toml:"top"`
	Right  float64 `json:"right" yaml:"right" toml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom" toml:"bottom"`
}

// PaneConfig declares a pane. Panes share the plot area in proportion to
// their weight.
type PaneConfig struct {
	Name   string  `json:"name" yaml:"name" toml:"name"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty" toml:"weight,omitempty"`
}

// ArgumentAxisConfig declares the argument axis. Min and Max are numbers or
// dates depending on Type; unset bounds come from the series data.
type ArgumentAxisConfig struct {
	Type       string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Min        any      `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max        any      `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty" toml:"categories,omitempty"`
}

// ValueAxisConfig declares a value axis in a pane.
type ValueAxisConfig struct {
	Name string   `json:"name" yaml:"name" toml:"name"`
	Pane string   `json:"pane,omitempty" yaml:"pane,omitempty" toml:"pane,omitempty"`
	Min  *float64 `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Max  *float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`
}

// PointConfig is one data point.
type PointConfig struct {
	Argument any     `json:"argument" yaml:"argument" toml:"argument"`
	Value    float64 `json:"value" yaml:"value" toml:"value"`
}

// SeriesConfig declares a line series. Axis names its value axis; empty
// means the default value axis.
type SeriesConfig struct {
	Name   string        `json:"name" yaml:"name" toml:"name"`
	Axis   string        `json:"axis,omitempty" yaml:"axis,omitempty" toml:"axis,omitempty"`
	Color  string        `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Points []PointConfig `json:"points" yaml:"points" toml:"points"`
}

// Config describes a chart.
type Config struct {
	Width        float64            `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height       float64            `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Rotated      bool               `json:"rotated,omitempty" yaml:"rotated,omitempty" toml:"rotated,omitempty"`
	Margin       *Margin            `json:"margin,omitempty" yaml:"margin,omitempty" toml:"margin,omitempty"`
	PaneSpacing  *float64           `json:"paneSpacing,omitempty" yaml:"paneSpacing,omitempty" toml:"paneSpacing,omitempty"`
	Panes        []PaneConfig       `json:"panes,omitempty" yaml:"panes,omitempty" toml:"panes,omitempty"`
	ArgumentAxis ArgumentAxisConfig `json:"argumentAxis" yaml:"argumentAxis" toml:"argumentAxis"`
	ValueAxes    []ValueAxisConfig  `json:"valueAxes,omitempty" yaml:"valueAxes,omitempty" toml:"valueAxes,omitempty"`
	Series       []SeriesConfig     `json:"series,omitempty" yaml:"series,omitempty" toml:"series,omitempty"`
}

const (
	defaultWidth       = 800.0
	defaultHeight      = 400.0
	defaultMargin      = 40.0
	defaultPaneSpacing = 10.0
)

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.Margin == nil {
		c.Margin = &Margin{Left: defaultMargin, Top: defaultMargin, Right: defaultMargin, Bottom: defaultMargin}
	}
	if c.PaneSpacing == nil {
		sp := defaultPaneSpacing
		c.PaneSpacing = &sp
	}
	if len(c.Panes) == 0 {
		c.Panes = []PaneConfig{{Name: DefaultPane}}
	}
	if len(c.ValueAxes) == 0 {
		c.ValueAxes = []ValueAxisConfig{{}}
	}
	return c
}
