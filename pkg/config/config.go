package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel      string  // sets the log level (zap log level values)
	LogFormat     string  // text vs json
	ProfileFile   string  // path to the analysis profile (yaml)
	CurveFile     string  // path to the reference curve (csv with x,y)
	Driver        string  // driver name for runs without a profile mapping
	Output        string  // output format of analyze commands (text, json)
	CircuitLength float64 // measured circuit length, 0: length of the reference curve
	Precision     int32   // decimal places of reported values
)
