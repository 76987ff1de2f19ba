package config

// Config used to store all information from the
// projgen.yaml configuration file.
type Config struct {
	CliConfig *CliOpts `mapstructure:"projgen" yaml:"projgen"`
}

// CliOpts stores information about projgen configuration.
// Filled in when parsing the projgen.yaml configuration file.
//
// projgen.yaml file format:
// projgen:
//   projects: path or [path, ...]
//   output: path
//   template_suffix: .j2
//   context_file: template.yaml
//   clean_models: bool
//   log:
//     file: path
//     maxsize: num (MB)
//     maxage: num (Days)
//     maxbackups: num

// LogOpts is used to store log file options.
type LogOpts struct {
	// File is a path to the log file. Logging to a file is disabled if empty.
	File string `mapstructure:"file" yaml:"file"`
	// MaxSize is a maximum size in MB of the log file before
	// it gets rotated.
	MaxSize int `mapstructure:"maxsize" yaml:"maxsize"`
	// MaxAge is the maximum number of days to retain old log files
	// based on the timestamp encoded in their filename.
	MaxAge int `mapstructure:"maxage" yaml:"maxage"`
	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int `mapstructure:"maxbackups" yaml:"maxbackups"`
}

// CliOpts is used to store projects and rendering options.
type CliOpts struct {
	// Projects is a set of directories to search projects in.
	Projects FieldStringArrayType `mapstructure:"projects" yaml:"projects"`
	// Output is the output root. It is purged on every render.
	Output string `mapstructure:"output" yaml:"output"`
	// TemplateSuffix marks files whose content is rendered.
	// It is stripped from the output file name.
	TemplateSuffix string `mapstructure:"template_suffix" yaml:"template_suffix"`
	// ContextFile is the name of the file with rendering contexts inside a project.
	// Files with this name are never copied to the output.
	ContextFile string `mapstructure:"context_file" yaml:"context_file"`
	// CleanModels enables replacing of each model directory before it is rendered.
	CleanModels bool `mapstructure:"clean_models" yaml:"clean_models"`
	// Log contains log file options.
	Log *LogOpts `mapstructure:"log" yaml:"log"`
}
