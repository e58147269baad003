package conf

import "github.com/jessevdk/go-flags"

// Opts are the command-line flags accepted by the daemon entrypoint.
// Everything else is configured through the YAML file InitConfig loads;
// these flags only locate it and let an operator override the data
// directory without editing it.
type Opts struct {
	ConfigFile string `short:"c" long:"conf" description:"path to a YAML config file" default:""`
	DataDir    string `short:"d" long:"datadir" description:"directory for the backing UTXO store and logs" default:""`
}

// ParseFlags parses args (typically os.Args[1:]) into Opts.
func ParseFlags(args []string) (*Opts, error) {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return &opts, nil
}
