// Package flagx helps the layered config loader parse its own command-line
// flags without tripping over flags owned by other stages. The client
// defines -a/-t/-d for connection settings and -c/-config for the JSON
// config file; each stage filters os.Args down to the flags it owns before
// handing them to a flag.FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns only the arguments belonging to the flags listed in
// keep, in their original order.
//
// Two shapes are recognized:
//  1. flag with a separate value:  -d /var/lib/apexfit
//  2. flag with an inline value:   -config=apexfit.json
//
// For the separate-value shape the following argument is kept as the value
// unless it starts with a dash, in which case the flag is kept bare.
func FilterArgs(args []string, keep []string) []string {
	wanted := make(map[string]struct{}, len(keep))
	for _, f := range keep {
		wanted[f] = struct{}{}
	}

	// Non-nil result keeps flag.FlagSet.Parse happy on the empty case.
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := wanted[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := wanted[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags extracts the JSON config file path given via -c or
// -config. Every other argument is ignored, so the main flag stage can
// define its own set without conflicts. Returns "" when neither flag is
// present.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
