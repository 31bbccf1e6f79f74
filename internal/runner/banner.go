package runner

import "github.com/projectdiscovery/gologger"

var banner = (`
 _                        _
| |_ _ __ __ _ _ __  ___ (_)_ __   ___ ___ _ __
| __| '__/ _' | '_ \/ __|| | '_ \ / __/ _ \ '__|
| |_| | | (_| | | | \__ \| | | | | (_|  __/ |
 \__|_|  \__,_|_| |_|___/|_|_| |_|\___\___|_|
`)

var version = "v0.0.1"

// showBanner prints the driver's banner, the way internal/runner/banner.go
// does for its own tool.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\tminimal subsequential transducer %s\n\n", version)
}
