// hytale-rpc keeps a Discord Rich Presence in sync with Hytale.
//
// Usage:
//
//	hytale-rpc                - Start the background service (tray icon)
//	hytale-rpc run            - Same, explicit
//	hytale-rpc watch          - Print activity changes without Discord
//	hytale-rpc tail           - Follow the raw client log
//	hytale-rpc sessions       - List recorded play sessions
//	hytale-rpc completion     - Generate shell completion scripts
//
// Global flags:
//
//	--config <path>  - Config file (default: <user config dir>/hytale-rpc/config.yaml)
//	--verbose        - Enable debug logging
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
