// keypulse is a terminal dashboard and CLI for typing telemetry.
//
// It reads account statistics from the hosted stats API (or the desktop
// client's local HTTP API when no key is configured), streams live
// keystroke rates from the client's plugin socket, and derives the
// mechanical side of typing: work, power, finger velocity, and how much
// candy a day of keystrokes burns.
//
// Running keypulse with no arguments launches the dashboard; see
// `keypulse --help` for the one-shot subcommands.
package main

import "gitlab.com/tinyland/lab/keypulse/cmd"

func main() {
	cmd.Execute()
}
