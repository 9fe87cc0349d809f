// Package commands turns chat messages into playback commands and runs them.
package commands

import "strings"

// Command is one of the recognized commands; the set is closed to this package
type Command interface {
	isCommand()
}

// Play starts playing URL in the issuer's voice channel
type Play struct {
	URL string
}

// Pause pauses the active run
type Pause struct{}

// Resume resumes a paused run
type Resume struct{}

// Stop ends playback and leaves the channel
type Stop struct{}

// Seek jumps to Target, absolute or relative with a leading + or -
type Seek struct {
	Target string
}

// Status reports the current position
type Status struct{}

// Help lists the commands
type Help struct{}

// History lists recent plays in the guild, or forgets them when Clear is set
type History struct {
	Clear bool
}

func (Play) isCommand()    {}
func (Pause) isCommand()   {}
func (Resume) isCommand()  {}
func (Stop) isCommand()    {}
func (Seek) isCommand()    {}
func (Status) isCommand()  {}
func (Help) isCommand()    {}
func (History) isCommand() {}

// Parse reads a command from message content. ok is false for anything
// that is not a prefixed, recognized command name.
func Parse(prefix, content string) (cmd Command, ok bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 || prefix == "" || !strings.HasPrefix(fields[0], prefix) {
		return nil, false
	}

	name := strings.ToLower(strings.TrimPrefix(fields[0], prefix))
	args := fields[1:]

	switch name {
	case "play":
		return Play{URL: unwrapLink(arg(args, 0))}, true
	case "pause", "p":
		return Pause{}, true
	case "resume", "r":
		return Resume{}, true
	case "stop", "s":
		return Stop{}, true
	case "seek":
		return Seek{Target: arg(args, 0)}, true
	case "status":
		return Status{}, true
	case "help":
		return Help{}, true
	case "history":
		return History{Clear: strings.EqualFold(arg(args, 0), "clear")}, true
	default:
		return nil, false
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// unwrapLink strips the angle brackets Discord users put around links to hide embeds
func unwrapLink(s string) string {
	if len(s) > 2 && strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		return s[1 : len(s)-1]
	}
	return s
}
