// Package chat implements the engine's message log and the "/view N"
// render-distance command described in the engine's external interfaces:
// a fixed-size ring buffer of recent lines, a bounded input buffer, and a
// command dispatcher that validates input before touching any shared
// state, matching the teacher's config.go style (package-level
// mutex-guarded state with Get/Set accessors) rather than introducing a
// full parser for commands the spec explicitly keeps out of scope
// (builder geometry commands like /cube or /sphere).
package chat

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"voxelforge/internal/config"
)

// MaxMessages bounds how many chat lines are visible at once; older lines
// scroll off the ring buffer.
const MaxMessages = 4

// MaxTextLength bounds the chat input buffer.
const MaxTextLength = 256

type state struct {
	mu       sync.Mutex
	messages []string
}

var global = &state{}

// Push appends a line to the message ring buffer, dropping the oldest line
// once more than MaxMessages are held.
func Push(line string) {
	if len(line) > MaxTextLength {
		line = line[:MaxTextLength]
	}
	global.mu.Lock()
	defer global.mu.Unlock()
	global.messages = append(global.messages, line)
	if len(global.messages) > MaxMessages {
		global.messages = global.messages[len(global.messages)-MaxMessages:]
	}
}

// Visible returns the currently buffered lines, oldest first.
func Visible() []string {
	global.mu.Lock()
	defer global.mu.Unlock()
	out := make([]string, len(global.messages))
	copy(out, global.messages)
	return out
}

// Clear empties the message buffer, used by tests and a fresh session.
func Clear() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.messages = nil
}

// minViewDistance and maxViewDistance bound the "/view N" command. Distinct
// from config.SetRenderDistance's own [1,50] clamp: that clamp exists to
// keep the renderer from being handed nonsense by internal callers, while
// this range is the player-facing contract for the chat command and must
// reject out-of-range input outright rather than silently clamp it.
const (
	minViewDistance = 1
	maxViewDistance = 24
)

// Submit processes one line of chat input. Lines starting with "/" are
// parsed as commands; anything else is appended to the log verbatim, the
// way a plain chat message would be. Submit never panics on malformed
// input — an unrecognized or malformed command is echoed back as an error
// line instead.
func Submit(line string) {
	if strings.HasPrefix(line, "/") {
		runCommand(line)
		return
	}
	Push(line)
}

func runCommand(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "/view":
		runView(fields[1:])
	default:
		Push(fmt.Sprintf("Unknown command: %s", fields[0]))
	}
}

// runView implements "/view N": sets the render distance in chunks when N
// is a valid integer within [minViewDistance, maxViewDistance], and leaves
// the current render distance untouched otherwise, reporting the exact
// rejection message a player would see.
func runView(args []string) {
	if len(args) != 1 {
		Push("Usage: /view <1-24>")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < minViewDistance || n > maxViewDistance {
		Push("Viewing distance must be between 1 and 24.")
		return
	}
	config.SetRenderDistance(n)
	Push(fmt.Sprintf("Viewing distance set to %d.", n))
}
