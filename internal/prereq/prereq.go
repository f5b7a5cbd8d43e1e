// Package prereq checks the tools a NativeScript code-sharing workspace
// needs outside of forge-native itself.
package prereq

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/dosanma1/forge-native/internal/errors"
)

// MinNodeMajor is the oldest Node.js the NativeScript 8 CLI supports.
const MinNodeMajor = 18

// Error represents a missing or incompatible tool.
type Error struct {
	Tool           string
	MinVersion     string
	CurrentVersion string
	Message        string
}

func (e *Error) Error() string {
	return e.Message
}

// Result is the outcome of one check. Err is nil when the tool is usable.
type Result struct {
	Tool    string
	Version string
	Err     error
}

// Checker runs the checks. The zero value is not usable, see New.
type Checker struct {
	lookPath func(file string) (string, error)
	output   func(ctx context.Context, name string, args ...string) (string, error)
}

// New returns a checker that runs the real binaries.
func New() *Checker {
	return &Checker{
		lookPath: exec.LookPath,
		output: func(ctx context.Context, name string, args ...string) (string, error) {
			out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
			return strings.TrimSpace(string(out)), err
		},
	}
}

// CheckAll runs every check and returns one result per tool.
func (c *Checker) CheckAll(ctx context.Context) []Result {
	return []Result{
		c.CheckNodeJS(ctx),
		c.CheckNPX(),
		c.CheckNativeScript(ctx),
	}
}

// CheckNodeJS requires node MinNodeMajor or later.
func (c *Checker) CheckNodeJS(ctx context.Context) Result {
	r := Result{Tool: "Node.js"}
	out, err := c.output(ctx, "node", "--version")
	if err != nil {
		r.Err = &Error{Tool: r.Tool, Message: formatMissing("Node.js", "node --version")}
		return r
	}

	r.Version = strings.TrimPrefix(out, "v")
	major, err := parseMajor(r.Version)
	if err != nil {
		r.Err = &Error{
			Tool:           r.Tool,
			CurrentVersion: r.Version,
			Message:        fmt.Sprintf("failed to parse Node.js version %q\n\n%s", r.Version, nodeInstallInstructions()),
		}
		return r
	}
	if major < MinNodeMajor {
		r.Err = &Error{
			Tool:           r.Tool,
			MinVersion:     fmt.Sprintf("%d.0.0", MinNodeMajor),
			CurrentVersion: r.Version,
			Message: fmt.Sprintf("NativeScript requires Node.js %d or later, found %s\n\n%s",
				MinNodeMajor, r.Version, nodeInstallInstructions()),
		}
	}
	return r
}

// CheckNPX requires npx, which ships with npm 5.2.0+.
func (c *Checker) CheckNPX() Result {
	r := Result{Tool: "npx"}
	if _, err := c.lookPath("npx"); err != nil {
		r.Err = &Error{Tool: r.Tool, Message: formatMissing("npx", "npx --version")}
	}
	return r
}

// CheckNativeScript requires the ns CLI that the generated run scripts call.
func (c *Checker) CheckNativeScript(ctx context.Context) Result {
	r := Result{Tool: "NativeScript CLI"}
	if _, err := c.lookPath("ns"); err != nil {
		r.Err = &Error{
			Tool: r.Tool,
			Message: "NativeScript CLI is required but not found\n\n" +
				"Install it with: npm install -g nativescript\n" +
				"After installation, verify with: ns --version",
		}
		return r
	}
	out, err := c.output(ctx, "ns", "--version")
	if err == nil {
		r.Version = lastLine(out)
	}
	return r
}

// parseMajor extracts the major version number from a version string.
func parseMajor(version string) (int, error) {
	major, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid major version %q", major)
	}
	return n, nil
}

// lastLine drops the update notices ns prints before its version.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func formatMissing(tool, verify string) string {
	return fmt.Sprintf("%s is required but not found\n\n%s\n\nAfter installation, verify with: %s",
		tool, nodeInstallInstructions(), verify)
}

// nodeInstallInstructions returns platform-specific Node.js installation instructions.
func nodeInstallInstructions() string {
	switch runtime.GOOS {
	case "darwin":
		return `To install Node.js on macOS:
  • Homebrew:  brew install node
  • Download:  https://nodejs.org/en/download/`
	case "linux":
		return `To install Node.js on Linux:
  • Ubuntu/Debian:  sudo apt update && sudo apt install nodejs npm
  • Fedora:         sudo dnf install nodejs npm
  • Using nvm:      https://github.com/nvm-sh/nvm`
	case "windows":
		return `To install Node.js on Windows:
  • Winget:      winget install OpenJS.NodeJS
  • Download:    https://nodejs.org/en/download/`
	default:
		return `To install Node.js:
  • Download: https://nodejs.org/en/download/`
	}
}
