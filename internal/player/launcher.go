package player

import (
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Launcher opens trailer URLs in an external player or the system browser
type Launcher struct {
	command   string   // configured player command, empty to auto-detect
	args      []string // extra arguments for the configured player
	startFlag string   // offset flag prefix, e.g. "--start=" or "-ss "
	logger    *slog.Logger

	// Hooks replaced in tests
	lookPath func(string) (string, error)
	start    func(name string, args ...string) error
}

// known describes a player that can stream web video URLs
type known struct {
	offsetFlag string
	macApp     string // app bundle name for "open -a", empty if none
}

// players registry, keyed by lower-case command base name
var players = map[string]known{
	"mpv":       {offsetFlag: "--start="},
	"vlc":       {offsetFlag: "--start-time=", macApp: "VLC"},
	"iina":      {offsetFlag: "--mpv-start=", macApp: "IINA"},
	"celluloid": {offsetFlag: "--mpv-start="},
	"haruna":    {offsetFlag: "--mpv-start="},
}

// candidates lists players to try per platform, in order of preference
var candidates = map[string][]string{
	"darwin":  {"iina", "mpv", "vlc"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc"},
	"windows": {"mpv", "vlc"},
}

// NewLauncher creates a Launcher. An empty startFlag is auto-detected for known players.
func NewLauncher(command string, args []string, startFlag string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}

	resolved := startFlag
	if resolved == "" && command != "" {
		if p, ok := players[baseName(command)]; ok {
			resolved = p.offsetFlag
			logger.Debug("auto-detected player offset flag", "player", baseName(command), "flag", resolved)
		}
	}

	return &Launcher{
		command:   command,
		args:      args,
		startFlag: resolved,
		logger:    logger,
		lookPath:  exec.LookPath,
		start: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

// Launch opens url starting at offset. Tries the configured player, then the
// platform's known players, then the system default handler (which ignores offset).
func (l *Launcher) Launch(url string, offset time.Duration) error {
	if l.command != "" {
		args := append(append([]string{}, l.args...), offsetArgs(l.startFlag, offset)...)
		if offset > 0 && l.startFlag == "" {
			l.logger.Warn("cannot set start offset for unknown player, configure player.start_flag",
				"command", l.command, "offset", offset)
		}
		l.logger.Info("launching player", "command", l.command, "args", args, "url", url)
		return l.start(l.command, append(args, url)...)
	}

	if name, err := l.detectAndLaunch(url, offset); err == nil {
		l.logger.Info("launched with detected player", "player", name)
		return nil
	}

	l.logger.Info("no candidate players found, using system default")
	return l.launchDefault(url)
}

// detectAndLaunch tries the platform candidates in order
func (l *Launcher) detectAndLaunch(url string, offset time.Duration) (string, error) {
	names, ok := candidates[runtime.GOOS]
	if !ok {
		names = candidates["linux"]
	}

	for _, name := range names {
		p := players[name]
		args := offsetArgs(p.offsetFlag, offset)

		if _, err := l.lookPath(name); err == nil {
			if err := l.start(name, append(args, url)...); err == nil {
				return name, nil
			}
		}

		if runtime.GOOS == "darwin" && p.macApp != "" {
			openArgs := []string{"-a", p.macApp}
			if len(args) > 0 {
				openArgs = append(append(openArgs, "--args"), args...)
			}
			if err := l.start("open", append(openArgs, url)...); err == nil {
				return name, nil
			}
		}
		l.logger.Debug("player not available", "player", name)
	}
	return "", fmt.Errorf("no candidate players found")
}

// launchDefault opens url with the system default handler
func (l *Launcher) launchDefault(url string) error {
	l.logger.Info("launching with system default", "os", runtime.GOOS, "url", url)
	switch runtime.GOOS {
	case "darwin":
		return l.start("open", url)
	case "windows":
		return l.start("cmd", "/c", "start", "", url)
	default:
		return l.start("xdg-open", url)
	}
}

// offsetArgs renders a start offset for a player flag.
// Flags ending in a space ("-ss ") take the value as a separate argument.
func offsetArgs(flag string, offset time.Duration) []string {
	if offset <= 0 || flag == "" {
		return nil
	}
	secs := fmt.Sprintf("%.0f", offset.Seconds())
	if strings.HasSuffix(flag, " ") {
		return []string{strings.TrimSuffix(flag, " "), secs}
	}
	return []string{flag + secs}
}

func baseName(command string) string {
	base := filepath.Base(command)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
