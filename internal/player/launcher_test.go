package player

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func recordingLauncher(l *Launcher, available map[string]bool) *[]call {
	var calls []call
	l.lookPath = func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	l.start = func(name string, args ...string) error {
		calls = append(calls, call{name: name, args: args})
		if name == "open" || name == "xdg-open" || name == "cmd" || available[name] || name == l.command {
			return nil
		}
		return errors.New("not found")
	}
	return &calls
}

func TestOffsetArgs(t *testing.T) {
	assert.Nil(t, offsetArgs("--start=", 0))
	assert.Nil(t, offsetArgs("", time.Minute))
	assert.Equal(t, []string{"--start=90"}, offsetArgs("--start=", 90*time.Second))
	assert.Equal(t, []string{"-ss", "90"}, offsetArgs("-ss ", 90*time.Second))
}

func TestNewLauncher_DetectsStartFlag(t *testing.T) {
	assert.Equal(t, "--start=", NewLauncher("/usr/local/bin/mpv", nil, "", nil).startFlag)
	assert.Equal(t, "--start-time=", NewLauncher("VLC.exe", nil, "", nil).startFlag)
	assert.Equal(t, "-ss ", NewLauncher("ffplay", nil, "-ss ", nil).startFlag)
	assert.Empty(t, NewLauncher("ffplay", nil, "", nil).startFlag)
}

func TestLaunch_ConfiguredPlayer(t *testing.T) {
	l := NewLauncher("mpv", []string{"--fs"}, "", nil)
	calls := recordingLauncher(l, nil)

	require.NoError(t, l.Launch("https://youtu.be/x", 30*time.Second))

	require.Len(t, *calls, 1)
	assert.Equal(t, "mpv", (*calls)[0].name)
	assert.Equal(t, []string{"--fs", "--start=30", "https://youtu.be/x"}, (*calls)[0].args)
}

func TestLaunch_FallsBackToSystemDefault(t *testing.T) {
	l := NewLauncher("", nil, "", nil)
	calls := recordingLauncher(l, nil)

	require.NoError(t, l.Launch("https://youtu.be/x", 0))

	require.NotEmpty(t, *calls)
	last := (*calls)[len(*calls)-1]
	assert.Contains(t, last.args, "https://youtu.be/x")
}
