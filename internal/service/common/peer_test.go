//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"testing"

	"github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/require"
)

// fakeProcess is a static ps.Process.
type fakeProcess struct {
	// pid is the process id.
	pid int
	// executable is the comm name.
	executable string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.executable }

// TestFindPeer skips itself and unrelated processes.
func TestFindPeer(t *testing.T) {
	t.Parallel()

	list := []ps.Process{
		fakeProcess{pid: 1, executable: "systemd"},
		fakeProcess{pid: 10, executable: "diskled-actuato"},
		fakeProcess{pid: 11, executable: "diskled-sampler"},
	}

	_, ok := FindPeer(list, 10, "diskled-actuato")
	require.False(t, ok)

	list = append(list, fakeProcess{pid: 12, executable: "diskled-actuato"})

	peer, ok := FindPeer(list, 10, "diskled-actuato")
	require.True(t, ok)
	require.Equal(t, 12, peer.Pid())
}

// TestDetectPeer runs against the real process table; a test binary has no twin.
func TestDetectPeer(t *testing.T) {
	t.Parallel()

	require.NoError(t, DetectPeer())
}
