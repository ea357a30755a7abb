//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-ps"
)

var (
	// ErrPeerRunning is returned when another instance of this executable is alive.
	ErrPeerRunning = errors.New("another instance is already running")
	// errSelfNotListed is returned when the process table does not contain this process.
	errSelfNotListed = errors.New("current process not found in process table")
)

// DetectPeer looks for another process running the same executable as this one.
// It returns ErrPeerRunning naming the first peer found, or nil.
func DetectPeer() error {
	self, err := ps.FindProcess(os.Getpid())
	if err != nil {
		return fmt.Errorf("find current process: %w", err)
	}

	if self == nil {
		return errSelfNotListed
	}

	processList, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	if peer, ok := FindPeer(processList, self.Pid(), self.Executable()); ok {
		return fmt.Errorf("%w: %s (pid %d)", ErrPeerRunning, peer.Executable(), peer.Pid())
	}

	return nil
}

// FindPeer returns the first process other than selfPID whose executable name matches.
// Names come from the kernel's comm field, so both sides are compared truncated the same way.
func FindPeer(processList []ps.Process, selfPID int, executable string) (ps.Process, bool) {
	for _, process := range processList {
		if process.Pid() == selfPID {
			continue
		}

		if process.Executable() != executable {
			continue
		}

		return process, true
	}

	return nil, false
}
