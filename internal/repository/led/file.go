package led

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/oshokin/disk-led/internal/domain/indicator"
)

// Indicator is what the actuator needs from the LED backend.
type Indicator interface {
	// Set writes the command for state.
	Set(state indicator.State) error
	// State returns the state of the last command the backend accepted.
	State() indicator.State
	// Shutdown forces the LED off and releases the backend. Safe to call more than once.
	Shutdown() error
}

// Commands holds the strings accepted by the control file.
type Commands struct {
	// On asserts the indicator.
	On string
	// Off deasserts the indicator.
	Off string
}

var (
	// ErrClosed is returned by Set after Shutdown.
	ErrClosed = errors.New("led control file already released")
	// ErrUnknownState is returned when asked to command a state other than On or Off.
	ErrUnknownState = errors.New("no command for state")
)

// FileIndicator writes commands to an open control file.
type FileIndicator struct {
	// file is the control file handle.
	file io.WriteCloser
	// commands maps states to the strings written.
	commands Commands

	// mu serializes writes with Shutdown so commands are never interleaved.
	mu sync.Mutex
	// state mirrors the last command written successfully.
	state indicator.State
	// closed is set once the handle has been released.
	closed bool
	// once runs the shutdown sequence a single time.
	once sync.Once
	// shutdownErr is the result of the shutdown sequence.
	shutdownErr error
}

// Open opens the control file for reading and writing.
func Open(path string, commands Commands) (*FileIndicator, error) {
	path = filepath.Clean(path)

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf(
			"open %s: %w (check that this machine has the LED and its control file, or run with sufficient privileges)",
			path, err,
		)
	}

	return New(file, commands), nil
}

// New wraps an already open control file.
func New(file io.WriteCloser, commands Commands) *FileIndicator {
	return &FileIndicator{
		file:     file,
		commands: commands,
	}
}

// Set writes the command for state.
func (f *FileIndicator) Set(state indicator.State) error {
	command, err := f.command(state)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}

	if err = f.write(command); err != nil {
		return err
	}

	f.state = state

	return nil
}

// State returns the state of the last command written successfully.
func (f *FileIndicator) State() indicator.State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.state
}

// Shutdown writes the off command and closes the file. Only the first call does
// any work; later calls return the first result.
func (f *FileIndicator) Shutdown() error {
	f.once.Do(func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		writeErr := f.write(f.commands.Off)
		if writeErr == nil {
			f.state = indicator.Off
		}

		closeErr := f.file.Close()
		f.closed = true

		f.shutdownErr = errors.Join(writeErr, closeErr)
	})

	return f.shutdownErr
}

// command returns the control string for state.
func (f *FileIndicator) command(state indicator.State) (string, error) {
	switch state {
	case indicator.On:
		return f.commands.On, nil
	case indicator.Off:
		return f.commands.Off, nil
	default:
		return "", fmt.Errorf("%w %s", ErrUnknownState, state)
	}
}

// write sends one command in a single Write call. Callers hold mu.
func (f *FileIndicator) write(command string) error {
	if _, err := io.WriteString(f.file, command); err != nil {
		return fmt.Errorf("write %q: %w", command, err)
	}

	return nil
}
