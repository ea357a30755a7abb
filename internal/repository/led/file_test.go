package led

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/disk-led/internal/domain/indicator"
)

var (
	testCommands = Commands{On: "0 on", Off: "0 off"}

	errTestWrite = errors.New("test write error")
)

// recordingFile keeps every write as a separate command.
type recordingFile struct {
	// mu guards the fields below.
	mu sync.Mutex
	// commands holds each successful write.
	commands []string
	// closed counts Close calls.
	closed int
	// failOn makes writes of this exact command fail.
	failOn string
}

// Write records p, failing for the configured command.
func (r *recordingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed > 0 {
		return 0, os.ErrClosed
	}

	if string(p) == r.failOn {
		return 0, errTestWrite
	}

	r.commands = append(r.commands, string(p))

	return len(p), nil
}

// Close counts calls.
func (r *recordingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed++

	return nil
}

// TestFileIndicator_SetAndShutdown writes to a real file and checks the command sequence.
func TestFileIndicator_SetAndShutdown(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "led")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	f, err := Open(path, testCommands)
	require.NoError(t, err)

	require.Equal(t, indicator.Unknown, f.State())

	require.NoError(t, f.Set(indicator.On))
	require.NoError(t, f.Set(indicator.On))
	require.Equal(t, indicator.On, f.State())

	require.NoError(t, f.Shutdown())
	require.Equal(t, indicator.Off, f.State())
	require.NoError(t, f.Shutdown())

	require.ErrorIs(t, f.Set(indicator.On), ErrClosed)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "0 on0 on0 off", string(contents))
}

// TestOpen_Missing names the path and the likely cause.
func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "no-led")

	_, err := Open(path, testCommands)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), path)
	require.Contains(t, err.Error(), "privileges")
}

// TestFileIndicator_UnknownState refuses to write anything for Unknown.
func TestFileIndicator_UnknownState(t *testing.T) {
	t.Parallel()

	file := new(recordingFile)
	f := New(file, testCommands)

	require.ErrorIs(t, f.Set(indicator.Unknown), ErrUnknownState)
	require.Empty(t, file.commands)
}

// TestFileIndicator_ShutdownOnce closes exactly once even when called from many goroutines.
func TestFileIndicator_ShutdownOnce(t *testing.T) {
	t.Parallel()

	file := new(recordingFile)
	f := New(file, testCommands)

	var wg sync.WaitGroup

	for n8 := 0; n8 < 8; n8++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = f.Shutdown()
		}()
	}

	wg.Wait()

	require.Equal(t, 1, file.closed)
	require.Equal(t, []string{"0 off"}, file.commands)
}

// TestFileIndicator_ShutdownRacesWrites checks that, whatever the interleaving,
// commands are never torn and the final command is off.
func TestFileIndicator_ShutdownRacesWrites(t *testing.T) {
	t.Parallel()

	for n50 := 0; n50 < 50; n50++ {
		file := new(recordingFile)
		f := New(file, testCommands)

		var wg sync.WaitGroup

		for n4 := 0; n4 < 4; n4++ {
			wg.Add(1)

			go func() {
				defer wg.Done()

				for n20 := 0; n20 < 20; n20++ {
					_ = f.Set(indicator.On)
				}
			}()
		}

		require.NoError(t, f.Shutdown())
		wg.Wait()

		require.Equal(t, indicator.Off, f.State())

		require.NotEmpty(t, file.commands)
		require.Equal(t, "0 off", file.commands[len(file.commands)-1])

		for _, c := range file.commands {
			require.True(t, c == "0 on" || c == "0 off", c)
		}

		require.Equal(t, 1, strings.Count(strings.Join(file.commands, "|"), "0 off"))
	}
}

// TestFileIndicator_ShutdownReportsWriteFailure still closes when the off command fails.
func TestFileIndicator_ShutdownReportsWriteFailure(t *testing.T) {
	t.Parallel()

	file := &recordingFile{failOn: "0 off"}
	f := New(file, testCommands)

	require.NoError(t, f.Set(indicator.On))

	require.ErrorIs(t, f.Shutdown(), errTestWrite)
	require.Equal(t, 1, file.closed)
	require.Equal(t, indicator.On, f.State())
}
