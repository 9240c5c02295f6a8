package audio

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

// ErrNoPlayer means no supported command-line audio player is installed.
var ErrNoPlayer = errors.New("audio: no raw PCM player found (tried paplay, aplay, play)")

// SinkOpener opens a destination for raw PCM in the package stream format.
type SinkOpener func() (io.WriteCloser, error)

type player struct {
	name string
	args []string
}

func players() []player {
	rate := strconv.Itoa(SampleRate)
	channels := strconv.Itoa(Channels)
	return []player{
		{"paplay", []string{"--raw", "--format=s16le", "--rate=" + rate, "--channels=" + channels}},
		{"aplay", []string{"-q", "-t", "raw", "-f", "S16_LE", "-r", rate, "-c", channels}},
		{"play", []string{"-q", "-t", "raw", "-r", rate, "-e", "signed", "-b", "16", "-c", channels, "-"}},
	}
}

// playerSink pipes PCM into a system player's stdin.
type playerSink struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// OpenPlayer starts the first player found on PATH.
func OpenPlayer() (io.WriteCloser, error) {
	for _, p := range players() {
		path, err := exec.LookPath(p.name)
		if err != nil {
			continue
		}

		cmd := exec.Command(path, p.args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return nil, fmt.Errorf("audio: %s stdin: %w", p.name, err)
		}
		if err := cmd.Start(); err != nil {
			return nil, fmt.Errorf("audio: start %s: %w", p.name, err)
		}
		return &playerSink{cmd: cmd, stdin: stdin}, nil
	}
	return nil, ErrNoPlayer
}

func (s *playerSink) Write(p []byte) (int, error) {
	return s.stdin.Write(p)
}

// Close ends the stream and stops the player.
func (s *playerSink) Close() error {
	_ = s.stdin.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	// The player exits on a signal, so its exit status is not an error here.
	_ = s.cmd.Wait()
	return nil
}
