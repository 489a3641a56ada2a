package orders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Replay records and plays back game commands for replay
type Replay struct {
	Commands []GameCommand
	file     *os.File
	writer   *bufio.Writer
}

// NewReplayRecorder creates a replay file for recording
func NewReplayRecorder(path string) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create replay: %w", err)
	}
	return &Replay{
		file:   f,
		writer: bufio.NewWriter(f),
	}, nil
}

// Record appends a command, writing it to the file when recording
func (r *Replay) Record(cmd GameCommand) error {
	r.Commands = append(r.Commands, cmd)
	if r.writer == nil {
		return nil
	}
	return cmd.Encode(r.writer)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	if r.writer != nil {
		if err := r.writer.Flush(); err != nil {
			r.file.Close()
			return err
		}
	}
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// LoadReplay loads a replay file
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	replay := &Replay{}
	reader := bufio.NewReader(f)
	for {
		var cmd GameCommand
		err := cmd.Decode(reader)
		if errors.Is(err, io.EOF) {
			return replay, nil
		}
		if err != nil {
			return nil, fmt.Errorf("replay %s: command %d: %w", path, len(replay.Commands), err)
		}
		replay.Commands = append(replay.Commands, cmd)
	}
}

// CommandsForTick returns all commands at a given tick during playback
func (r *Replay) CommandsForTick(tick uint64) []GameCommand {
	var result []GameCommand
	for _, c := range r.Commands {
		if c.Tick == tick {
			result = append(result, c)
		}
	}
	return result
}
