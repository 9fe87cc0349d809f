package discord

import (
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"time"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz

	frameDuration = 20 * time.Millisecond
)

// pcmSource is a running decoder producing s16le stereo PCM
type pcmSource struct {
	io.Reader
	cmd       *exec.Cmd
	closeOnce sync.Once
}

// ffmpegArgs builds the decoder arguments; -ss before -i seeks the input directly
func ffmpegArgs(path string, offset time.Duration) []string {
	args := []string{"-hide_banner", "-loglevel", "warning"}
	if offset > 0 {
		args = append(args, "-ss", strconv.FormatFloat(offset.Seconds(), 'f', 3, 64))
	}
	return append(args,
		"-i", path,
		"-f", "s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"pipe:1",
	)
}

// startFFmpeg launches ffmpeg decoding path from offset
func startFFmpeg(ffmpegPath, path string, offset time.Duration) (*pcmSource, error) {
	cmd := exec.Command(ffmpegPath, ffmpegArgs(path, offset)...)

	reader, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("command start error: %w", err)
	}

	return &pcmSource{
		Reader: reader,
		cmd:    cmd,
	}, nil
}

// Close kills the decoder and reaps it
func (p *pcmSource) Close() error {
	p.closeOnce.Do(func() {
		if p.cmd.Process != nil {
			_ = p.cmd.Process.Kill()
		}
		_ = p.cmd.Wait()
	})
	return nil
}
