package discord

import (
	"encoding/binary"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/podplay/internal/common/clock"
)

const maxOpusBytes = frameSize * channels * 2

// frameEncoder encodes one PCM frame to opus
type frameEncoder interface {
	Encode(pcm []int16, frameSize, maxDataBytes int) ([]byte, error)
}

// dispatcher streams one decoded file to a voice connection
type dispatcher struct {
	source   io.ReadCloser
	encoder  frameEncoder
	send     chan<- []byte
	speaking func(bool) error
	clock    clock.Clock

	mu       sync.Mutex
	paused   bool
	pausedAt time.Time
	frames   int64

	resumed  chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func newDispatcher(source io.ReadCloser, encoder frameEncoder, send chan<- []byte, speaking func(bool) error, clk clock.Clock) *dispatcher {
	if speaking == nil {
		speaking = func(bool) error { return nil }
	}
	return &dispatcher{
		source:   source,
		encoder:  encoder,
		send:     send,
		speaking: speaking,
		clock:    clk,
		resumed:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// run sends frames until the source is exhausted or the dispatcher is destroyed
func (d *dispatcher) run() {
	defer close(d.done)
	defer d.source.Close()

	if err := d.speaking(true); err != nil {
		log.Printf("[Voice] Failed to set speaking: %v", err)
	}
	defer func() { _ = d.speaking(false) }()

	pcm := make([]byte, maxOpusBytes)
	samples := make([]int16, frameSize*channels)

	for {
		if !d.waitWhilePaused() {
			return
		}

		if _, err := io.ReadFull(d.source, pcm); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && !d.stopped() {
				log.Printf("[Voice] Read error: %v", err)
			}
			return
		}

		for i := range samples {
			samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
		}

		frame, err := d.encoder.Encode(samples, frameSize, maxOpusBytes)
		if err != nil {
			log.Printf("[Voice] Encode error: %v", err)
			return
		}

		select {
		case d.send <- frame:
		case <-d.stop:
			return
		}

		d.mu.Lock()
		d.frames++
		d.mu.Unlock()
	}
}

// waitWhilePaused blocks while paused; false means the dispatcher was destroyed
func (d *dispatcher) waitWhilePaused() bool {
	for {
		d.mu.Lock()
		paused := d.paused
		d.mu.Unlock()

		if !paused {
			return !d.stopped()
		}

		select {
		case <-d.resumed:
		case <-d.stop:
			return false
		}
	}
}

func (d *dispatcher) stopped() bool {
	select {
	case <-d.stop:
		return true
	default:
		return false
	}
}

func (d *dispatcher) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.paused {
		return
	}
	d.paused = true
	d.pausedAt = d.clock.Now()
}

func (d *dispatcher) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.paused {
		return
	}
	d.paused = false
	d.pausedAt = time.Time{}

	select {
	case d.resumed <- struct{}{}:
	default:
	}
}

// Destroy stops the run and waits for the send loop to exit
func (d *dispatcher) Destroy() {
	d.stopOnce.Do(func() {
		close(d.stop)
		// Unblocks a read stuck on the decoder
		_ = d.source.Close()
	})
	<-d.done
}

func (d *dispatcher) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

func (d *dispatcher) StreamTime() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return time.Duration(d.frames) * frameDuration
}

func (d *dispatcher) PausedTime() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.paused {
		return 0
	}
	return d.clock.Since(d.pausedAt)
}

func (d *dispatcher) Done() <-chan struct{} {
	return d.done
}
