// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"fmt"

	"github.com/pion/logging"

	"github.com/ik5/wavplay/audio"
	"github.com/ik5/wavplay/device"
	"github.com/ik5/wavplay/internal/logutil"
)

// DefaultChunkSize is the transfer buffer capacity in bytes.
const DefaultChunkSize = 512

// Options configures a Player.
type Options struct {
	// ChunkSize is the transfer buffer capacity in bytes. Each write carries
	// as many whole frames as fit. Zero means DefaultChunkSize.
	ChunkSize int

	// Format is the sample format requested from the device. Its width must
	// match the file's sample width.
	Format audio.SampleFormat

	LoggerFactory logging.LoggerFactory
}

// Player drives one open Device through negotiation, streaming, draining and
// closing. It is not safe for concurrent use.
type Player struct {
	dev       device.Device
	format    audio.SampleFormat
	chunkSize int
	log       logging.LeveledLogger

	desc  audio.FormatDescriptor
	state State
	buf   []byte
}

// NewPlayer takes ownership of an already opened device.
func NewPlayer(dev device.Device, opts Options) *Player {
	chunkSize := opts.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}

	return &Player{
		dev:       dev,
		format:    opts.Format,
		chunkSize: chunkSize,
		log:       logutil.Logger(opts.LoggerFactory, "playback"),
		state:     StateOpened,
	}
}

func (p *Player) State() State { return p.state }

// Format returns the descriptor the device was negotiated for.
func (p *Player) Format() audio.FormatDescriptor { return p.desc }

func (p *Player) expect(op string, want State) error {
	if p.state != want {
		return fmt.Errorf("%w: %s while %s", ErrInvalidState, op, p.state)
	}
	return nil
}

// Negotiate sets the device's hardware parameters for desc.
func (p *Player) Negotiate(desc audio.FormatDescriptor) error {
	if err := p.expect("negotiate", StateOpened); err != nil {
		return err
	}

	if err := desc.Validate(); err != nil {
		return fmt.Errorf("negotiate: %w", err)
	}

	if err := Negotiate(p.dev, desc, p.format); err != nil {
		return err
	}

	p.desc = desc
	p.state = StateParametersSet
	p.log.Infof("%s: %s interleaved, %d Hz, %d channels",
		p.dev.Name(), p.format, desc.SampleRate, desc.Channels)

	return nil
}

func (p *Player) Prepare() error {
	if err := p.expect("prepare", StateParametersSet); err != nil {
		return err
	}

	if err := p.dev.Prepare(); err != nil {
		return fmt.Errorf("prepare: %w", err)
	}

	p.state = StatePrepared
	return nil
}

// Drain blocks until everything written has been played.
func (p *Player) Drain() error {
	if err := p.expect("drain", StateStreaming); err != nil {
		return err
	}

	p.state = StateDraining
	if err := p.dev.Drain(); err != nil {
		return fmt.Errorf("drain: %w", err)
	}

	return nil
}

// Close releases the device. It may be called in any state, and more than
// once.
func (p *Player) Close() error {
	if p.state == StateClosed {
		return nil
	}

	p.state = StateClosed
	if err := p.dev.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	p.log.Debugf("%s closed", p.dev.Name())
	return nil
}

// Play runs negotiate, prepare, stream and drain in order. The caller still
// owns Close. If ctx is cancelled mid-stream the drain is skipped.
func (p *Player) Play(ctx context.Context, desc audio.FormatDescriptor, data []byte) (Stats, error) {
	if err := p.Negotiate(desc); err != nil {
		return Stats{}, err
	}

	if err := p.Prepare(); err != nil {
		return Stats{}, err
	}

	stats, err := p.Stream(ctx, data)
	if err != nil {
		return stats, err
	}

	return stats, p.Drain()
}

func describeWriteFailure(err error, written, want int) string {
	switch {
	case errors.Is(err, device.ErrUnderrun):
		return "underrun"
	case err != nil:
		return fmt.Sprintf("write to audio interface failed: %v", err)
	}
	return fmt.Sprintf("short write to audio interface: %d of %d frames", written, want)
}
