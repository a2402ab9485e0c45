// SPDX-License-Identifier: EPL-2.0

package oto

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// sink is the part of *oto.Player a Device drives.
type sink interface {
	Play()
	IsPlaying() bool
	Close() error
}

type starter func(opts *oto.NewContextOptions, src io.Reader) (sink, error)

var shared struct {
	sync.Mutex

	ctx  *oto.Context
	opts oto.NewContextOptions
}

// startPlayer creates the process wide context on first use and starts a
// player reading from src.
func startPlayer(opts *oto.NewContextOptions, src io.Reader) (sink, error) {
	shared.Lock()
	defer shared.Unlock()

	if shared.ctx == nil {
		ctx, ready, err := oto.NewContext(opts)
		if err != nil {
			return nil, fmt.Errorf("oto: create context: %w", err)
		}
		<-ready

		shared.ctx, shared.opts = ctx, *opts
	} else if !sameShape(shared.opts, *opts) {
		return nil, fmt.Errorf("%w: running %d Hz %d ch, asked for %d Hz %d ch",
			ErrContextInUse, shared.opts.SampleRate, shared.opts.ChannelCount,
			opts.SampleRate, opts.ChannelCount)
	}

	if err := shared.ctx.Resume(); err != nil {
		return nil, fmt.Errorf("oto: resume: %w", err)
	}

	p := shared.ctx.NewPlayer(src)
	p.Play()

	return p, nil
}

// suspend pauses the shared context once no device is using it.
func suspend() error {
	shared.Lock()
	defer shared.Unlock()

	if shared.ctx == nil {
		return nil
	}
	return shared.ctx.Suspend()
}

func sameShape(a, b oto.NewContextOptions) bool {
	return a.SampleRate == b.SampleRate &&
		a.ChannelCount == b.ChannelCount &&
		a.Format == b.Format
}
