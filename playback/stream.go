// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"fmt"
)

// Stats summarises one Stream call.
type Stats struct {
	// Chunks is the number of write requests issued.
	Chunks int
	// BytesWritten counts chunks the device accepted completely.
	BytesWritten int
	// BytesSkipped counts chunks that hit a short or failed write; they are
	// not retried.
	BytesSkipped int
	// PartialFrames is how many frames short writes did accept.
	PartialFrames int
	// Underruns is the number of re-prepares issued.
	Underruns int
}

// Total is BytesWritten+BytesSkipped; after a complete stream it equals the
// length of the sample buffer.
func (s Stats) Total() int { return s.BytesWritten + s.BytesSkipped }

func (s Stats) String() string {
	return fmt.Sprintf("%d chunks, %d bytes written, %d bytes skipped, %d underruns",
		s.Chunks, s.BytesWritten, s.BytesSkipped, s.Underruns)
}

// Stream copies data to the device in chunks of whole frames, blocking on
// every write. A short or failed write is logged, the device is re-prepared
// once, and the rest of that chunk is dropped; streaming then carries on with
// the next chunk. ctx is checked between chunks.
func (p *Player) Stream(ctx context.Context, data []byte) (Stats, error) {
	var stats Stats

	if err := p.expect("stream", StatePrepared); err != nil {
		return stats, err
	}

	frameSize := int(p.desc.FrameSize())
	framesPerChunk := p.chunkSize / frameSize
	if framesPerChunk == 0 {
		return stats, fmt.Errorf("%w: %d bytes, frame is %d bytes", ErrChunkTooSmall, p.chunkSize, frameSize)
	}

	if len(data)%frameSize != 0 {
		return stats, fmt.Errorf("%w: %d bytes, frame is %d bytes", ErrPartialFrame, len(data), frameSize)
	}

	if cap(p.buf) < framesPerChunk*frameSize {
		p.buf = make([]byte, framesPerChunk*frameSize)
	}

	p.state = StateStreaming

	remaining := len(data) / frameSize
	pos := 0

	for {
		frames := min(remaining, framesPerChunk)
		if frames == 0 {
			break
		}

		if err := ctx.Err(); err != nil {
			return stats, err
		}

		size := frames * frameSize
		chunk := p.buf[:size]
		copy(chunk, data[pos:pos+size])

		written, err := p.dev.Write(chunk)
		stats.Chunks++

		if err != nil || written != frames {
			p.log.Warnf("chunk %d at byte %d: %s", stats.Chunks, pos, describeWriteFailure(err, written, frames))

			stats.BytesSkipped += size
			if written > 0 {
				stats.PartialFrames += written
			}

			stats.Underruns++
			if perr := p.dev.Prepare(); perr != nil {
				p.log.Errorf("re-prepare after chunk %d: %v", stats.Chunks, perr)
			}
		} else {
			stats.BytesWritten += size
		}

		pos += size
		remaining -= frames
	}

	p.log.Debugf("stream done: %s", stats)
	return stats, nil
}
