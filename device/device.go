// SPDX-License-Identifier: EPL-2.0

package device

import (
	"sort"
	"strings"
	"sync"

	"github.com/ik5/wavplay/audio"
)

// Access is the transfer mode a stream is configured with.
type Access int

const (
	AccessRWInterleaved Access = iota
	AccessRWNonInterleaved
	AccessMMapInterleaved
)

func (a Access) String() string {
	switch a {
	case AccessRWInterleaved:
		return "RW_INTERLEAVED"
	case AccessRWNonInterleaved:
		return "RW_NONINTERLEAVED"
	case AccessMMapInterleaved:
		return "MMAP_INTERLEAVED"
	}

	return "UNKNOWN"
}

// HWParams is a transient hardware parameter space obtained from a Device.
//
// Setters only record and check a value against what the device can do;
// nothing reaches the hardware until Apply. Free must be called once the
// space is no longer needed, whether Apply succeeded or not.
type HWParams interface {
	SetAccess(access Access) error
	SetFormat(format audio.SampleFormat) error
	SetRate(rate uint) error
	SetChannels(channels uint) error
	Apply() error
	Free()
}

// Device is an open audio output stream.
type Device interface {
	Name() string

	// HWParams allocates a parameter space for the stream.
	HWParams() (HWParams, error)

	// Prepare makes the stream ready to accept data. It is also how an
	// underrun is cleared.
	Prepare() error

	// Write blocks until the device accepted the interleaved frames in buf
	// or failed, and returns the number of whole frames accepted.
	Write(buf []byte) (int, error)

	// Drain blocks until every accepted frame has been played.
	Drain() error

	Close() error
}

// Backend opens Devices by name.
type Backend interface {
	Name() string
	Open(name string) (Device, error)
}

// Registry for backends by name (e.g., "alsa", "oto", "wavfile").
type Registry struct {
	backends map[string]Backend

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
		mtx:      &sync.Mutex{},
	}
}

// Register stores b under b.Name().
func (r *Registry) Register(b Backend) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.backends[strings.ToLower(b.Name())] = b
}

func (r *Registry) Get(name string) (Backend, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	b, ok := r.backends[strings.ToLower(name)]
	return b, ok
}

// Names returns the registered backend names in sorted order.
func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
