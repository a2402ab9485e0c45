// SPDX-License-Identifier: EPL-2.0

package playback

import "fmt"

// State is the lifecycle position of a Player's device.
type State int

const (
	StateOpened State = iota
	StateParametersSet
	StatePrepared
	StateStreaming
	StateDraining
	StateClosed
)

var stateNames = [...]string{
	StateOpened:        "opened",
	StateParametersSet: "parameters set",
	StatePrepared:      "prepared",
	StateStreaming:     "streaming",
	StateDraining:      "draining",
	StateClosed:        "closed",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}
