// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds test helpers: scripted output devices and builders
// for in-memory WAV and AIFF files.
package audiotest
