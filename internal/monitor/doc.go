// Package monitor implements the device monitors that feed the on-screen
// display: display and keyboard backlights (sysfs), PulseAudio sink volume,
// and UPower power-supply state. Each monitor runs independently and pushes
// normalized readings onto its own channel; a failed monitor is skipped with
// a logged warning and never affects its siblings.
package monitor
