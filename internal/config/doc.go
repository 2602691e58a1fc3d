// Package config holds the run mode chosen on the command line and the
// ambient settings read from the environment.
//
// The run mode is threaded through every resolver call by value; settings are
// only consulted while wiring the runtime.
package config
