// Package logging provides the structured logger used by the benchmark harness.
// The runner, campaign and worker spawner log through the Logger interface;
// the zerolog adapter writes either console lines or JSON.
package logging
