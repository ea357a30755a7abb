// Package timing provides the fixed pacing interval and a sleep that
// survives signal interruptions without cutting the interval short.
package timing
