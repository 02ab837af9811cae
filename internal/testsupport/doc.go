// Package testsupport provides helpers for constructing validated test
// configurations over per-test temp directories.
package testsupport
