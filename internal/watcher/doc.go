// Package watcher runs the watch-rebuild loop: filesystem events under the
// content directory arm a debounce timer, and once changes settle a single
// rebuild regenerates the artifacts and runs the downstream site build.
package watcher
