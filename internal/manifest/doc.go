// Package manifest turns the parsed post collection into the static artifacts
// the site serves: the JSON manifest the client application fetches and the
// RSS 2.0 feed. Artifacts are written atomically so a failed build leaves the
// previous outputs live.
package manifest
