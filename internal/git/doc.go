// Package git acquires content repositories and reads their refs and trees.
//
// A Resolver turns a source URL into a Handle. Remote URLs are mirrored as
// bare clones in a cache directory keyed by the normalized URL; local paths
// are opened in place. Handles must be closed once every ref derived from
// them has been processed.
//
// go-git repositories are not safe for concurrent use, so all object reads
// through a Handle are serialized by the handle's mutex.
package git
