// Package content defines the virtual file model shared by the aggregation,
// classification and catalog stages.
//
// A File is created by the materializer with only its repository-relative
// path, contents and media type populated. The classifier fills in Src, Out
// and Pub; after a file has been added to the catalog its identity fields
// must not change.
package content
