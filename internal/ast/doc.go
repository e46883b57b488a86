// Package ast holds the immutable tree model the lint engine runs over.
//
// Trees arrive from the upstream front end already validated: node ids are
// dense and unique within a tree, children are ordered by source position,
// and children never reference ancestors. Cross-references (a use site
// pointing at a declaration) go through the name side table
// (Tree.DeclsByName), never through raw back-references, which keeps every
// traversal a plain tree walk.
//
// A Tree is read-only after Build. Multiple rules read one tree
// concurrently without locking; anything that needs a modified tree builds
// a new detached one through Builder. Identities do not survive a rebuild:
// each tree carries a process-unique generation, and Resolve rejects a Ref
// from another generation with ErrStaleReference instead of returning data
// from the wrong tree.
package ast
