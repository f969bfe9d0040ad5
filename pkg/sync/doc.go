/*
The sync package implements the folder mirroring algorithm. It walks a local
directory tree depth-first and recreates it under a destination Notion page:

1) Directories become pages that contain their children's pages.
2) Recognized text files become pages filled with paragraph blocks, chunked
   to the per-block length limit and appended in size-bounded batches.
3) All other files become pages holding a single external-file reference
   block. Real file upload is out of scope, so the reference is a derived
   placeholder URL.

Failures are isolated per directory entry. A page that can't be created, or
content that can't be appended, is reported and skipped without aborting the
surrounding directory; only an invalid root or a missing credential aborts
the run. Pages are created once and never mutated or deleted, so re-running a
sync against the same destination creates a second copy of the tree.

The walk is strictly sequential. Entries are processed in lexicographic
order, and a parent's page always exists before any of its children's create
calls, so two runs over the same snapshot produce the same sequence of
remote calls.
*/
package sync
