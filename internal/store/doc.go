/*
Package store defines how users' series watch-lists are persisted.

Backends live in the mongo and redis sub-packages and share the Store contract, the Record type,
and the errors declared here.
*/
package store
