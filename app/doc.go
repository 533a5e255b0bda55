/*
Package app is the reference runtime hosting the vault state machine.

It owns the persistent store, keeps separate scratch caches for checking and
delivering calls and serializes every call behind a single mutex. Calls are
passed through a fixed decorator stack before reaching the wallet handler:

  Logging -> Recovery -> Savepoint -> wallet.Handler

Commit flushes everything delivered since the last commit into a new version
of the persistent store.
*/
package app
