/*
Package wallet glues the signer registry and the transaction log together.

Every call first applies the registry operation, then appends the matching
event to the log. Both happen on the same store, so when the call runs on a
cache wrap (see x/utils.Savepoint) a failure of either step leaves no trace.

The state of a transaction is derived from the log:

  Proposed -> Signing* -> Executed

A transaction is executed once the number of distinct signers that signed it,
and that are still authorized, reaches the required signatures threshold.
*/
package wallet
