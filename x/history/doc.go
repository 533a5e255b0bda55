/*
Package history implements the transaction log of the vault.

The log is an append-only list of events. Every event is assigned the next
value of a gap free sequence, starting at zero, so that the event id order
is the order in which authorization actions were processed. Events are never
modified nor deleted.

An event carries exactly one payload variant: a proposal, a signature, an
execution, a key addition, a key removal or a threshold change. Events that
name a transaction are additionally indexed by the transaction id.
*/
package history
