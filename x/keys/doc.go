/*
Package keys implements the signer registry of the vault.

The registry is a single authority record holding the ordered set of
principals allowed to authorize actions and the number of concurring
signatures required to execute a transaction. Every mutation is checked
against the post-mutation record and the record is written only when

  1 <= RequiredSignatures <= len(Signers) <= MaxSigners

holds. Only a current signer can change the registry.
*/
package keys
