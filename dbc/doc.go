// Package dbc implements deterministic bitcoin commitments: procedures that
// embed an arbitrary message into existing transaction objects (a public key,
// a lockscript, a scriptPubkey, a full output, a taproot output) so that the
// result is indistinguishable from an ordinary instance of that object, while
// anyone holding the original container and the message can verify the
// binding by recomputation.
//
// Every scheme here follows the embedded shape of the commitverify algebra:
// a Container carries the pre-commitment materials, CommitTo* runs the
// deterministic embedding, and RevealVerify re-derives the commitment from
// the container recovered out of the commitment itself. The key tweak of
// CommitToPubkey is the single cryptographic primitive; all other schemes
// compose it with structural rewriting and never introduce randomness of
// their own.
package dbc
