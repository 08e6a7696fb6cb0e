// Package apikey hashes and verifies hub API keys.
//
// Hashes use Argon2id in the PHC string format:
//
//	$argon2id$v=19$m=16384,t=2,p=2$<salt>$<hash>
//
// with base64 (raw, standard alphabet) salt and hash.
package apikey
