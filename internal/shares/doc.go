// Package shares persists submitted share strings against a layer UUID in
// Postgres. The store has multiset semantics: duplicate submissions are
// permitted (the VSSS primitive tolerates repeats as long as enough
// distinct x-coordinates exist), so the schema carries no uniqueness
// constraint.
package shares
