// Package mock provides deterministic test doubles for the ai interfaces.
//
// Each mock has an injectable function field for custom behavior and a call
// counter for assertions; the defaults do naive word matching so simple
// tests work without any setup.
package mock
