// Package normalisers provides implementations of the FileNormaliser
// interface. Each normaliser knows how to turn the file records of one
// upstream service into canonical files.
//
// Normalisers are wired into the reconcile and conversation services at
// startup.
package normalisers
