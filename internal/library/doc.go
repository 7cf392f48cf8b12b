// Package library implements the import boundary: filtering file sets down
// to audio and loading them into the store.
package library
