// Package baseline loads and persists the accepted error-count record.
//
// The record lives in a single pretty-printed JSON file (by default
// .mypykaizen.json in the working directory) meant to be committed next to
// the code it guards. Loading fails open: a missing or corrupt file yields a
// fresh record. Saving never swallows errors.
package baseline
