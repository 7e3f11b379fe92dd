// Package tasks imports markdown posts into the content store.
//
// # Import
//
// [Importer.Run] walks one directory (no recursion) in listing order. Each file with a
// recognized extension is parsed into front matter and body and handed to
// [Importer.ImportFile], which runs in its own transaction:
//
//  1. Look up the post by url; if present, roll back and report [OutcomeDuplicate]
//  2. Insert the post and capture its generated id
//  3. Insert-if-absent each category, then its post link
//  4. Insert-if-absent each tag, then its post link
//  5. Commit
//
// Any failure rolls back the whole file, so a post is never stored without its links.
//
// # Failure policy
//
// With OnError "continue" a failing file is recorded in [ImportResult.Errors] and the run
// moves on; the run still returns an error wrapping [shared.ErrImportFailed] at the end.
// With "abort" the first failure ends the run.
//
// # Missing urls
//
// A file without a url either gets one generated from its file name ("/" + slug) or fails
// with [ErrMissingURL], depending on MissingURL. A null url is never stored.
package tasks
