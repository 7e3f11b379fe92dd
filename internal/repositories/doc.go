// Package repositories implements SQLite persistence for posts and their taxonomy.
//
// Repositories take a [DBTX] so the same code runs against a *sql.DB or inside a *sql.Tx.
// The importer opens one transaction per markdown file and builds its repositories on it,
// which keeps a post and its category/tag links all-or-nothing.
//
// Key Implementations:
//   - [PostRepository] : Insert-only post persistence with url lookups
//   - [TermRepository] : Categories and tags, with insert-if-absent semantics and post links
//
// Categories and tags are identified by name. [TermRepository.Ensure] and [TermRepository.Link]
// use INSERT OR IGNORE so repeating them is a no-op.
package repositories
