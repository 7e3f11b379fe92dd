// Package models defines domain entities for the postsync content store.
//
// The package contains two categories of types:
//
// 1. Persistent entities, backed by the posts table:
//   - [Post] : A blog post keyed by its url, with author, title, draft flag, date and markdown body
//
// 2. Data Transfer Objects (DTOs): read-side views assembled by repositories
//   - [Term] : A category or tag name with the number of posts linked to it
//   - [PostDetail] : A post together with its category and tag names
//
// Categories and tags have no surrogate key; their name is the identity.
package models
