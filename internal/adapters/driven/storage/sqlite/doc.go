// Package sqlite keeps the similarity index and ingestion manifests in a
// local SQLite database, using the pure Go modernc.org/sqlite driver.
//
// Vectors are stored as little-endian float32 blobs and queried by a full
// scan scored with cosine similarity, which is plenty for the few dozen
// chunks of a resume. The schema lives in numbered scripts under
// migrations/, embedded into the binary and applied once each on open.
//
// The default database is ~/.resumechat/data/resumechat.db, opened in WAL
// mode so a chat query can read while an ingestion writes.
package sqlite
