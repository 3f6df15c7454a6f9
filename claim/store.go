package claim

import "context"

// Store persists the claims collection.
//
// CONTRACT:
//   - The collection is loaded wholesale once at process start.
//   - Every Save rewrites the whole collection. There is no partial write,
//     append path or transaction log.
//   - Load of a store that has never been written returns an empty
//     collection, not an error.
//   - Save then Load round-trips the collection in order and content.
//
// IMPLEMENTATIONS:
//   - store/jsonfile: JSON array file, full rewrite on save (the primary backend)
//   - store/sqlite:   delete-all + insert-all inside one transaction
//   - store/memory:   in-memory copy, for tests
type Store interface {
	Load(ctx context.Context) ([]Claim, error)
	Save(ctx context.Context, claims []Claim) error
}
