package entity

// Ids are opaque hex strings produced by the id allocator: a per-kind
// counter pushed through a salted one-way hash, so they are unique and
// stable without leaking creation order.

type UserID string

type StoreID string

type AisleID string

type ProductID string
