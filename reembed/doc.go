// Package reembed regenerates the stored vectors of the conversation corpus
// with a new or updated embedding model.
//
// The corpus is processed in batches with progress reporting, retry with
// exponential backoff on embedding failures, and vector normalization so
// dot-product similarity remains equivalent to cosine similarity.
package reembed
