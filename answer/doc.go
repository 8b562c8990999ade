// Package answer composes the query pipeline: a question is embedded,
// shortlisted against the vector index, re-ranked by the lexical scorer, and
// resolved to exactly one stored outcome or an explicit no-match. Nothing in
// the pipeline generates text; every answer is a verbatim corpus outcome
// with its source conversation label.
package answer
