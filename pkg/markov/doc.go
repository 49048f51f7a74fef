/*
Package markov provides an in-memory, variable-order Markov chain model of
word sequences, built from input text and sampled with weighted random
walks to synthesize new text resembling the source.

A Model is created with a fixed order, trained with one or more Train
calls (counts accumulate across calls), and then read with Walk, WalkFrom,
or Generate. Generation in sentence mode starts from a capitalized word and
trims the output back to sentence-ending punctuation.

Models are not safe for concurrent use; callers must finish training before
generating and serialize any concurrent access themselves.
*/
package markov
