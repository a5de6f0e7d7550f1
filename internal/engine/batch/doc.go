// Package batch splits large inputs into fixed-size chunks and processes them in order.
//
// Normalizing a large upload in one loop would hold the caller until the last row;
// chunking lets the caller observe progress and stop between chunks when its
// context is cancelled. Processing is sequential: chunk k+1 never starts before
// chunk k has returned, so results stay in input order.
package batch
