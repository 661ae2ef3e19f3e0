// Package edgelist reads and writes the comma-delimited edge-list format and
// reads trajectory point files.
//
//	# comment
//	A,B,3
//	B,A            // weight 1
//	A,C,2,0.4      // weight_norm ignored on read, recomputed
//
// Read rejects duplicate pairs and negative weights with a *LineError
// naming the offending line; match the cause with errors.Is against
// ErrMalformedLine or ErrDuplicateEdge.
package edgelist
