// Package rangeset provides closed uint64 intervals and their union.
//
// Union sorts ranges by lower bound and folds every range that overlaps or
// directly follows the current one, yielding a canonical Set: ascending,
// disjoint and with at least one unused value between neighbours.
//
//	s := rangeset.Merge([]rangeset.Range{{10, 20}, {21, 30}, {50, 60}})
//	// s == {[10, 30] [50, 60]}
//
// Sets have a compact binary form (MarshalBinary) and a block form with
// optional LZ4 or ZSTD compression (Encode / Decode) for shipping
// predicates to remote query layers.
package rangeset
