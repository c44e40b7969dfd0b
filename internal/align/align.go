// Package align computes the cross-modality sample intersection.
package align

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/arunb2895/multi-omics-enteric-neurons/dataset"
)

// Intersection returns the sample identifiers present in every dataset,
// ordered by first appearance in the first dataset.
//
// Membership is tracked as a roaring bitmap over the first dataset's
// row indices, AND-ed with each remaining modality.
func Intersection(datasets []*dataset.Dataset) []string {
	if len(datasets) == 0 {
		return nil
	}

	first := datasets[0]
	ids := first.Samples()

	keep := roaring.New()
	keep.AddRange(0, uint64(len(ids)))

	for _, ds := range datasets[1:] {
		member := roaring.New()
		for i, id := range ids {
			if ds.Has(id) {
				member.Add(uint32(i))
			}
		}
		keep.And(member)
		if keep.IsEmpty() {
			return nil
		}
	}

	out := make([]string, 0, keep.GetCardinality())
	it := keep.Iterator()
	for it.HasNext() {
		out = append(out, ids[it.Next()])
	}
	return out
}
