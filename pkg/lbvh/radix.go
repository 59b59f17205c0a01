package lbvh

// entry pairs a sort key with the 1-based id of the box it came from
type entry struct {
	code uint64
	id   uint64
}

// radixSort sorts entries ascending by code with a stable LSD radix sort,
// eight passes of eight bits. Passes where every key shares the digit are skipped.
func radixSort(entries []entry) {
	if len(entries) < 2 {
		return
	}

	src := entries
	dst := make([]entry, len(entries))

	for shift := uint(0); shift < 64; shift += 8 {
		var counts [256]int
		for _, e := range src {
			counts[(e.code>>shift)&0xff]++
		}
		if counts[(src[0].code>>shift)&0xff] == len(src) {
			continue
		}

		offset := 0
		for i, c := range counts {
			counts[i] = offset
			offset += c
		}
		for _, e := range src {
			digit := (e.code >> shift) & 0xff
			dst[counts[digit]] = e
			counts[digit]++
		}
		src, dst = dst, src
	}

	if &src[0] != &entries[0] {
		copy(entries, src)
	}
}
