package imgmosaic

import "cmp"

// insertionSort sorts array in place. Used standalone for small slices
// and as the final cleanup pass after medianHybridQuickSort, which
// leaves runs of 17 or fewer elements unsorted.
func insertionSort[T cmp.Ordered](array []T) {
	for i := 1; i < len(array); i++ {
		val := array[i]
		j := i
		for j > 0 && val < array[j-1] {
			array[j] = array[j-1]
			j--
		}
		array[j] = val
	}
}

// partition is a Hoare partition around pivot, returning the split
// index m such that every element of array[f..m] is <= every element
// of array[m+1..l]; neither half is sorted, so the caller recurses on
// [f,m] and [m+1,l].
func partition[T cmp.Ordered](array []T, f, l int, pivot T) int {
	i, j := f-1, l+1
	for {
		j--
		for pivot < array[j] {
			j--
		}
		i++
		for array[i] < pivot {
			i++
		}
		if i < j {
			array[i], array[j] = array[j], array[i]
		} else {
			return j
		}
	}
}

func medianHybridQuickSortImpl[T cmp.Ordered](array []T, f, l int) {
	for f+16 < l {
		v1, v2, v3 := array[f], array[l], array[(f+l)/2]
		var median T
		if v1 < v2 {
			if v3 < v1 {
				median = v1
			} else {
				median = min(v2, v3)
			}
		} else {
			if v3 < v2 {
				median = v2
			} else {
				median = min(v1, v3)
			}
		}
		m := partition(array, f, l, median)
		medianHybridQuickSortImpl(array, f, m)
		f = m + 1
	}
}

// medianHybridQuickSort sorts array in place with a median-of-three
// quicksort that falls back to insertion sort once a partition shrinks
// to 17 elements or fewer. Used by the palette dedup step to order
// packed colors ahead of the duplicate-run collapse.
func medianHybridQuickSort[T cmp.Ordered](array []T) {
	if len(array) < 2 {
		return
	}
	medianHybridQuickSortImpl(array, 0, len(array)-1)
	insertionSort(array)
}
