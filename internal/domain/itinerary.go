package domain

import "sort"

// The functions in this file are the only way the trip collection changes.
// Each takes the current collection and returns a new one; the input slice
// and every Items slice reachable from it are left untouched, so a caller
// may keep the previous collection around (e.g. to roll back a failed save).

// AddSegment appends seg and re-sorts the collection ascending by
// ArrivalDate. Dates are compared as ISO strings and ties keep their
// insertion order. A nil Items slice is replaced by an empty one.
func AddSegment(segments []Segment, seg Segment) []Segment {
	seg = seg.Clone()
	out := make([]Segment, 0, len(segments)+1)
	out = append(out, segments...)
	out = append(out, seg)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ArrivalDate < out[j].ArrivalDate
	})
	return out
}

// DeleteSegment removes the segment with the given id together with all of
// its items. Unknown ids leave the collection as it was.
func DeleteSegment(segments []Segment, id string) []Segment {
	out := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// AddItem appends item to the segment with segmentID.
// Other segments are returned unchanged. Unknown segment ids are a no-op.
func AddItem(segments []Segment, segmentID string, item Item) []Segment {
	return mapSegment(segments, segmentID, func(s Segment) Segment {
		items := make([]Item, 0, len(s.Items)+1)
		items = append(items, s.Items...)
		s.Items = append(items, item)
		return s
	})
}

// UpdateItem replaces the item whose ID equals item.ID inside the segment
// with segmentID, keeping its position. Unknown ids are a no-op.
func UpdateItem(segments []Segment, segmentID string, item Item) []Segment {
	return mapSegment(segments, segmentID, func(s Segment) Segment {
		items := make([]Item, len(s.Items))
		for i, it := range s.Items {
			if it.ID == item.ID {
				it = item
			}
			items[i] = it
		}
		s.Items = items
		return s
	})
}

// DeleteItem removes the item with itemID from the segment with segmentID.
// Deleting an item that is already gone is a no-op.
func DeleteItem(segments []Segment, segmentID, itemID string) []Segment {
	return mapSegment(segments, segmentID, func(s Segment) Segment {
		items := make([]Item, 0, len(s.Items))
		for _, it := range s.Items {
			if it.ID != itemID {
				items = append(items, it)
			}
		}
		s.Items = items
		return s
	})
}

// FindSegment returns the segment with the given id.
func FindSegment(segments []Segment, id string) (Segment, bool) {
	for _, s := range segments {
		if s.ID == id {
			return s, true
		}
	}
	return Segment{}, false
}

// FindItem returns the item with itemID inside the segment with segmentID.
func FindItem(segments []Segment, segmentID, itemID string) (Item, bool) {
	s, ok := FindSegment(segments, segmentID)
	if !ok {
		return Item{}, false
	}
	for _, it := range s.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

// mapSegment copies the collection, applying fn to the segment with id.
// Segments that do not match are shared with the input, which is safe
// because nothing in this package writes through a segment's Items.
func mapSegment(segments []Segment, id string, fn func(Segment) Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, s := range segments {
		if s.ID == id {
			s = fn(s)
		}
		out[i] = s
	}
	return out
}
