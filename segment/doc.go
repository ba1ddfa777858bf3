// Package segment models X-Ray trace segments and serializes them into the
// document format accepted by the X-Ray daemon.
//
// A Segment is a named, timed unit of work. Segments nest: a subsegment is a
// Segment attached to an open parent, and the whole tree is serialized
// depth-first into a single JSON document.
//
// # Basic Usage
//
//	root := segment.New(segment.WithName("checkout")).
//		SetTraceID(segment.DefaultIDGenerator().NewTraceID()).
//		SetSampled(true).
//		Begin()
//
//	db := root.NewSubsegment("orders-db").Begin()
//	db.AddAnnotation("table", "orders")
//	db.End()
//
//	root.End().Submit(submitter)
//
// # Current Segment
//
// CurrentSegment walks the most recently attached open subsegments and returns
// the deepest one, which is where the next unit of work belongs. With no open
// subsegment the segment itself is returned.
//
// # Causes
//
// Cause is a closed variant: ReferenceCause serializes as the bare identifier
// of an exception recorded elsewhere, *ExpandedCause serializes as an object
// with working_directory, paths and exceptions.
//
// # Error Handling
//
// Nothing in this package returns an error or panics on misuse. Adding a
// subsegment to a closed segment is ignored, missing names are left for the
// collector to judge, and Submit discards the submitter's error.
//
// # Thread Safety
//
// Each Segment guards its own fields, so a tree can be extended from multiple
// goroutines. Attaching the same Segment to two parents is not supported.
package segment
