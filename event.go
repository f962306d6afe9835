package foodfellas

import "encoding/json"

// Snapshot is the state of a document on one side of a change. A deleted or
// never-existing document has Exists == false and no fields.
type Snapshot struct {
	Exists bool
	Fields map[string]interface{}
}

// Data returns the document fields, nil when the snapshot does not exist.
func (s Snapshot) Data() map[string]interface{} {
	if !s.Exists {
		return nil
	}
	return s.Fields
}

// SnapshotOf builds an existing snapshot from a document value. Deleted is
// the snapshot of a document that does not exist.
func SnapshotOf(v interface{}) Snapshot {
	return Snapshot{Exists: true, Fields: Doc(v)}
}

// Deleted is the snapshot of an absent document.
var Deleted = Snapshot{}

// DocumentChange is one mutation of a document, as delivered to trigger
// handlers: the concrete path, the IDs extracted from the path pattern, and
// the states before and after the write. Deletion means !After.Exists.
type DocumentChange struct {
	Path   string
	Params map[string]string
	Before Snapshot
	After  Snapshot
}

// Doc flattens a document value into the generic field map used by snapshots
// and index projections. Numbers come back as float64, per encoding/json.
func Doc(v interface{}) map[string]interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}
