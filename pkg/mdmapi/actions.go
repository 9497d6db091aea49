package mdmapi

// ActionType identifies one lifecycle phase of one operation on one resource
// collection, e.g. "device_groups/INDEX_REQUEST". Identifiers are compared by
// equality in the dispatch layer, so they must be unique across the whole
// registry; they are derived structurally from (collection, verb) rather than
// written freehand to make collisions impossible.
type ActionType string

// Verb is a CRUD operation on a resource collection.
type Verb string

const (
	// VerbIndex lists a collection with server-side filtering.
	VerbIndex Verb = "INDEX"
	// VerbGet reads a single resource by id.
	VerbGet Verb = "GET"
	// VerbPost creates a resource.
	VerbPost Verb = "POST"
	// VerbPatch updates a resource.
	VerbPatch Verb = "PATCH"
	// VerbDelete removes a resource.
	VerbDelete Verb = "DELETE"
)

// Triad is the ordered (REQUEST, SUCCESS, FAILURE) identifier set describing
// the lifecycle of one asynchronous operation. Exactly one of Success or
// Failure is raised per dispatch, after Request.
type Triad struct {
	Request ActionType
	Success ActionType
	Failure ActionType
}

// NewTriad derives the triad for a verb on a collection, following the
// "<collection>/<VERB>_<PHASE>" convention.
func NewTriad(collection string, verb Verb) Triad {
	prefix := collection + "/" + string(verb)

	return Triad{
		Request: ActionType(prefix + "_REQUEST"),
		Success: ActionType(prefix + "_SUCCESS"),
		Failure: ActionType(prefix + "_FAILURE"),
	}
}

// All returns the triad's identifiers in (REQUEST, SUCCESS, FAILURE) order.
func (t Triad) All() [3]ActionType {
	return [3]ActionType{t.Request, t.Success, t.Failure}
}

// Contains reports whether a belongs to this triad.
func (t Triad) Contains(a ActionType) bool {
	return a == t.Request || a == t.Success || a == t.Failure
}

// RegisteredTriads returns every triad of every declared collection. The
// registry is static; tests assert pairwise distinctness over this set.
func RegisteredTriads() []Triad {
	var all []Triad
	for _, c := range registeredCollections {
		all = append(all, c.Triads()...)
	}

	return all
}

// triadSource is the part of a Collection the registry needs; it keeps
// RegisteredTriads independent of each collection's attribute type.
type triadSource interface {
	Triads() []Triad
}

var registeredCollections = []triadSource{
	DeviceGroups,
	Devices,
	Profiles,
	Organizations,
}
