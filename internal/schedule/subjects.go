package schedule

// Subject is one entry of the fixed exam catalog.
type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	File string `json:"file"`
}

// Subjects is the static catalog, in publication order. Immutable at runtime.
var Subjects = []Subject{
	{ID: "bangla-1", Name: "Bangla — 1st Paper", File: "bangla-1.json"},
	{ID: "bangla-2", Name: "Bangla — 2nd Paper", File: "bangla-2.json"},
	{ID: "math", Name: "Math", File: "math.json"},
	{ID: "higher-math", Name: "Higher Math", File: "higher-math.json"},
	{ID: "physics", Name: "Physics", File: "physics.json"},
	{ID: "chemistry", Name: "Chemistry", File: "chemistry.json"},
	{ID: "biology", Name: "Biology", File: "biology.json"},
	{ID: "bgs", Name: "Bangladesh & Global Studies", File: "bgs.json"},
	{ID: "ict", Name: "ICT", File: "ict.json"},
	{ID: "religion", Name: "Religion", File: "religion.json"},
}

// shortSubjects get the 25-minute window; everything else gets 30.
var shortSubjects = map[string]struct{}{
	"higher-math": {},
	"physics":     {},
	"chemistry":   {},
	"biology":     {},
	"ict":         {},
}

// SubjectByID looks a subject up in the catalog.
func SubjectByID(id string) (Subject, bool) {
	for _, s := range Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}
