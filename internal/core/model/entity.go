package model

// Entity is the subject a question is asked about. ID is in compact prefixed form.
type Entity struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Property is a fact about an entity. ID is an absolute IRI; Range is the declared
// value type, either a datatype IRI or a class IRI.
type Property struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Range string `json:"range"`
}

// Fact is a property together with its resolved correct answer for one entity.
type Fact struct {
	Property      Property `json:"property"`
	CorrectAnswer string   `json:"correct_answer"`
}
