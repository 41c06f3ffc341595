package model

// AnswerClass is the closed set of answer shapes a distractor strategy exists for:
// YearClass, IntegerClass, FloatClass and ResourceClass. The unexported accept
// method seals the set; handlers implement AnswerClassVisitor, so adding a variant
// breaks every handler at compile time.
type AnswerClass interface {
	accept(v AnswerClassVisitor) ([]string, error)
	String() string
}

// AnswerClassVisitor has one method per AnswerClass variant.
type AnswerClassVisitor interface {
	VisitYear() ([]string, error)
	VisitInteger() ([]string, error)
	VisitFloat() ([]string, error)
	VisitResource(classID string) ([]string, error)
}

// Visit dispatches c to the matching visitor method.
func Visit(c AnswerClass, v AnswerClassVisitor) ([]string, error) {
	return c.accept(v)
}

type YearClass struct{}

type IntegerClass struct{}

type FloatClass struct{}

// ResourceClass is answered by labels of other instances of ClassID.
type ResourceClass struct {
	ClassID string
}

func (YearClass) accept(v AnswerClassVisitor) ([]string, error) { return v.VisitYear() }
func (IntegerClass) accept(v AnswerClassVisitor) ([]string, error) { return v.VisitInteger() }
func (FloatClass) accept(v AnswerClassVisitor) ([]string, error) { return v.VisitFloat() }
func (c ResourceClass) accept(v AnswerClassVisitor) ([]string, error) { return v.VisitResource(c.ClassID) }

func (YearClass) String() string { return "year" }
func (IntegerClass) String() string { return "int" }
func (FloatClass) String() string { return "float" }
func (c ResourceClass) String() string { return "resource(" + c.ClassID + ")" }
