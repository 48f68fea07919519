package domain

// RuleError is a business rule violation raised inside the database layer,
// typically by a stored procedure. Its message is safe to return to clients.
type RuleError struct {
	Msg string
}

func (e *RuleError) Error() string {
	return e.Msg
}
