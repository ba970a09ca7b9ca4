package diag

// Diagnostic codes, grouped by pipeline phase. Codes are stable strings so
// downstream consumers (editors, test harnesses) can filter by phase or by
// individual rule without parsing messages.
const (
	// Lexical
	CodeUnexpectedChar      = "unexpected_character"
	CodeUnterminatedString  = "unterminated_string"
	CodeUnterminatedChar    = "unterminated_char"
	CodeUnterminatedComment = "unterminated_block_comment"

	// Syntax
	CodeExpectedToken      = "expected_token"
	CodeExpectedExpression = "expected_expression"
	CodeExpectedType       = "expected_type"

	// Semantic
	CodeDuplicateFunction  = "duplicate_function"
	CodeDuplicateStruct    = "duplicate_struct"
	CodeDuplicateEnum      = "duplicate_enum"
	CodeDuplicateVariable  = "duplicate_variable"
	CodeDuplicateField     = "duplicate_field"
	CodeDuplicateVariant   = "duplicate_variant"
	CodeInvalidName        = "invalid_variable_name"
	CodePascalCaseName     = "type_naming_convention"
	CodeConstNaming        = "const_naming_convention"
	CodeUnresolvedIdent    = "unresolved_identifier"
	CodeUnknownType        = "unknown_type"

	// Type
	CodeTypeMismatch      = "type_mismatch"
	CodeUndefinedVariable = "type_undefined_variable"
	CodeNotCallable       = "type_not_callable"
	CodeArityMismatch     = "type_arity_mismatch"
	CodeInvalidOperand    = "type_invalid_operand"
	CodeNonBoolCondition  = "type_non_bool_condition"
	CodeInvalidMember     = "type_invalid_member_access"
	CodeInvalidIndex      = "type_invalid_index"
	CodeBreakOutsideLoop  = "type_break_outside_loop"
	CodeContinueOutside   = "type_continue_outside_loop"
	CodeMissingReturn     = "type_missing_return_value"
	CodeRedeclared        = "type_redeclared_variable"
)
