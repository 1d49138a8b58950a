package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// name analysis
	SemaMultiplyDeclared   Code = 3001
	SemaUndeclared         Code = 3002
	SemaDotAccessNonStruct Code = 3003
	SemaUnknownField       Code = 3004
	SemaBadVoidDecl        Code = 3005
	SemaBadStructType      Code = 3006

	// loading tree files
	IOLoadFileError Code = 4001
	IODecodeTree    Code = 4002

	// analyzer bugs, never caused by user input
	InternalEmptyTable Code = 9001
	InternalFault      Code = 9002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	SemaMultiplyDeclared:   "Multiply declared identifier",
	SemaUndeclared:         "Undeclared identifier",
	SemaDotAccessNonStruct: "Dot-access of non-struct type",
	SemaUnknownField:       "Invalid struct field name",
	SemaBadVoidDecl:        "Non-function declared void",
	SemaBadStructType:      "Invalid name of struct type",

	IOLoadFileError: "Failed to load file",
	IODecodeTree:    "Malformed syntax tree file",

	InternalEmptyTable: "Scope stack emptied during analysis",
	InternalFault:      "Internal analyzer fault",
}

// ID is the stable short identifier, e.g. SEM3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

// Title is the canonical message for the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
