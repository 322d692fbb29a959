package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Парсерные
	SynUnexpectedToken   Code = 2001
	SynMissingDelimiter  Code = 2002
	SynMissingExpression Code = 2003

	// Раскладка
	FmtStrayIgnore Code = 3001

	// Ввод/вывод
	IOLoadFileError Code = 4001
	IOWriteError    Code = 4002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string",
		SynUnexpectedToken:    "Unexpected token",
		SynMissingDelimiter:   "Missing closing delimiter",
		SynMissingExpression:  "Missing expression",
		FmtStrayIgnore:        "Ignore directive without expression",
		IOLoadFileError:       "I/O load file error",
		IOWriteError:          "I/O write error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

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
