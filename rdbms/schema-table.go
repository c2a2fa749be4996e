package rdbms

import (
	"regexp"
	"strings"
)

var identifierSanitizeRegex = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SanitizeIdentifier replaces any character outside [A-Za-z0-9_] (notably hyphens)
// with underscore, since the warehouse disallows such characters in identifiers.
func SanitizeIdentifier(s string) string {
	return identifierSanitizeRegex.ReplaceAllString(s, "_")
}

type SchemaTable struct {
	SchemaTable string `errorTxt:"[<schema>.]<object>" mandatory:"yes"`
}

// NewSchemaTable builds a SchemaTable from its parts, sanitizing each identifier.
func NewSchemaTable(schema string, table string) SchemaTable {
	table = SanitizeIdentifier(table)
	if schema == "" {
		return SchemaTable{table}
	} else {
		return SchemaTable{SanitizeIdentifier(schema) + "." + table}
	}
}

func (st *SchemaTable) GetTable() string {
	sep := "."
	i := strings.Index(st.SchemaTable, sep)
	if i < 0 { // if we have just a table...
		return st.SchemaTable
	} // else we have schema.table...
	return st.SchemaTable[i+len(sep):] // return table
}

func (st *SchemaTable) GetSchema() string {
	sep := "."
	i := strings.Index(st.SchemaTable, sep)
	if i < 0 { // if we have just a table...
		return ""
	} // else we have schema.table...
	return st.SchemaTable[:i] // return schema
}

func (st *SchemaTable) String() string {
	return st.SchemaTable
}
