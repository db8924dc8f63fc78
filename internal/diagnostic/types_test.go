package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticsCollect(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddWarning("duplicate_alias", `alias "id" already used`, "Book", "ISBN")
	assert.False(t, d.HasErrors())
	assert.NoError(t, d.Error())

	d.AddError("key_field_missing", "updatable mapper has no key field", "Book", "")
	d.AddError("field_not_found", "no field Titel", "Book", "Titel", "Title")

	require.True(t, d.HasErrors())
	assert.True(t, d.HasCode("duplicate_alias"))
	assert.False(t, d.HasCode("unknown"))
	assert.Len(t, d.All(), 3)
	assert.Equal(t, DiagnosticError, d.All()[0].Severity)

	err := d.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 definition error(s)")
	assert.Contains(t, err.Error(), "[Book]: [key_field_missing]")
	assert.Contains(t, err.Error(), "did you mean Title?")
}

func TestDiagnosticsMerge(t *testing.T) {
	var a, b Diagnostics
	a.AddInfo("mapper_planned", "planned", "Book", "")
	b.AddError("x", "broken", "", "")
	b.AddWarning("y", "odd", "", "")

	a.Merge(b)
	assert.Len(t, a.Errors, 1)
	assert.Len(t, a.Warnings, 1)
	assert.Len(t, a.Infos, 1)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Code: "c", Message: "m"}
	assert.Equal(t, "[c] m", d.String())

	d.Mapper, d.Field = "Book", "ID"
	assert.Equal(t, "[Book] ID: [c] m", d.String())
}
